// Package state holds the Application State: what is currently selected,
// loaded and shown. Action handlers and bootstrap mutate it; renderers read it
// through Reader. State is not safe for concurrent use; the app serializes
// access to it.
package state

import (
	"errors"
	"slices"

	"familyspend/internal/chart"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
)

// View is a top-level screen of the interface.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewAdd       View = "add"
	ViewReports   View = "reports"
	ViewCards     View = "cards"
	ViewSettings  View = "settings"

	// Modals are tracked in the visible set alongside the active view.
	ViewFamily     View = "family"
	ViewCardDetail View = "card-detail"
)

// Views lists the navigable screens in tab order.
func Views() []View {
	return []View{ViewDashboard, ViewAdd, ViewReports, ViewCards, ViewSettings}
}

// ParseView accepts one of the navigable screens.
func ParseView(s string) (View, bool) {
	v := View(s)
	return v, slices.Contains(Views(), v)
}

// Query identifies a logical request whose responses may be superseded.
type Query string

const (
	QueryDashboard  Query = "dashboard"
	QueryFamily     Query = "family"
	QueryExpenses   Query = "expenses"
	QueryCardDetail Query = "card_detail"
	QueryProfiles   Query = "profiles"
	QueryCategories Query = "categories"
	QueryCards      Query = "cards"
)

var ErrUnknownProfile = errors.New("profile not in the loaded set")

// Reader is the read-only view renderers get.
type Reader interface {
	CurrentProfile() (core.ID, bool)
	Period() core.Period
	ActiveView() View
	Language() i18n.Language
	Theme() core.Theme
	Profiles() []core.Profile
	Categories() []core.Category
	Expenses() []core.Expense
	CreditCards() []core.CreditCard
	Filters() core.ExpenseFilters
	CurrentCard() (core.ID, bool)
	FamilyOpen() bool
	Visible(v View) bool
	Stale(v View) bool
	Charts() *chart.Registry
}

// State is the single owned Application State.
type State struct {
	profile    core.ID
	period     core.Period
	view       View
	language   i18n.Language
	theme      core.Theme
	profiles   []core.Profile
	categories []core.Category
	expenses   []core.Expense
	cards      []core.CreditCard
	filters    core.ExpenseFilters
	card       core.ID
	familyOpen bool
	stale      map[View]bool
	seq        map[Query]uint64
	charts     *chart.Registry
}

// New returns the initial state: no selection, default period, dashboard view.
func New(lang i18n.Language, theme core.Theme) *State {
	return &State{
		period:   core.DefaultPeriod,
		view:     ViewDashboard,
		language: lang,
		theme:    theme,
		stale:    make(map[View]bool),
		seq:      make(map[Query]uint64),
		charts:   chart.NewRegistry(),
	}
}

func (s *State) CurrentProfile() (core.ID, bool) { return s.profile, s.profile != 0 }
func (s *State) Period() core.Period             { return s.period }
func (s *State) ActiveView() View                { return s.view }
func (s *State) Language() i18n.Language         { return s.language }
func (s *State) Theme() core.Theme               { return s.theme }
func (s *State) Filters() core.ExpenseFilters    { return s.filters }
func (s *State) CurrentCard() (core.ID, bool)    { return s.card, s.card != 0 }
func (s *State) FamilyOpen() bool                { return s.familyOpen }
func (s *State) Charts() *chart.Registry         { return s.charts }
func (s *State) Profiles() []core.Profile        { return slices.Clone(s.profiles) }
func (s *State) Categories() []core.Category     { return slices.Clone(s.categories) }
func (s *State) Expenses() []core.Expense        { return slices.Clone(s.expenses) }
func (s *State) CreditCards() []core.CreditCard  { return slices.Clone(s.cards) }

// Visible reports whether v is on screen: the active view or an open modal.
func (s *State) Visible(v View) bool {
	switch v {
	case ViewFamily:
		return s.familyOpen
	case ViewCardDetail:
		return s.card != 0
	default:
		return s.view == v
	}
}

// SelectProfile sets the current profile. The id must belong to the loaded set.
func (s *State) SelectProfile(id core.ID) error {
	if !s.hasProfile(id) {
		return ErrUnknownProfile
	}
	s.profile = id
	return nil
}

func (s *State) hasProfile(id core.ID) bool {
	return slices.ContainsFunc(s.profiles, func(p core.Profile) bool { return p.ID == id })
}

// SetProfiles replaces the profile set. A selection that is no longer present
// falls back to the first profile, or to unset when the set is empty; an unset
// selection picks the first profile. It reports whether the selection changed.
func (s *State) SetProfiles(p []core.Profile) bool {
	s.profiles = slices.Clone(p)
	prev := s.profile
	if prev == 0 || !s.hasProfile(prev) {
		s.profile = 0
		if len(s.profiles) > 0 {
			s.profile = s.profiles[0].ID
		}
	}
	return s.profile != prev
}

func (s *State) SetPeriod(p core.Period)            { s.period = p }
func (s *State) SetLanguage(l i18n.Language)        { s.language = l }
func (s *State) SetTheme(t core.Theme)              { s.theme = t }
func (s *State) SetCategories(c []core.Category)    { s.categories = slices.Clone(c) }
func (s *State) SetCreditCards(c []core.CreditCard) { s.cards = slices.Clone(c) }
func (s *State) SetFilters(f core.ExpenseFilters)   { s.filters = f }

// SetExpenses replaces the expense snapshot wholesale.
func (s *State) SetExpenses(e []core.Expense) { s.expenses = slices.Clone(e) }

// SetView makes v the active view and clears its stale mark, returning
// whether it had one.
func (s *State) SetView(v View) (wasStale bool) {
	s.view = v
	wasStale = s.stale[v]
	delete(s.stale, v)
	return wasStale
}

// OpenFamily and CloseFamily toggle the family overview modal.
func (s *State) OpenFamily() { s.familyOpen = true }

func (s *State) CloseFamily() {
	s.familyOpen = false
	s.charts.Release(chart.SlotFamily)
	s.charts.Release(chart.SlotFamilyCategory)
}

// OpenCard selects the card shown in the detail modal.
func (s *State) OpenCard(id core.ID) { s.card = id }

// CloseCard clears the card selection and releases its chart.
func (s *State) CloseCard() {
	s.card = 0
	s.charts.Release(chart.SlotCardCategory)
}

// MarkStale records that v depends on a change it was not re-rendered for.
func (s *State) MarkStale(v View) { s.stale[v] = true }

// Stale reports whether v awaits a re-render.
func (s *State) Stale(v View) bool { return s.stale[v] }

// Begin issues the next sequence number for q.
func (s *State) Begin(q Query) uint64 {
	s.seq[q]++
	return s.seq[q]
}

// Latest reports whether seq is still the most recent issued for q.
func (s *State) Latest(q Query, seq uint64) bool {
	return s.seq[q] == seq
}

// Close releases every chart handle.
func (s *State) Close() {
	s.charts.Close()
}
