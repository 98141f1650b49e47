package render

import (
	"html/template"
	"io/fs"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyspend/internal/chart"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/state"
	"familyspend/web"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(web.TemplatesFS, applog.Discard())
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) }
	return r
}

func loadedState(lang i18n.Language) *state.State {
	s := state.New(lang, core.Light)
	s.SetProfiles([]core.Profile{{ID: 1, Name: "dad", DisplayName: "Dad"}, {ID: 2, Name: "mom", DisplayName: "Mom"}})
	s.SetCategories([]core.Category{{ID: 1, Name: "Food", NameTe: "ఆహారం", Icon: "🍔"}})
	s.SetCreditCards([]core.CreditCard{{ID: 7, ProfileID: 1, Name: "Visa", LastFour: "4242", CreditLimit: core.NewMoney(50000), BillingDay: 15, Color: "gradient-blue"}})
	s.SetExpenses([]core.Expense{{
		ID: 3, ProfileID: 1, ProfileName: "Dad", CategoryID: 1, CategoryName: "Food", CategoryNameTe: "ఆహారం",
		CategoryIcon: "🍔", Amount: core.NewMoney(1234.5), Date: core.NewDate(2025, 3, 8), Note: "tea",
	}})
	return s
}

func dashboardSnap() *core.DashboardSnapshot {
	return &core.DashboardSnapshot{
		TotalSpent: core.NewMoney(1500),
		CategoryBreakdown: []core.CategoryAmount{
			{Category: "Food", CategoryTe: "ఆహారం", Icon: "🍔", Amount: core.NewMoney(1000)},
			{Category: "Transport", CategoryTe: "రవాణా", Icon: "🚗", Amount: core.NewMoney(500)},
		},
		TopCategories: []core.CategoryAmount{{Category: "Food", CategoryTe: "ఆహారం", Icon: "🍔", Amount: core.NewMoney(1000)}},
		WeeklyTrend: []core.DayAmount{
			{Date: core.NewDate(2025, 3, 8), Amount: core.NewMoney(200)},
			{Date: core.NewDate(2025, 3, 9), Amount: core.NewMoney(0)},
		},
	}
}

// renderAll paints every region the way the page does.
func renderAll(t *testing.T, r *Renderer, s *state.State, dash *core.DashboardSnapshot) map[string]template.HTML {
	t.Helper()
	f := NewFrame()
	require.NoError(t, r.Chrome(s, f))
	require.NoError(t, r.Nav(s, f))
	require.NoError(t, r.ProfileSelect(s, f))
	require.NoError(t, r.PeriodTabs(s, f))
	require.NoError(t, r.Dashboard(s, dash, f))
	require.NoError(t, r.ExpenseForm(s, f))
	require.NoError(t, r.ReportFilters(s, f))
	require.NoError(t, r.ExpenseList(s, f))
	require.NoError(t, r.Family(s, nil, f))
	require.NoError(t, r.CardGrid(s, f))
	require.NoError(t, r.CardForm(s, f))
	require.NoError(t, r.CardDetail(s, nil, f))
	require.NoError(t, r.Settings(s, f))
	require.NoError(t, r.Confirm(s, "", "", f))
	assert.Len(t, f.Painted(), len(Regions()))
	return f.Map()
}

func TestTemplateKeysAreKnown(t *testing.T) {
	data, err := fs.ReadFile(web.TemplatesFS, "templates/regions.html")
	require.NoError(t, err)

	re := regexp.MustCompile(`\.L\.T "([a-z_]+)"`)
	matches := re.FindAllStringSubmatch(string(data), -1)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.True(t, slices.Contains(i18n.Keys(), i18n.Key(m[1])), "unknown key %q", m[1])
	}
}

func TestEverySurfaceRegionHasTemplate(t *testing.T) {
	r := newRenderer(t)
	for _, region := range Regions() {
		assert.NotNil(t, r.Templates().Lookup(string(region)), region)
	}
}

func TestEmptyStates(t *testing.T) {
	r := newRenderer(t)
	s := state.New(i18n.English, core.Light)
	parts := renderAll(t, r, s, nil)

	assert.Contains(t, string(parts["dashboard"]), i18n.Translate(i18n.English, i18n.NoProfileSelected))
	assert.Contains(t, string(parts["expense-list"]), i18n.Translate(i18n.English, i18n.NoExpenses))
	assert.Contains(t, string(parts["card-grid"]), i18n.Translate(i18n.English, i18n.AddCard))
	assert.Empty(t, strings.TrimSpace(string(parts["family-modal"])))
	assert.Empty(t, strings.TrimSpace(string(parts["card-modal"])))
	assert.Empty(t, strings.TrimSpace(string(parts["confirm-dialog"])))
	assert.Zero(t, s.Charts().Live())
}

func TestDashboard(t *testing.T) {
	r := newRenderer(t)
	s := loadedState(i18n.English)
	f := NewFrame()

	require.NoError(t, r.Dashboard(s, dashboardSnap(), f))
	html, ok := f.Get(RegionDashboard)
	require.True(t, ok)
	assert.Contains(t, string(html), "₹1,500")
	assert.Contains(t, string(html), "<svg")
	assert.Equal(t, 2, s.Charts().Live())

	t.Run("repeated renders keep one chart per slot", func(t *testing.T) {
		for range 3 {
			require.NoError(t, r.Dashboard(s, dashboardSnap(), f))
		}
		assert.Equal(t, 2, s.Charts().Live())
	})

	t.Run("empty breakdown shows no data", func(t *testing.T) {
		require.NoError(t, r.Dashboard(s, &core.DashboardSnapshot{}, f))
		html, _ := f.Get(RegionDashboard)
		assert.Contains(t, string(html), i18n.Translate(i18n.English, i18n.NoData))
		assert.Zero(t, s.Charts().Live())
	})
}

func TestExpenseListLocalized(t *testing.T) {
	r := newRenderer(t)
	f := NewFrame()

	require.NoError(t, r.ExpenseList(loadedState(i18n.Telugu), f))
	html, _ := f.Get(RegionExpenseList)
	assert.Contains(t, string(html), "ఆహారం")
	assert.Contains(t, string(html), "8/3/2025")
	assert.Contains(t, string(html), `data-id="3"`)
}

func TestExpenseForm(t *testing.T) {
	r := newRenderer(t)
	s := loadedState(i18n.English)
	require.NoError(t, s.SelectProfile(2))
	f := NewFrame()

	require.NoError(t, r.ExpenseForm(s, f))
	html := string(must(f.Get(RegionExpenseForm)))
	assert.Contains(t, html, `value="2025-03-09"`)
	assert.Contains(t, html, `<option value="2" selected>Mom</option>`)
	assert.Contains(t, html, "Visa ••4242")
	assert.Contains(t, html, i18n.Translate(i18n.English, i18n.CashNoCard))
}

func TestCardGridAndDetail(t *testing.T) {
	r := newRenderer(t)
	s := loadedState(i18n.English)
	f := NewFrame()

	require.NoError(t, r.CardGrid(s, f))
	grid := string(must(f.Get(RegionCardGrid)))
	assert.Contains(t, grid, "Billing: 15th of month")
	assert.Contains(t, grid, "gradient-blue")

	s.OpenCard(7)
	snap := &core.CardDashboardSnapshot{
		Card:             core.CardInfo{Name: "Visa", LastFour: "4242", CreditLimit: core.NewMoney(1000), BillingDay: 15},
		TotalSpent:       core.NewMoney(950),
		AvailableBalance: core.NewMoney(50),
		Utilization:      95,
		CycleStart:       core.NewDate(2025, 3, 15),
		CycleEnd:         core.NewDate(2025, 4, 14),
		CategoryBreakdown: []core.CategoryAmount{
			{Category: "Food", Amount: core.NewMoney(950)},
		},
	}
	require.NoError(t, r.CardDetail(s, snap, f))
	detail := string(must(f.Get(RegionCardDetail)))
	assert.Contains(t, detail, "card-utilization-fill critical")
	assert.Contains(t, detail, "15 Mar - 14 Apr")
	assert.Contains(t, detail, "95%")
	assert.Contains(t, detail, i18n.Translate(i18n.English, i18n.NoExpenses))
	_, live := s.Charts().Get(chart.SlotCardCategory)
	assert.True(t, live)

	s.CloseCard()
	require.NoError(t, r.CardDetail(s, nil, f))
	assert.Empty(t, strings.TrimSpace(string(must(f.Get(RegionCardDetail)))))
	_, live = s.Charts().Get(chart.SlotCardCategory)
	assert.False(t, live)
}

func TestNavMarksActiveView(t *testing.T) {
	r := newRenderer(t)
	s := loadedState(i18n.English)
	s.SetView(state.ViewCards)
	f := NewFrame()

	require.NoError(t, r.Nav(s, f))
	html := string(must(f.Get(RegionNav)))
	assert.Equal(t, 1, strings.Count(html, "nav-item active"))
	assert.Contains(t, html, `{"view": "cards"}`)
}

func TestConfirmDialog(t *testing.T) {
	r := newRenderer(t)
	f := NewFrame()

	require.NoError(t, r.Confirm(loadedState(i18n.English), i18n.ConfirmDeleteCard, "tok-1", f))
	html := string(must(f.Get(RegionConfirm)))
	assert.Contains(t, html, "/confirm/tok-1")
	assert.Contains(t, html, i18n.Translate(i18n.English, i18n.ConfirmDeleteCard))
}

func TestLanguageToggleTwiceIsIdentical(t *testing.T) {
	r := newRenderer(t)
	s := loadedState(i18n.English)
	before := renderAll(t, r, s, dashboardSnap())

	s.SetLanguage(s.Language().Toggle())
	telugu := renderAll(t, r, s, dashboardSnap())
	assert.NotEqual(t, before["settings"], telugu["settings"])

	s.SetLanguage(s.Language().Toggle())
	after := renderAll(t, r, s, dashboardSnap())
	assert.Equal(t, before, after)
}

func must(h template.HTML, ok bool) template.HTML {
	if !ok {
		panic("region not painted")
	}
	return h
}
