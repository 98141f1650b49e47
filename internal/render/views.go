package render

import (
	"html/template"

	"familyspend/internal/chart"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
	"familyspend/internal/state"
)

type navItem struct {
	View   state.View
	Label  i18n.Key
	Icon   string
	Active bool
}

var navIcons = map[state.View]struct {
	icon  string
	label i18n.Key
}{
	state.ViewDashboard: {"📊", i18n.Dashboard},
	state.ViewAdd:       {"➕", i18n.Add},
	state.ViewReports:   {"📋", i18n.Reports},
	state.ViewCards:     {"💳", i18n.Cards},
	state.ViewSettings:  {"⚙️", i18n.Settings},
}

// Chrome renders the header: title and the theme and language toggles.
func (r *Renderer) Chrome(s state.Reader, surf Surface) error {
	icon := "🌙"
	if s.Theme() == core.Dark {
		icon = "☀️"
	}
	return r.paint(surf, RegionChrome, struct {
		base
		ThemeIcon string
	}{baseOf(s), icon})
}

// Nav renders the bottom navigation with the active view highlighted.
func (r *Renderer) Nav(s state.Reader, surf Surface) error {
	var items []navItem
	for _, v := range state.Views() {
		meta := navIcons[v]
		items = append(items, navItem{View: v, Label: meta.label, Icon: meta.icon, Active: s.ActiveView() == v})
	}
	return r.paint(surf, RegionNav, struct {
		base
		Items []navItem
	}{baseOf(s), items})
}

// ProfileSelect renders the dashboard's profile picker.
func (r *Renderer) ProfileSelect(s state.Reader, surf Surface) error {
	cur, ok := s.CurrentProfile()
	return r.paint(surf, RegionProfileSelect, struct {
		base
		Options []option
	}{baseOf(s), profileOptions(s, cur, ok)})
}

// PeriodTabs renders the week/month/year switch.
func (r *Renderer) PeriodTabs(s state.Reader, surf Surface) error {
	var tabs []option
	for _, p := range core.Periods() {
		tabs = append(tabs, option{Value: string(p), Label: i18n.Translate(s.Language(), i18n.PeriodKey(string(p))), Selected: p == s.Period()})
	}
	return r.paint(surf, RegionPeriodTabs, struct {
		base
		Tabs []option
	}{baseOf(s), tabs})
}

type amountRow struct {
	Icon   string
	Label  string
	Amount core.Money
}

// Dashboard renders the stats, charts and top categories of snap. With no
// profile selected, or no snapshot, it renders the empty state and drops
// the dashboard charts.
func (r *Renderer) Dashboard(s state.Reader, snap *core.DashboardSnapshot, surf Surface) error {
	data := struct {
		base
		Selected      bool
		Total         core.Money
		CategoryCount int
		CategoryChart template.HTML
		TrendChart    template.HTML
		Top           []amountRow
	}{base: baseOf(s)}

	_, selected := s.CurrentProfile()
	if !selected || snap == nil {
		s.Charts().Release(chart.SlotCategory)
		s.Charts().Release(chart.SlotTrend)
		return r.paint(surf, RegionDashboard, data)
	}

	lang := s.Language()
	palette := chart.PaletteFor(s.Theme())
	data.Selected = true
	data.Total = snap.TotalSpent
	data.CategoryCount = len(snap.CategoryBreakdown)
	data.CategoryChart = r.replaceChart(s, chart.SlotCategory, chart.Config{
		Kind:        chart.Pie,
		Title:       i18n.Translate(lang, i18n.CategoryBreakdown),
		Points:      points(lang, snap.CategoryBreakdown),
		Palette:     palette,
		FormatValue: chartValue(lang),
	})

	var trend []chart.Point
	for _, d := range snap.WeeklyTrend {
		f, _ := d.Amount.Float64()
		trend = append(trend, chart.Point{Label: i18n.Weekday(lang, d.Date), Value: f})
	}
	data.TrendChart = r.replaceChart(s, chart.SlotTrend, chart.Config{
		Kind:        chart.Bar,
		Title:       i18n.Translate(lang, i18n.WeeklyTrend),
		Points:      trend,
		Palette:     palette,
		FormatValue: chartValue(lang),
	})

	for _, c := range snap.TopCategories {
		data.Top = append(data.Top, amountRow{Icon: c.Icon, Label: c.Label(string(lang)), Amount: c.Amount})
	}
	return r.paint(surf, RegionDashboard, data)
}

// ExpenseForm renders the add-expense form with its profile, category and
// card selectors, reset to today's date.
func (r *Renderer) ExpenseForm(s state.Reader, surf Surface) error {
	cur, ok := s.CurrentProfile()
	lang := s.Language()

	var categories []option
	for _, c := range s.Categories() {
		categories = append(categories, option{Value: id(c.ID), Label: c.Icon + " " + c.Label(string(lang))})
	}
	var cards []option
	for _, c := range s.CreditCards() {
		label := c.Name
		if c.LastFour != "" {
			label += " ••" + c.LastFour
		}
		cards = append(cards, option{Value: id(c.ID), Label: label})
	}

	return r.paint(surf, RegionExpenseForm, struct {
		base
		Profiles   []option
		Categories []option
		Cards      []option
		Today      string
	}{baseOf(s), profileOptions(s, cur, ok), categories, cards, r.now().Format("2006-01-02")})
}

// ReportFilters renders the report filter form with the active filters.
func (r *Renderer) ReportFilters(s state.Reader, surf Surface) error {
	f := s.Filters()
	var cur core.ID
	if f.ProfileID != nil {
		cur = *f.ProfileID
	}
	return r.paint(surf, RegionReportFilters, struct {
		base
		Profiles  []option
		StartDate string
		EndDate   string
	}{baseOf(s), profileOptions(s, cur, f.ProfileID != nil), f.StartDate.String(), f.EndDate.String()})
}

type expenseRow struct {
	ID       string
	Icon     string
	Category string
	Profile  string
	Date     core.Date
	Note     string
	Amount   core.Money
}

// ExpenseList renders the loaded expense snapshot.
func (r *Renderer) ExpenseList(s state.Reader, surf Surface) error {
	lang := string(s.Language())
	var rows []expenseRow
	for _, e := range s.Expenses() {
		rows = append(rows, expenseRow{
			ID:       id(e.ID),
			Icon:     e.CategoryIcon,
			Category: e.CategoryLabel(lang),
			Profile:  e.ProfileName,
			Date:     e.Date,
			Note:     e.Note,
			Amount:   e.Amount,
		})
	}
	return r.paint(surf, RegionExpenseList, struct {
		base
		Rows []expenseRow
	}{baseOf(s), rows})
}

// Family renders the family overview modal. A closed modal renders empty.
func (r *Renderer) Family(s state.Reader, snap *core.FamilyOverviewSnapshot, surf Surface) error {
	data := struct {
		base
		Open           bool
		Loaded         bool
		Total          core.Money
		ProfileChart   template.HTML
		CategoryChart  template.HTML
		HasCategories  bool
		HasProfileData bool
	}{base: baseOf(s), Open: s.FamilyOpen()}

	if !data.Open || snap == nil {
		s.Charts().Release(chart.SlotFamily)
		s.Charts().Release(chart.SlotFamilyCategory)
		return r.paint(surf, RegionFamily, data)
	}

	lang := s.Language()
	palette := chart.PaletteFor(s.Theme())
	data.Loaded = true
	data.Total = snap.TotalFamily

	var byProfile []chart.Point
	for _, p := range snap.ProfileSpending {
		f, _ := p.Amount.Float64()
		byProfile = append(byProfile, chart.Point{Label: p.Profile, Value: f})
	}
	data.ProfileChart = r.replaceChart(s, chart.SlotFamily, chart.Config{
		Kind:        chart.HorizontalBar,
		Title:       i18n.Translate(lang, i18n.SpendingByMember),
		Points:      byProfile,
		Palette:     palette,
		FormatValue: chartValue(lang),
	})
	data.CategoryChart = r.replaceChart(s, chart.SlotFamilyCategory, chart.Config{
		Kind:        chart.Doughnut,
		Title:       i18n.Translate(lang, i18n.TopFamilyCategories),
		Points:      points(lang, snap.TopCategories),
		Palette:     palette,
		FormatValue: chartValue(lang),
	})
	data.HasProfileData = data.ProfileChart != ""
	data.HasCategories = data.CategoryChart != ""
	return r.paint(surf, RegionFamily, data)
}

type cardTile struct {
	ID         string
	Name       string
	LastFour   string
	Limit      core.Money
	BillingDay int
	Color      string
	Profile    string
}

func tileOf(c core.CreditCard) cardTile {
	color := c.Color
	if color == "" {
		color = core.DefaultCardColor
	}
	return cardTile{
		ID:         id(c.ID),
		Name:       c.Name,
		LastFour:   c.LastFour,
		Limit:      c.CreditLimit,
		BillingDay: c.BillingDay,
		Color:      color,
		Profile:    c.ProfileName,
	}
}

// CardGrid renders the loaded credit cards, or the add-card tile when none.
func (r *Renderer) CardGrid(s state.Reader, surf Surface) error {
	var tiles []cardTile
	for _, c := range s.CreditCards() {
		tiles = append(tiles, tileOf(c))
	}
	return r.paint(surf, RegionCardGrid, struct {
		base
		Cards []cardTile
	}{baseOf(s), tiles})
}

// CardColors lists the selectable card color tags.
var CardColors = []string{"gradient-primary", "gradient-purple", "gradient-blue", "gradient-orange", "gradient-green", "gradient-dark"}

// CardForm renders the (hidden) add-card form, reset.
func (r *Renderer) CardForm(s state.Reader, surf Surface) error {
	cur, ok := s.CurrentProfile()
	return r.paint(surf, RegionCardForm, struct {
		base
		Card     cardTile
		Profiles []option
		Colors   []string
	}{baseOf(s), cardTile{Color: core.DefaultCardColor}, profileOptions(s, cur, ok), CardColors})
}

type transactionRow struct {
	Icon     string
	Category string
	Date     core.Date
	Note     string
	Amount   core.Money
}

// CardDetail renders the card modal for the current card.
func (r *Renderer) CardDetail(s state.Reader, snap *core.CardDashboardSnapshot, surf Surface) error {
	cardID, open := s.CurrentCard()
	data := struct {
		base
		Open         bool
		Loaded       bool
		Card         cardTile
		Snap         core.CardDashboardSnapshot
		Level        string
		Width        float64
		Chart        template.HTML
		Transactions []transactionRow
		Profiles     []option
		Colors       []string
	}{base: baseOf(s), Open: open, Colors: CardColors}

	if !open || snap == nil {
		s.Charts().Release(chart.SlotCardCategory)
		return r.paint(surf, RegionCardDetail, data)
	}

	lang := s.Language()
	for _, c := range s.CreditCards() {
		if c.ID == cardID {
			data.Card = tileOf(c)
			data.Profiles = profileOptions(s, c.ProfileID, true)
		}
	}
	if data.Card.ID == "" {
		data.Card = tileOf(core.CreditCard{
			ID: cardID, Name: snap.Card.Name, LastFour: snap.Card.LastFour, CreditLimit: snap.Card.CreditLimit,
			BillingDay: snap.Card.BillingDay, Color: snap.Card.Color,
		})
	}
	data.Loaded = true
	data.Snap = *snap
	data.Level = snap.UtilizationLevel()
	data.Width = min(max(snap.Utilization, 0), 100)

	palette := chart.PaletteFor(s.Theme())
	palette.Series = chart.CardSeries
	data.Chart = r.replaceChart(s, chart.SlotCardCategory, chart.Config{
		Kind:        chart.Doughnut,
		Title:       i18n.Translate(lang, i18n.CategoryBreakdown),
		Points:      points(lang, snap.CategoryBreakdown),
		Palette:     palette,
		FormatValue: chartValue(lang),
	})
	for _, t := range snap.RecentTransactions {
		data.Transactions = append(data.Transactions, transactionRow{
			Icon: t.Icon, Category: t.Category, Date: t.Date, Note: t.Note, Amount: t.Amount,
		})
	}
	return r.paint(surf, RegionCardDetail, data)
}

// Settings renders the settings view.
func (r *Renderer) Settings(s state.Reader, surf Surface) error {
	return r.paint(surf, RegionSettings, struct {
		base
		Dark bool
	}{baseOf(s), s.Theme() == core.Dark})
}

// Confirm renders the confirmation dialog for a pending destructive action.
// An empty token closes the dialog.
func (r *Renderer) Confirm(s state.Reader, prompt i18n.Key, token string, surf Surface) error {
	return r.paint(surf, RegionConfirm, struct {
		base
		Prompt i18n.Key
		Token  string
	}{baseOf(s), prompt, token})
}
