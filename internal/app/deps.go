package app

import (
	"slices"

	"familyspend/internal/render"
	"familyspend/internal/state"
)

// Field is a state value that rendered regions depend on.
type Field string

const (
	FieldProfile    Field = "current_profile"
	FieldPeriod     Field = "current_period"
	FieldLanguage   Field = "current_language"
	FieldTheme      Field = "theme"
	FieldProfiles   Field = "profiles"
	FieldCategories Field = "categories"
	FieldCards      Field = "credit_cards"
	FieldExpenses   Field = "expenses"
	FieldFilters    Field = "filters"
	FieldView       Field = "active_view"
	FieldFamily     Field = "family_overview"
	FieldCard       Field = "current_card"
)

// dependents maps each field to the regions that must be re-rendered when it
// changes. FieldLanguage depends on every region but the confirmation dialog,
// which only the surface holding its token may repaint.
var dependents = map[Field][]render.Region{
	FieldProfile:    {render.RegionProfileSelect, render.RegionDashboard},
	FieldPeriod:     {render.RegionPeriodTabs, render.RegionDashboard, render.RegionFamily},
	FieldTheme:      {render.RegionChrome, render.RegionSettings, render.RegionDashboard, render.RegionFamily, render.RegionCardDetail},
	FieldProfiles:   {render.RegionProfileSelect, render.RegionExpenseForm, render.RegionReportFilters, render.RegionCardForm},
	FieldCategories: {render.RegionExpenseForm},
	FieldCards:      {render.RegionCardGrid, render.RegionExpenseForm},
	FieldExpenses:   {render.RegionExpenseList},
	FieldFilters:    {render.RegionReportFilters, render.RegionExpenseList},
	FieldView:       {render.RegionNav},
	FieldFamily:     {render.RegionFamily},
	FieldCard:       {render.RegionCardDetail},
}

// regionView is the view a region is shown in. Regions absent here (chrome,
// nav, confirm dialog) are always on screen.
var regionView = map[render.Region]state.View{
	render.RegionProfileSelect: state.ViewDashboard,
	render.RegionPeriodTabs:    state.ViewDashboard,
	render.RegionDashboard:     state.ViewDashboard,
	render.RegionExpenseForm:   state.ViewAdd,
	render.RegionReportFilters: state.ViewReports,
	render.RegionExpenseList:   state.ViewReports,
	render.RegionCardGrid:      state.ViewCards,
	render.RegionCardForm:      state.ViewCards,
	render.RegionSettings:      state.ViewSettings,
	render.RegionFamily:        state.ViewFamily,
	render.RegionCardDetail:    state.ViewCardDetail,
}

// Dependents returns the regions affected by a change to any of fields, in
// page order without duplicates.
func Dependents(fields ...Field) []render.Region {
	want := make(map[render.Region]bool)
	for _, f := range fields {
		if f == FieldLanguage {
			return slices.DeleteFunc(render.Regions(), func(r render.Region) bool {
				return r == render.RegionConfirm
			})
		}
		for _, r := range dependents[f] {
			want[r] = true
		}
	}
	var out []render.Region
	for _, r := range render.Regions() {
		if want[r] {
			out = append(out, r)
		}
	}
	return out
}

// regionsOf lists the regions shown in view v.
func regionsOf(v state.View) []render.Region {
	var out []render.Region
	for _, r := range render.Regions() {
		if regionView[r] == v {
			out = append(out, r)
		}
	}
	return out
}
