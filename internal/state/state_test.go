package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyspend/internal/chart"
	"familyspend/internal/core"
	"familyspend/internal/i18n"
)

var (
	dad = core.Profile{ID: 1, DisplayName: "Dad"}
	mom = core.Profile{ID: 2, DisplayName: "Mom"}
)

func TestInitialState(t *testing.T) {
	s := New(i18n.Telugu, core.Dark)

	_, ok := s.CurrentProfile()
	assert.False(t, ok)
	assert.Equal(t, core.Month, s.Period())
	assert.Equal(t, ViewDashboard, s.ActiveView())
	assert.Equal(t, i18n.Telugu, s.Language())
	assert.Equal(t, core.Dark, s.Theme())
	assert.Empty(t, s.Expenses())
}

func TestSetProfilesKeepsSelectionValid(t *testing.T) {
	s := New(i18n.English, core.Light)

	assert.True(t, s.SetProfiles([]core.Profile{dad, mom}), "first load selects the first profile")
	id, _ := s.CurrentProfile()
	assert.Equal(t, dad.ID, id)

	require.NoError(t, s.SelectProfile(mom.ID))
	assert.False(t, s.SetProfiles([]core.Profile{dad, mom}), "selection still present")

	assert.True(t, s.SetProfiles([]core.Profile{dad}))
	id, _ = s.CurrentProfile()
	assert.Equal(t, dad.ID, id)

	assert.True(t, s.SetProfiles(nil))
	_, ok := s.CurrentProfile()
	assert.False(t, ok)
}

func TestSelectUnknownProfile(t *testing.T) {
	s := New(i18n.English, core.Light)
	s.SetProfiles([]core.Profile{dad})

	assert.ErrorIs(t, s.SelectProfile(42), ErrUnknownProfile)
	id, _ := s.CurrentProfile()
	assert.Equal(t, dad.ID, id)
}

func TestSequencePerQuery(t *testing.T) {
	s := New(i18n.English, core.Light)

	first := s.Begin(QueryDashboard)
	other := s.Begin(QueryFamily)
	second := s.Begin(QueryDashboard)

	assert.False(t, s.Latest(QueryDashboard, first))
	assert.True(t, s.Latest(QueryDashboard, second))
	assert.True(t, s.Latest(QueryFamily, other))
}

func TestVisibleAndStale(t *testing.T) {
	s := New(i18n.English, core.Light)

	assert.True(t, s.Visible(ViewDashboard))
	assert.False(t, s.Visible(ViewCards))

	s.MarkStale(ViewCards)
	assert.True(t, s.Stale(ViewCards))
	assert.True(t, s.SetView(ViewCards))
	assert.False(t, s.Stale(ViewCards))
	assert.False(t, s.SetView(ViewCards))

	s.OpenFamily()
	s.OpenCard(7)
	assert.True(t, s.Visible(ViewFamily))
	assert.True(t, s.Visible(ViewCardDetail))

	s.CloseFamily()
	s.CloseCard()
	assert.False(t, s.Visible(ViewFamily))
	assert.False(t, s.Visible(ViewCardDetail))
}

func TestClosingModalsReleasesCharts(t *testing.T) {
	s := New(i18n.English, core.Light)
	build := func() (chart.Config, error) {
		return chart.Config{Kind: chart.Doughnut, Points: []chart.Point{{Label: "a", Value: 1}}, Palette: chart.PaletteFor(core.Light)}, nil
	}
	_, err := s.Charts().Replace(chart.SlotCardCategory, build)
	require.NoError(t, err)
	_, err = s.Charts().Replace(chart.SlotFamilyCategory, build)
	require.NoError(t, err)

	s.OpenCard(1)
	s.CloseCard()
	assert.Equal(t, 1, s.Charts().Live())

	s.Close()
	assert.Equal(t, 0, s.Charts().Live())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New(i18n.English, core.Light)
	s.SetExpenses([]core.Expense{{ID: 1, Note: "tea"}})

	got := s.Expenses()
	got[0].Note = "changed"
	assert.Equal(t, "tea", s.Expenses()[0].Note)
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("reports")
	assert.True(t, ok)
	assert.Equal(t, ViewReports, v)

	_, ok = ParseView("family")
	assert.False(t, ok, "modals are not navigable")
}
