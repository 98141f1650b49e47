package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyspend/internal/app"
)

func TestParseCommand(t *testing.T) {
	card := url.Values{
		"id":             {"7"},
		"profile_id":     {"1"},
		"card_name":      {" Visa "},
		"card_last_four": {"4242"},
		"credit_limit":   {"50000"},
		"billing_day":    {"15"},
		"card_color":     {"gradient-blue"},
	}
	wantCard := app.CardForm{ProfileID: "1", Name: "Visa", LastFour: "4242", CreditLimit: "50000", BillingDay: "15", Color: "gradient-blue"}

	tests := []struct {
		name string
		form url.Values
		want app.Command
	}{
		{"profile", url.Values{"profile_id": {"2"}}, app.SelectProfile{ProfileID: "2"}},
		{"period", url.Values{"period": {"week"}}, app.SelectPeriod{Period: "week"}},
		{"view", url.Values{"view": {"reports"}}, app.SwitchView{View: "reports"}},
		{"expense", url.Values{
			"profile_id": {"1"}, "category_id": {"3"}, "amount": {"12,50"},
			"date": {"2025-03-01"}, "note": {"tea\x00"}, "card_id": {""},
		}, app.SubmitExpense{ProfileID: "1", CategoryID: "3", Amount: "12,50", Date: "2025-03-01", Note: "tea"}},
		{"expense/delete", url.Values{"id": {"9"}}, app.DeleteExpense{ID: "9"}},
		{"filters", url.Values{"profile_id": {""}, "start_date": {"2025-03-01"}}, app.ApplyReportFilters{StartDate: "2025-03-01"}},
		{"export", nil, app.Export{}},
		{"family/open", nil, app.OpenFamilyOverview{}},
		{"family/close", nil, app.CloseFamilyOverview{}},
		{"card", card, app.AddCreditCard{Card: wantCard}},
		{"card/update", card, app.UpdateCreditCard{ID: "7", Card: wantCard}},
		{"card/delete", url.Values{"id": {"7"}}, app.DeleteCreditCard{ID: "7"}},
		{"card/open", url.Values{"id": {"7"}}, app.OpenCard{ID: "7"}},
		{"card/close", nil, app.CloseCard{}},
		{"theme", nil, app.ToggleTheme{}},
		{"language", nil, app.ToggleLanguage{}},
		{"reload", nil, app.Reload{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.name, tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Unknown(t *testing.T) {
	_, err := ParseCommand("expense/edit", nil)
	assert.ErrorIs(t, err, app.ErrUnknownCommand)
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain  ", "plain"},
		{"a\x00b\x07c", "abc"},
		{"line1\nline2\tend", "line1\nline2\tend"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeInput(tt.in))
	}
}
