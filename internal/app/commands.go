package app

// Command is one user gesture. Fields carry raw form values; Dispatch
// coerces them before any gateway call.
type Command interface {
	Name() string
}

type (
	SelectProfile struct {
		ProfileID string
	}

	SelectPeriod struct {
		Period string
	}

	SwitchView struct {
		View string
	}

	SubmitExpense struct {
		ProfileID  string
		CategoryID string
		Amount     string
		Date       string
		Note       string
		CardID     string
	}

	// DeleteExpense is destructive and needs confirmation.
	DeleteExpense struct {
		ID string
	}

	ApplyReportFilters struct {
		ProfileID string
		StartDate string
		EndDate   string
	}

	// Export downloads the CSV for the active report filters.
	Export struct{}

	OpenFamilyOverview  struct{}
	CloseFamilyOverview struct{}

	AddCreditCard struct {
		Card CardForm
	}

	UpdateCreditCard struct {
		ID   string
		Card CardForm
	}

	// DeleteCreditCard is destructive and needs confirmation.
	DeleteCreditCard struct {
		ID string
	}

	OpenCard struct {
		ID string
	}

	CloseCard struct{}

	ToggleTheme    struct{}
	ToggleLanguage struct{}

	// Reload refetches profiles, categories and credit cards.
	Reload struct{}
)

// CardForm is the raw credit card form.
type CardForm struct {
	ProfileID   string
	Name        string
	LastFour    string
	CreditLimit string
	BillingDay  string
	Color       string
}

func (SelectProfile) Name() string       { return "select_profile" }
func (SelectPeriod) Name() string        { return "select_period" }
func (SwitchView) Name() string          { return "switch_view" }
func (SubmitExpense) Name() string       { return "submit_expense" }
func (DeleteExpense) Name() string       { return "delete_expense" }
func (ApplyReportFilters) Name() string  { return "apply_report_filters" }
func (Export) Name() string              { return "export" }
func (OpenFamilyOverview) Name() string  { return "open_family_overview" }
func (CloseFamilyOverview) Name() string { return "close_family_overview" }
func (AddCreditCard) Name() string       { return "add_credit_card" }
func (UpdateCreditCard) Name() string    { return "update_credit_card" }
func (DeleteCreditCard) Name() string    { return "delete_credit_card" }
func (OpenCard) Name() string            { return "open_card" }
func (CloseCard) Name() string           { return "close_card" }
func (ToggleTheme) Name() string         { return "toggle_theme" }
func (ToggleLanguage) Name() string      { return "toggle_language" }
func (Reload) Name() string              { return "reload" }
