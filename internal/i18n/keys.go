// Package i18n is the localization table: a typed set of string keys, one
// table per supported language, and locale-aware currency and date formatting.
package i18n

// Key identifies a localized string.
type Key string

const (
	AppTitle             Key = "app_title"
	SelectProfile        Key = "select_profile"
	TotalSpent           Key = "total_spent"
	Categories           Key = "categories"
	PeriodWeek           Key = "week"
	PeriodMonth          Key = "month"
	PeriodYear           Key = "year"
	CategoryBreakdown    Key = "category_breakdown"
	WeeklyTrend          Key = "weekly_trend"
	TopCategories        Key = "top_categories"
	FamilyOverview       Key = "family_overview"
	AddExpense           Key = "add_expense"
	Profile              Key = "profile"
	Category             Key = "category"
	Amount               Key = "amount"
	Date                 Key = "date"
	Note                 Key = "note"
	SaveExpense          Key = "save_expense"
	Reports              Key = "reports"
	FilterProfile        Key = "filter_profile"
	StartDate            Key = "start_date"
	EndDate              Key = "end_date"
	ApplyFilters         Key = "apply_filters"
	ExportCSV            Key = "export_csv"
	Settings             Key = "settings"
	Appearance           Key = "appearance"
	DarkMode             Key = "dark_mode"
	LanguageLabel        Key = "language"
	CurrentLanguage      Key = "current_language"
	About                Key = "about"
	AboutDesc            Key = "about_desc"
	Dashboard            Key = "dashboard"
	Add                  Key = "add"
	TotalFamilySpending  Key = "total_family_spending"
	SpendingByMember     Key = "spending_by_member"
	TopFamilyCategories  Key = "top_family_categories"
	ExpenseAdded         Key = "expense_added"
	ExpenseDeleted       Key = "expense_deleted"
	ErrorOccurred        Key = "error_occurred"
	NoExpenses           Key = "no_expenses"
	Loading              Key = "loading"
	CreditCards          Key = "credit_cards"
	Cards                Key = "cards"
	AddCard              Key = "add_card"
	AddNewCard           Key = "add_new_card"
	CardProfile          Key = "card_profile"
	CardName             Key = "card_name"
	CardLastFour         Key = "card_last_four"
	CreditLimit          Key = "credit_limit"
	BillingDay           Key = "billing_day"
	CardColor            Key = "card_color"
	SaveCard             Key = "save_card"
	Cancel               Key = "cancel"
	CreditCard           Key = "credit_card"
	Spent                Key = "spent"
	Available            Key = "available"
	Utilization          Key = "utilization"
	RecentTransactions   Key = "recent_transactions"
	DeleteCard           Key = "delete_card"
	CardAdded            Key = "card_added"
	CardDeleted          Key = "card_deleted"
	CardUpdated          Key = "card_updated"
	EditCard             Key = "edit_card"
	AllProfiles          Key = "all_profiles"
	SelectCategory       Key = "select_category"
	SelectProfileOption  Key = "select_profile_option"
	CashNoCard           Key = "cash_no_card"
	NoData               Key = "no_data"
	NoProfileSelected    Key = "no_profile_selected"
	BillingOfMonth       Key = "billing_of_month"
	BillingCycle         Key = "billing_cycle"
	ConfirmDeleteExpense Key = "confirm_delete_expense"
	ConfirmDeleteCard    Key = "confirm_delete_card"
	InvalidInput         Key = "invalid_input"
	Close                Key = "close"
	Reload               Key = "reload"
	LanguageName         Key = "language_name"
)

// Keys lists every key the interface uses. CheckCoverage verifies each table against it.
func Keys() []Key {
	return []Key{
		AppTitle, SelectProfile, TotalSpent, Categories, PeriodWeek, PeriodMonth, PeriodYear,
		CategoryBreakdown, WeeklyTrend, TopCategories, FamilyOverview, AddExpense, Profile, Category,
		Amount, Date, Note, SaveExpense, Reports, FilterProfile, StartDate, EndDate, ApplyFilters,
		ExportCSV, Settings, Appearance, DarkMode, LanguageLabel, CurrentLanguage, About, AboutDesc,
		Dashboard, Add, TotalFamilySpending, SpendingByMember, TopFamilyCategories, ExpenseAdded,
		ExpenseDeleted, ErrorOccurred, NoExpenses, Loading, CreditCards, Cards, AddCard, AddNewCard,
		CardProfile, CardName, CardLastFour, CreditLimit, BillingDay, CardColor, SaveCard, Cancel,
		CreditCard, Spent, Available, Utilization, RecentTransactions, DeleteCard, CardAdded,
		CardDeleted, CardUpdated, EditCard, AllProfiles, SelectCategory, SelectProfileOption,
		CashNoCard, NoData, NoProfileSelected, BillingOfMonth, BillingCycle, ConfirmDeleteExpense,
		ConfirmDeleteCard, InvalidInput, Close, Reload, LanguageName,
	}
}

// PeriodKey maps a period value to its label key.
func PeriodKey(period string) Key {
	switch period {
	case "week":
		return PeriodWeek
	case "year":
		return PeriodYear
	default:
		return PeriodMonth
	}
}
