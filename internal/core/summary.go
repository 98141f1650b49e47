package core

// CategoryAmount is one slice of a category breakdown.
type CategoryAmount struct {
	Category   string `json:"category"`
	CategoryTe string `json:"category_te"`
	Icon       string `json:"icon"`
	Amount     Money  `json:"amount"`
}

// Label returns the category name for the given language tag.
func (c CategoryAmount) Label(lang string) string {
	return localized(lang, c.Category, c.CategoryTe)
}

// DayAmount is one point of the weekly trend.
type DayAmount struct {
	Date   Date  `json:"date"`
	Amount Money `json:"amount"`
}

// DashboardSnapshot is the per (profile, period) aggregation. It is rendered and discarded.
type DashboardSnapshot struct {
	TotalSpent        Money            `json:"total_spent"`
	CategoryBreakdown []CategoryAmount `json:"category_breakdown"`
	TopCategories     []CategoryAmount `json:"top_categories"`
	WeeklyTrend       []DayAmount      `json:"weekly_trend"`
}

// ProfileAmount is one bar of the family overview.
type ProfileAmount struct {
	Profile string `json:"profile"`
	Amount  Money  `json:"amount"`
}

type FamilyOverviewSnapshot struct {
	TotalFamily     Money            `json:"total_family"`
	ProfileSpending []ProfileAmount  `json:"profile_spending"`
	TopCategories   []CategoryAmount `json:"top_categories"`
}

// CardInfo echoes the card fields inside a card dashboard.
type CardInfo struct {
	Name        string `json:"card_name"`
	LastFour    string `json:"card_last_four"`
	CreditLimit Money  `json:"credit_limit"`
	BillingDay  int    `json:"billing_day"`
	Color       string `json:"card_color"`
}

// CardTransaction is a recent expense charged to a card.
type CardTransaction struct {
	ID       ID     `json:"id"`
	Amount   Money  `json:"amount"`
	Date     Date   `json:"date"`
	Note     string `json:"note"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// CardDashboardSnapshot covers the card's active billing cycle.
type CardDashboardSnapshot struct {
	Card               CardInfo          `json:"card_info"`
	TotalSpent         Money             `json:"total_spent"`
	AvailableBalance   Money             `json:"available_balance"`
	Utilization        float64           `json:"utilization"`
	CycleStart         Date              `json:"cycle_start"`
	CycleEnd           Date              `json:"cycle_end"`
	CategoryBreakdown  []CategoryAmount  `json:"category_breakdown"`
	RecentTransactions []CardTransaction `json:"recent_transactions"`
}

// UtilizationLevel classifies utilization for the progress bar: "", "high" (>70) or "critical" (>90).
func (s CardDashboardSnapshot) UtilizationLevel() string {
	switch {
	case s.Utilization > 90:
		return "critical"
	case s.Utilization > 70:
		return "high"
	default:
		return ""
	}
}
