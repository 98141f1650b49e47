package core

// Period is the dashboard reporting granularity.
type Period string

const (
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

// DefaultPeriod is selected at startup.
const DefaultPeriod = Month

// Periods lists the selectable periods in display order.
func Periods() []Period {
	return []Period{Week, Month, Year}
}

// ParsePeriod accepts exactly week, month or year.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Week, Month, Year:
		return p, nil
	default:
		return "", invalid("period", ErrInvalidPeriod)
	}
}

// Theme is the color theme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme returns the theme, falling back to Light for anything unknown.
func ParseTheme(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Toggle flips light and dark.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}
