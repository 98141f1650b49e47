package i18n

import (
	"strconv"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"familyspend/internal/core"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// FormatMoney renders an amount with the rupee symbol and the grouping rules
// of the language's Indian locale, keeping at most two fraction digits.
func FormatMoney(lang Language, m core.Money) string {
	p := message.NewPrinter(lang.Tag())
	f, _ := m.Round(2).Float64()
	return CurrencySymbol + p.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatPercent renders a utilization figure with one fraction digit.
func FormatPercent(lang Language, v float64) string {
	p := message.NewPrinter(lang.Tag())
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + "%"
}

var (
	shortMonths = map[Language][12]string{
		English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec"},
		Telugu:  {"జన", "ఫిబ్ర", "మార్చి", "ఏప్రి", "మే", "జూన్", "జులై", "ఆగ", "సెప్టెం", "అక్టో", "నవం", "డిసెం"},
	}
	shortWeekdays = map[Language][7]string{
		English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Telugu:  {"ఆది", "సోమ", "మంగళ", "బుధ", "గురు", "శుక్ర", "శని"},
	}
)

// FormatDate renders a calendar date as day/month/year.
func FormatDate(_ Language, d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2/1/2006")
}

// FormatShortDate renders "5 Jan" style dates.
func FormatShortDate(lang Language, d core.Date) string {
	if d.IsZero() {
		return ""
	}
	months, ok := shortMonths[lang]
	if !ok {
		months = shortMonths[English]
	}
	return strconv.Itoa(d.Day()) + " " + months[d.Month()-1]
}

// FormatRange renders a billing cycle as "5 Jan - 4 Feb".
func FormatRange(lang Language, start, end core.Date) string {
	return FormatShortDate(lang, start) + " - " + FormatShortDate(lang, end)
}

// Weekday returns the abbreviated weekday name used on trend chart labels.
func Weekday(lang Language, d core.Date) string {
	days, ok := shortWeekdays[lang]
	if !ok {
		days = shortWeekdays[English]
	}
	return days[d.Weekday()]
}

func ordinal(lang Language, day int) string {
	if lang == Telugu {
		return strconv.Itoa(day)
	}
	return strconv.Itoa(day) + core.OrdinalSuffix(day)
}
