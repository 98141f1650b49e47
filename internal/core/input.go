package core

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ParseID coerces a required form value to a positive identifier.
func ParseID(field, s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, invalid(field, ErrInvalidID)
	}
	return ID(v), nil
}

// ParseOptionalID returns nil for an empty value ("All Profiles", "Cash / No Card").
func ParseOptionalID(field, s string) (*ID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := ParseID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(field, s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, invalid(field, ErrInvalidDate)
	}
	return Date{Time: t}, nil
}

// ParseOptionalDate returns the zero date for an empty value.
func ParseOptionalDate(field, s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, nil
	}
	return ParseDate(field, s)
}

// ParseBillingDay coerces the billing cycle start day (1-31).
func ParseBillingDay(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 31 {
		return 0, invalid("billing_day", ErrInvalidBillingDay)
	}
	return v, nil
}

// ParseAmountField wraps ParseAmount with the field name.
func ParseAmountField(field, s string) (Money, error) {
	m, err := ParseAmount(s)
	if err != nil {
		return Money{}, invalid(field, err)
	}
	return m, nil
}

// NewExpenseFilters coerces the report filter form.
func NewExpenseFilters(profileID, startDate, endDate string) (ExpenseFilters, error) {
	var f ExpenseFilters
	var err error
	if f.ProfileID, err = ParseOptionalID("profile_id", profileID); err != nil {
		return ExpenseFilters{}, err
	}
	if f.StartDate, err = ParseOptionalDate("start_date", startDate); err != nil {
		return ExpenseFilters{}, err
	}
	if f.EndDate, err = ParseOptionalDate("end_date", endDate); err != nil {
		return ExpenseFilters{}, err
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate.Time) {
		return ExpenseFilters{}, invalid("end_date", ErrInvalidRange)
	}
	return f, nil
}

// Query returns the filters as query parameters; empty filters are sent as empty values.
func (f ExpenseFilters) Query() url.Values {
	q := url.Values{}
	q.Set("profile_id", "")
	if f.ProfileID != nil {
		q.Set("profile_id", strconv.FormatInt(int64(*f.ProfileID), 10))
	}
	q.Set("start_date", f.StartDate.String())
	q.Set("end_date", f.EndDate.String())
	return q
}

// OrdinalSuffix returns the English ordinal suffix for a day of month.
func OrdinalSuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
