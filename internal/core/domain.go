package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type (
	// ID is a server-assigned entity identifier.
	ID int64

	Date struct {
		time.Time
	}

	Profile struct {
		ID          ID     `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}

	Category struct {
		ID     ID     `json:"id"`
		Name   string `json:"name"`
		NameTe string `json:"name_te"`
		Icon   string `json:"icon"`
	}

	Expense struct {
		ID             ID     `json:"id"`
		ProfileID      ID     `json:"profile_id"`
		ProfileName    string `json:"profile_name"`
		CategoryID     ID     `json:"category_id"`
		CategoryName   string `json:"category_name"`
		CategoryNameTe string `json:"category_name_te"`
		CategoryIcon   string `json:"category_icon"`
		Amount         Money  `json:"amount"`
		Date           Date   `json:"date"`
		Note           string `json:"note"`
		CardID         *ID    `json:"card_id,omitempty"`
		CreatedAt      string `json:"created_at"`
	}

	CreditCard struct {
		ID          ID     `json:"id"`
		ProfileID   ID     `json:"profile_id"`
		ProfileName string `json:"profile_name"`
		Name        string `json:"card_name"`
		LastFour    string `json:"card_last_four"`
		CreditLimit Money  `json:"credit_limit"`
		BillingDay  int    `json:"billing_day"`
		Color       string `json:"card_color"`
		CreatedAt   string `json:"created_at"`
	}

	// ExpenseInput is the creation body for POST /expenses.
	ExpenseInput struct {
		ProfileID  ID     `json:"profile_id"`
		CategoryID ID     `json:"category_id"`
		Amount     Money  `json:"amount"`
		Date       Date   `json:"date"`
		Note       string `json:"note"`
		CardID     *ID    `json:"card_id,omitempty"`
	}

	// CreditCardInput is the body for POST and PUT /credit-cards.
	CreditCardInput struct {
		ProfileID   ID     `json:"profile_id"`
		Name        string `json:"card_name"`
		LastFour    string `json:"card_last_four"`
		CreditLimit Money  `json:"credit_limit"`
		BillingDay  int    `json:"billing_day"`
		Color       string `json:"card_color"`
	}

	// ExpenseFilters scopes the report list and the CSV export. Zero values mean "any".
	ExpenseFilters struct {
		ProfileID *ID
		StartDate Date
		EndDate   Date
	}
)

// DefaultCardColor is used when a card has no color tag.
const DefaultCardColor = "gradient-primary"

var (
	ErrInvalidAmount     = errors.New("amount must be a positive decimal")
	ErrInvalidID         = errors.New("identifier must be a positive integer")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrInvalidBillingDay = errors.New("billing day must be between 1 and 31")
	ErrInvalidLastFour   = errors.New("last four must be 4 digits")
	ErrEmptyCardName     = errors.New("empty card name")
	ErrInvalidPeriod     = errors.New("period must be week, month or year")
	ErrInvalidRange      = errors.New("end date before start date")
)

// ValidationError reports a form field that failed coercion.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" and full RFC 3339 timestamps; empty and null leave the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}
	layout := dateLayout
	if len(value) > len(dateLayout) {
		layout = time.RFC3339
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", value, err)
	}
	*d = NewDate(t.Year(), int(t.Month()), t.Day())
	return nil
}

// Label returns the category name for the given language tag.
func (c Category) Label(lang string) string {
	return localized(lang, c.Name, c.NameTe)
}

// CategoryLabel returns the expense's category name for the given language tag.
func (e Expense) CategoryLabel(lang string) string {
	return localized(lang, e.CategoryName, e.CategoryNameTe)
}

func localized(lang, en, te string) string {
	if lang == "te" && te != "" {
		return te
	}
	return en
}

func (in CreditCardInput) Validate() error {
	if in.ProfileID <= 0 {
		return invalid("profile_id", ErrInvalidID)
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalid("card_name", ErrEmptyCardName)
	}
	if in.LastFour != "" && !isDigits(in.LastFour, 4) {
		return invalid("card_last_four", ErrInvalidLastFour)
	}
	if err := in.CreditLimit.Validate(); err != nil {
		return invalid("credit_limit", err)
	}
	if in.BillingDay < 1 || in.BillingDay > 31 {
		return invalid("billing_day", ErrInvalidBillingDay)
	}
	return nil
}

func (in ExpenseInput) Validate() error {
	if in.ProfileID <= 0 {
		return invalid("profile_id", ErrInvalidID)
	}
	if in.CategoryID <= 0 {
		return invalid("category_id", ErrInvalidID)
	}
	if err := in.Amount.Validate(); err != nil {
		return invalid("amount", err)
	}
	if in.Date.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
