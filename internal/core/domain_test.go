package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-03-09"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2025-03-09" {
		t.Fatalf("got %s", d)
	}
	if err := json.Unmarshal([]byte(`"2025-03-09T17:59:23+02:00"`), &d); err != nil {
		t.Fatalf("unmarshal rfc3339: %v", err)
	}
	if d.String() != "2025-03-09" {
		t.Fatalf("got %s", d)
	}
	b, _ := json.Marshal(NewDate(2025, 12, 1))
	if string(b) != `"2025-12-01"` {
		t.Fatalf("marshal got %s", b)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"week", "month", "year"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	for _, s := range []string{"", "day", "Month", "quarter"} {
		_, err := ParsePeriod(s)
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("%q: expected period validation error, got %v", s, err)
		}
	}
}

func TestCreditCardInputValidate(t *testing.T) {
	good := CreditCardInput{ProfileID: 1, Name: "Visa", LastFour: "4242", CreditLimit: NewMoney(50000), BillingDay: 15, Color: "gradient-primary"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []CreditCardInput{
		{ProfileID: 0, Name: "Visa", CreditLimit: NewMoney(1), BillingDay: 1},
		{ProfileID: 1, Name: " ", CreditLimit: NewMoney(1), BillingDay: 1},
		{ProfileID: 1, Name: "Visa", LastFour: "42a2", CreditLimit: NewMoney(1), BillingDay: 1},
		{ProfileID: 1, Name: "Visa", CreditLimit: Money{}, BillingDay: 1},
		{ProfileID: 1, Name: "Visa", CreditLimit: NewMoney(1), BillingDay: 32},
	}
	for i, in := range bads {
		if err := in.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNewExpenseFilters(t *testing.T) {
	f, err := NewExpenseFilters("", "", "")
	if err != nil || f.ProfileID != nil || !f.StartDate.IsZero() {
		t.Fatalf("unexpected filters %+v err=%v", f, err)
	}
	if got := f.Query().Encode(); got != "end_date=&profile_id=&start_date=" {
		t.Fatalf("query = %s", got)
	}

	f, err = NewExpenseFilters("2", "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := f.Query().Encode(); got != "end_date=2025-01-31&profile_id=2&start_date=2025-01-01" {
		t.Fatalf("query = %s", got)
	}

	if _, err := NewExpenseFilters("x", "", ""); err == nil {
		t.Fatalf("expected error for bad profile")
	}
	if _, err := NewExpenseFilters("", "2025-02-01", "2025-01-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 31: "st"}
	for day, want := range cases {
		if got := OrdinalSuffix(day); got != want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestUtilizationLevel(t *testing.T) {
	cases := []struct {
		u    float64
		want string
	}{{10, ""}, {70, ""}, {70.1, "high"}, {90, "high"}, {95.5, "critical"}}
	for _, tc := range cases {
		if got := (CardDashboardSnapshot{Utilization: tc.u}).UtilizationLevel(); got != tc.want {
			t.Errorf("UtilizationLevel(%v) = %q, want %q", tc.u, got, tc.want)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	c := Category{Name: "Food", NameTe: "ఆహారం"}
	if c.Label("te") != "ఆహారం" || c.Label("en") != "Food" {
		t.Fatalf("unexpected labels")
	}
	if (Category{Name: "Food"}).Label("te") != "Food" {
		t.Fatalf("expected fallback to name")
	}
}
