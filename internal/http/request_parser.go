// Package http provides HTTP server and handler implementations.
//
// This file maps posted command forms onto the typed commands the action
// handlers run. Coercion of the values happens in the handlers; here they
// are only sanitized.

package http

import (
	"fmt"
	"net/url"
	"strings"

	"familyspend/internal/app"
)

// ParseCommand builds the command named by the /cmd/{name} path from form.
func ParseCommand(name string, form url.Values) (app.Command, error) {
	get := func(key string) string { return sanitizeInput(form.Get(key)) }

	switch strings.Trim(name, "/") {
	case "profile":
		return app.SelectProfile{ProfileID: get("profile_id")}, nil
	case "period":
		return app.SelectPeriod{Period: get("period")}, nil
	case "view":
		return app.SwitchView{View: get("view")}, nil
	case "expense":
		return app.SubmitExpense{
			ProfileID:  get("profile_id"),
			CategoryID: get("category_id"),
			Amount:     get("amount"),
			Date:       get("date"),
			Note:       get("note"),
			CardID:     get("card_id"),
		}, nil
	case "expense/delete":
		return app.DeleteExpense{ID: get("id")}, nil
	case "filters":
		return app.ApplyReportFilters{
			ProfileID: get("profile_id"),
			StartDate: get("start_date"),
			EndDate:   get("end_date"),
		}, nil
	case "export":
		return app.Export{}, nil
	case "family/open":
		return app.OpenFamilyOverview{}, nil
	case "family/close":
		return app.CloseFamilyOverview{}, nil
	case "card":
		return app.AddCreditCard{Card: cardForm(get)}, nil
	case "card/update":
		return app.UpdateCreditCard{ID: get("id"), Card: cardForm(get)}, nil
	case "card/delete":
		return app.DeleteCreditCard{ID: get("id")}, nil
	case "card/open":
		return app.OpenCard{ID: get("id")}, nil
	case "card/close":
		return app.CloseCard{}, nil
	case "theme":
		return app.ToggleTheme{}, nil
	case "language":
		return app.ToggleLanguage{}, nil
	case "reload":
		return app.Reload{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", app.ErrUnknownCommand, name)
	}
}

func cardForm(get func(string) string) app.CardForm {
	return app.CardForm{
		ProfileID:   get("profile_id"),
		Name:        get("card_name"),
		LastFour:    get("card_last_four"),
		CreditLimit: get("credit_limit"),
		BillingDay:  get("billing_day"),
		Color:       get("card_color"),
	}
}

// sanitizeInput removes control characters except tab, newline and carriage
// return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
