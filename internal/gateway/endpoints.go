package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"familyspend/internal/core"
)

// Created is the service's answer to a create request.
type Created struct {
	ID      core.ID `json:"id"`
	Message string  `json:"message"`
}

func (c *Client) Profiles(ctx context.Context) ([]core.Profile, error) {
	var out []core.Profile
	if err := c.Request(ctx, http.MethodGet, "/profiles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	if err := c.Request(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard loads the snapshot for one profile and period.
func (c *Client) Dashboard(ctx context.Context, profile core.ID, period core.Period) (core.DashboardSnapshot, error) {
	var out core.DashboardSnapshot
	endpoint := fmt.Sprintf("/dashboard/%d?%s", profile, url.Values{"period": {string(period)}}.Encode())
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return core.DashboardSnapshot{}, err
	}
	return out, nil
}

// Expenses lists expenses matching the report filters, newest first.
func (c *Client) Expenses(ctx context.Context, f core.ExpenseFilters) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.Request(ctx, http.MethodGet, "/expenses?"+f.Query().Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.ID, error) {
	var out Created
	if err := c.Request(ctx, http.MethodPost, "/expenses", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id core.ID) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
}

func (c *Client) FamilyOverview(ctx context.Context, period core.Period) (core.FamilyOverviewSnapshot, error) {
	var out core.FamilyOverviewSnapshot
	endpoint := "/family-overview?" + url.Values{"period": {string(period)}}.Encode()
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return core.FamilyOverviewSnapshot{}, err
	}
	return out, nil
}

// ExportCSV downloads the CSV export for the given filters.
func (c *Client) ExportCSV(ctx context.Context, f core.ExpenseFilters) ([]byte, string, error) {
	return c.Download(ctx, "/export/csv?"+f.Query().Encode())
}

func (c *Client) CreditCards(ctx context.Context) ([]core.CreditCard, error) {
	var out []core.CreditCard
	if err := c.Request(ctx, http.MethodGet, "/credit-cards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCreditCard(ctx context.Context, in core.CreditCardInput) (core.ID, error) {
	var out Created
	if err := c.Request(ctx, http.MethodPost, "/credit-cards", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateCreditCard(ctx context.Context, id core.ID, in core.CreditCardInput) error {
	return c.Request(ctx, http.MethodPut, fmt.Sprintf("/credit-cards/%d", id), in, nil)
}

func (c *Client) DeleteCreditCard(ctx context.Context, id core.ID) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/credit-cards/%d", id), nil, nil)
}

// CardDashboard loads the active billing cycle summary of one card.
func (c *Client) CardDashboard(ctx context.Context, id core.ID) (core.CardDashboardSnapshot, error) {
	var out core.CardDashboardSnapshot
	if err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/credit-cards/%d/dashboard", id), nil, &out); err != nil {
		return core.CardDashboardSnapshot{}, err
	}
	return out, nil
}
