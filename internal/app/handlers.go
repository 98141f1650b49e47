package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"familyspend/internal/core"
	"familyspend/internal/events"
	"familyspend/internal/export"
	"familyspend/internal/i18n"
	"familyspend/internal/notify"
	"familyspend/internal/prefs"
	"familyspend/internal/render"
	"familyspend/internal/state"
)

const mirrorTimeout = 30 * time.Second

func (a *App) selectProfile(ctx context.Context, c SelectProfile, surf render.Surface) (Outcome, error) {
	id, err := core.ParseID("profile_id", c.ProfileID)
	if err != nil {
		return Outcome{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !slices.ContainsFunc(a.state.Profiles(), func(p core.Profile) bool { return p.ID == id }) {
		return Outcome{}, &core.ValidationError{Field: "profile_id", Err: state.ErrUnknownProfile}
	}
	a.wantProfile = id
	return a.reselect(ctx, surf, false, FieldProfile)
}

func (a *App) selectPeriod(ctx context.Context, c SelectPeriod, surf render.Surface) (Outcome, error) {
	p, err := core.ParsePeriod(strings.TrimSpace(c.Period))
	if err != nil {
		return Outcome{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.wantPeriod = p
	return a.reselect(ctx, surf, true, FieldPeriod)
}

// reselect fetches what the on-screen views need for the wanted dashboard
// key and adopts it. Profile and period are independent: the fetch always
// uses the latest requested value of both. Caller holds a.mu.
func (a *App) reselect(ctx context.Context, surf render.Surface, withFamily bool, field Field) (Outcome, error) {
	r := request{period: a.wantPeriod}
	a.dashboardRequest(&r)
	r.family = withFamily && a.state.FamilyOpen()

	res, latest, err := a.roundTrip(ctx, r)
	if err != nil {
		if latest {
			a.settle()
		}
		return Outcome{}, err
	}
	if !latest {
		return Outcome{}, nil
	}

	if r.dashboard {
		a.adopt(&res.dashboard)
	} else {
		a.adopt(nil)
	}
	if r.family {
		a.snap.family = &res.family
	}
	return Outcome{}, a.apply(surf, field)
}

func (a *App) switchView(ctx context.Context, c SwitchView, surf render.Surface) (Outcome, error) {
	v, ok := state.ParseView(c.View)
	if !ok {
		return Outcome{}, &core.ValidationError{Field: "view", Err: ErrUnknownView}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	wasStale := a.state.SetView(v)
	out := Outcome{View: v, ViewChanged: true}

	var r request
	switch v {
	case state.ViewDashboard:
		if wasStale || a.snap.dashboard == nil {
			a.dashboardRequest(&r)
		}
	case state.ViewReports:
		r.expenses = true
		r.filters = a.state.Filters()
	}

	res, latest, err := a.roundTrip(ctx, r)
	switch {
	case err != nil:
		a.state.MarkStale(v)
	case latest && r.dashboard:
		a.adopt(&res.dashboard)
	case latest && r.expenses:
		a.state.SetExpenses(res.expenses)
	}
	return out, errors.Join(err, a.show(surf, v))
}

// show paints the navigation and the regions of v if v is still the active
// view. Caller holds a.mu.
func (a *App) show(surf render.Surface, v state.View) error {
	if a.state.ActiveView() != v {
		a.state.MarkStale(v)
		return nil
	}
	return a.paint(surf, append([]render.Region{render.RegionNav}, regionsOf(v)...)...)
}

func expenseInput(c SubmitExpense) (core.ExpenseInput, error) {
	var (
		in  core.ExpenseInput
		err error
	)
	if in.ProfileID, err = core.ParseID("profile_id", c.ProfileID); err != nil {
		return in, err
	}
	if in.CategoryID, err = core.ParseID("category_id", c.CategoryID); err != nil {
		return in, err
	}
	if in.Amount, err = core.ParseAmountField("amount", c.Amount); err != nil {
		return in, err
	}
	if in.Date, err = core.ParseDate("date", c.Date); err != nil {
		return in, err
	}
	if in.CardID, err = core.ParseOptionalID("card_id", c.CardID); err != nil {
		return in, err
	}
	in.Note = strings.TrimSpace(c.Note)
	return in, in.Validate()
}

func (a *App) submitExpense(ctx context.Context, c SubmitExpense, surf render.Surface) (Outcome, error) {
	in, err := expenseInput(c)
	if err != nil {
		return Outcome{}, err
	}

	id, err := a.gw.CreateExpense(ctx, in)
	if err != nil {
		return Outcome{}, err
	}
	a.notify(ctx, notify.Success, i18n.ExpenseAdded)
	a.publish(ctx, events.New(events.ExpenseCreated, id, in.ProfileID))

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.SetView(state.ViewDashboard)
	a.state.MarkStale(state.ViewReports)

	var r request
	a.dashboardRequest(&r)
	res, latest, err := a.roundTrip(ctx, r)
	switch {
	case err != nil:
		a.state.MarkStale(state.ViewDashboard)
	case latest && r.dashboard:
		a.adopt(&res.dashboard)
	}
	out := Outcome{View: state.ViewDashboard, ViewChanged: true}
	return out, errors.Join(err, a.paint(surf, render.RegionExpenseForm), a.show(surf, state.ViewDashboard))
}

func (a *App) deleteExpense(ctx context.Context, c DeleteExpense, surf render.Surface) (Outcome, error) {
	id, err := core.ParseID("expense_id", c.ID)
	if err != nil {
		return Outcome{}, err
	}
	ok, ask := a.confirm(ctx, i18n.ConfirmDeleteExpense)
	if ask {
		return Outcome{Confirm: i18n.ConfirmDeleteExpense}, nil
	}
	if !ok {
		return Outcome{}, nil
	}

	if err := a.gw.DeleteExpense(ctx, id); err != nil {
		return Outcome{}, err
	}
	a.notify(ctx, notify.Success, i18n.ExpenseDeleted)
	a.publish(ctx, events.New(events.ExpenseDeleted, id, 0))

	a.mu.Lock()
	defer a.mu.Unlock()
	r := request{expenses: a.state.Visible(state.ViewReports), filters: a.state.Filters()}
	a.dashboardRequest(&r)

	res, latest, err := a.roundTrip(ctx, r)
	if err != nil {
		a.state.MarkStale(state.ViewReports)
		a.state.MarkStale(state.ViewDashboard)
		return Outcome{}, err
	}
	if latest {
		if r.expenses {
			a.state.SetExpenses(res.expenses)
		}
		if r.dashboard {
			a.adopt(&res.dashboard)
		}
	}
	return Outcome{}, a.apply(surf, FieldExpenses, FieldProfile)
}

func (a *App) applyReportFilters(ctx context.Context, c ApplyReportFilters, surf render.Surface) (Outcome, error) {
	f, err := core.NewExpenseFilters(c.ProfileID, c.StartDate, c.EndDate)
	if err != nil {
		return Outcome{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	res, latest, err := a.roundTrip(ctx, request{expenses: true, filters: f})
	if err != nil || !latest {
		return Outcome{}, err
	}
	a.state.SetFilters(f)
	a.state.SetExpenses(res.expenses)
	return Outcome{}, a.apply(surf, FieldFilters)
}

func (a *App) export(ctx context.Context) (Outcome, error) {
	a.mu.Lock()
	f := a.state.Filters()
	a.mu.Unlock()

	data, name, err := a.gw.ExportCSV(ctx, f)
	if err != nil {
		return Outcome{}, err
	}
	if name == "" {
		name = "expenses.csv"
	}
	file := export.File{Name: name, Data: data}

	a.mirrors.Add(1)
	go func() {
		defer a.mirrors.Done()
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
		defer cancel()
		export.Mirror(mctx, a.sink, file, a.logger)
	}()
	return Outcome{Download: &file}, nil
}

func (a *App) openFamily(ctx context.Context, surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res, latest, err := a.roundTrip(ctx, request{family: true, period: a.state.Period()})
	if err != nil || !latest {
		return Outcome{}, err
	}
	a.state.OpenFamily()
	a.snap.family = &res.family
	return Outcome{}, a.apply(surf, FieldFamily)
}

func (a *App) closeFamily(surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.CloseFamily()
	a.snap.family = nil
	return Outcome{}, a.paint(surf, render.RegionFamily)
}

func cardInput(f CardForm) (core.CreditCardInput, error) {
	var (
		in  core.CreditCardInput
		err error
	)
	if in.ProfileID, err = core.ParseID("profile_id", f.ProfileID); err != nil {
		return in, err
	}
	if in.CreditLimit, err = core.ParseAmountField("credit_limit", f.CreditLimit); err != nil {
		return in, err
	}
	if in.BillingDay, err = core.ParseBillingDay(f.BillingDay); err != nil {
		return in, err
	}
	in.Name = strings.TrimSpace(f.Name)
	in.LastFour = strings.TrimSpace(f.LastFour)
	in.Color = strings.TrimSpace(f.Color)
	if in.Color == "" {
		in.Color = core.DefaultCardColor
	}
	return in, in.Validate()
}

func (a *App) addCreditCard(ctx context.Context, c AddCreditCard, surf render.Surface) (Outcome, error) {
	in, err := cardInput(c.Card)
	if err != nil {
		return Outcome{}, err
	}

	id, err := a.gw.CreateCreditCard(ctx, in)
	if err != nil {
		return Outcome{}, err
	}
	a.notify(ctx, notify.Success, i18n.CardAdded)
	a.publish(ctx, events.New(events.CardCreated, id, in.ProfileID))

	a.mu.Lock()
	defer a.mu.Unlock()
	res, latest, err := a.roundTrip(ctx, request{cards: true})
	if err != nil {
		return Outcome{}, errors.Join(err, a.refresh(surf, render.RegionCardForm))
	}
	if latest {
		a.state.SetCreditCards(res.cards)
	}
	return Outcome{}, errors.Join(a.apply(surf, FieldCards), a.refresh(surf, render.RegionCardForm))
}

func (a *App) updateCreditCard(ctx context.Context, c UpdateCreditCard, surf render.Surface) (Outcome, error) {
	id, err := core.ParseID("card_id", c.ID)
	if err != nil {
		return Outcome{}, err
	}
	in, err := cardInput(c.Card)
	if err != nil {
		return Outcome{}, err
	}

	if err := a.gw.UpdateCreditCard(ctx, id, in); err != nil {
		return Outcome{}, err
	}
	a.notify(ctx, notify.Success, i18n.CardUpdated)
	a.publish(ctx, events.New(events.CardUpdated, id, in.ProfileID))

	a.mu.Lock()
	defer a.mu.Unlock()
	r := request{cards: true}
	if cur, open := a.state.CurrentCard(); open && cur == id {
		r.card = id
	}
	res, latest, err := a.roundTrip(ctx, r)
	if err != nil || !latest {
		return Outcome{}, err
	}
	a.state.SetCreditCards(res.cards)
	if r.card != 0 {
		a.snap.card = &res.card
	}
	return Outcome{}, a.apply(surf, FieldCards, FieldCard)
}

func (a *App) deleteCreditCard(ctx context.Context, c DeleteCreditCard, surf render.Surface) (Outcome, error) {
	id, err := core.ParseID("card_id", c.ID)
	if err != nil {
		return Outcome{}, err
	}
	ok, ask := a.confirm(ctx, i18n.ConfirmDeleteCard)
	if ask {
		return Outcome{Confirm: i18n.ConfirmDeleteCard}, nil
	}
	if !ok {
		return Outcome{}, nil
	}

	if err := a.gw.DeleteCreditCard(ctx, id); err != nil {
		return Outcome{}, err
	}
	a.notify(ctx, notify.Success, i18n.CardDeleted)
	a.publish(ctx, events.New(events.CardDeleted, id, 0))

	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	if cur, open := a.state.CurrentCard(); open && cur == id {
		a.state.CloseCard()
		a.snap.card = nil
		errs = append(errs, a.paint(surf, render.RegionCardDetail))
	}
	res, latest, err := a.roundTrip(ctx, request{cards: true})
	if err != nil {
		return Outcome{}, errors.Join(append(errs, err)...)
	}
	if latest {
		a.state.SetCreditCards(res.cards)
	}
	return Outcome{}, errors.Join(append(errs, a.apply(surf, FieldCards))...)
}

func (a *App) openCard(ctx context.Context, c OpenCard, surf render.Surface) (Outcome, error) {
	id, err := core.ParseID("card_id", c.ID)
	if err != nil {
		return Outcome{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	res, latest, err := a.roundTrip(ctx, request{card: id})
	if err != nil || !latest {
		return Outcome{}, err
	}
	a.state.OpenCard(id)
	a.snap.card = &res.card
	return Outcome{}, a.apply(surf, FieldCard)
}

func (a *App) closeCard(surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.CloseCard()
	a.snap.card = nil
	return Outcome{}, a.paint(surf, render.RegionCardDetail)
}

func (a *App) toggleTheme(ctx context.Context, surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.state.Theme().Toggle()
	if err := prefs.SaveTheme(ctx, a.prefs, t); err != nil {
		a.notify(ctx, notify.Error, i18n.ErrorOccurred)
		return Outcome{}, fmt.Errorf("persist theme: %w", err)
	}
	a.state.SetTheme(t)
	return Outcome{Theme: t, ThemeChanged: true}, a.apply(surf, FieldTheme)
}

func (a *App) toggleLanguage(ctx context.Context, surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	l := a.state.Language().Toggle()
	if err := prefs.SaveLanguage(ctx, a.prefs, l); err != nil {
		a.notify(ctx, notify.Error, i18n.ErrorOccurred)
		return Outcome{}, fmt.Errorf("persist language: %w", err)
	}
	a.state.SetLanguage(l)
	return Outcome{Language: l, LanguageChanged: true}, a.apply(surf, FieldLanguage)
}

func (a *App) reload(ctx context.Context, surf render.Surface) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res, latest, err := a.roundTrip(ctx, request{profiles: true, categories: true, cards: true})
	if err != nil || !latest {
		return Outcome{}, err
	}
	changed := a.state.SetProfiles(res.profiles)
	a.state.SetCategories(res.categories)
	a.state.SetCreditCards(res.cards)
	fields := []Field{FieldProfiles, FieldCategories, FieldCards}
	if !changed {
		return Outcome{}, a.apply(surf, fields...)
	}

	// The selection fell back to another profile: the dashboard follows it.
	a.settle()
	a.snap.dashboard = nil
	var r request
	a.dashboardRequest(&r)
	dash, latest, err := a.roundTrip(ctx, r)
	if err == nil && latest && r.dashboard {
		a.adopt(&dash.dashboard)
	}
	return Outcome{}, errors.Join(err, a.apply(surf, append(fields, FieldProfile)...))
}
