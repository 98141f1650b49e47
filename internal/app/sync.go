package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"familyspend/internal/core"
	applog "familyspend/internal/log"
	"familyspend/internal/render"
	"familyspend/internal/state"
)

// request lists the reads a handler needs before it can reconcile.
type request struct {
	dashboard  bool
	profile    core.ID
	period     core.Period
	family     bool
	card       core.ID
	expenses   bool
	filters    core.ExpenseFilters
	profiles   bool
	categories bool
	cards      bool
}

func (r request) empty() bool {
	return !r.dashboard && !r.family && r.card == 0 && !r.expenses && !r.profiles && !r.categories && !r.cards
}

func (r request) queries() []state.Query {
	var q []state.Query
	if r.dashboard {
		q = append(q, state.QueryDashboard)
	}
	if r.family {
		q = append(q, state.QueryFamily)
	}
	if r.card != 0 {
		q = append(q, state.QueryCardDetail)
	}
	if r.expenses {
		q = append(q, state.QueryExpenses)
	}
	if r.profiles {
		q = append(q, state.QueryProfiles)
	}
	if r.categories {
		q = append(q, state.QueryCategories)
	}
	if r.cards {
		q = append(q, state.QueryCards)
	}
	return q
}

type response struct {
	dashboard  core.DashboardSnapshot
	family     core.FamilyOverviewSnapshot
	card       core.CardDashboardSnapshot
	expenses   []core.Expense
	profiles   []core.Profile
	categories []core.Category
	cards      []core.CreditCard
}

// tickets are the sequence numbers issued for one request.
type tickets map[state.Query]uint64

// begin issues sequence numbers. Caller holds a.mu.
func (a *App) begin(r request) tickets {
	t := make(tickets)
	for _, q := range r.queries() {
		t[q] = a.state.Begin(q)
	}
	return t
}

// current reports whether every ticket is still the latest for its query,
// logging the ones that were superseded. Caller holds a.mu.
func (a *App) current(ctx context.Context, t tickets) bool {
	ok := true
	for q, seq := range t {
		if !a.state.Latest(q, seq) {
			ok = false
			a.logger.For(ctx).InfoContext(ctx, "Superseded response dropped",
				applog.NewFields().WithSlot(string(q), seq).ToSlice()...)
		}
	}
	return ok
}

// fetch runs the reads of r concurrently. Caller must not hold a.mu.
// Every read runs to completion; the first error is returned.
func (a *App) fetch(ctx context.Context, r request) (response, error) {
	var (
		res response
		g   errgroup.Group
	)
	if r.dashboard {
		g.Go(func() (err error) {
			res.dashboard, err = a.gw.Dashboard(ctx, r.profile, r.period)
			return err
		})
	}
	if r.family {
		g.Go(func() (err error) {
			res.family, err = a.gw.FamilyOverview(ctx, r.period)
			return err
		})
	}
	if r.card != 0 {
		g.Go(func() (err error) {
			res.card, err = a.gw.CardDashboard(ctx, r.card)
			return err
		})
	}
	if r.expenses {
		g.Go(func() (err error) {
			res.expenses, err = a.gw.Expenses(ctx, r.filters)
			return err
		})
	}
	if r.profiles {
		g.Go(func() (err error) {
			res.profiles, err = a.gw.Profiles(ctx)
			return err
		})
	}
	if r.categories {
		g.Go(func() (err error) {
			res.categories, err = a.gw.Categories(ctx)
			return err
		})
	}
	if r.cards {
		g.Go(func() (err error) {
			res.cards, err = a.gw.CreditCards(ctx)
			return err
		})
	}
	return res, g.Wait()
}

// roundTrip begins r, releases the lock for the reads and takes it back.
// It reports whether the response is still current. Caller holds a.mu.
func (a *App) roundTrip(ctx context.Context, r request) (response, bool, error) {
	if r.empty() {
		return response{}, true, nil
	}
	t := a.begin(r)
	a.mu.Unlock()
	res, err := a.fetch(ctx, r)
	a.mu.Lock()
	if err != nil {
		return response{}, a.current(ctx, t), err
	}
	return res, a.current(ctx, t), nil
}

// dashboardRequest adds the dashboard read for the wanted selection when the
// dashboard is on screen. Caller holds a.mu.
func (a *App) dashboardRequest(r *request) {
	if a.wantProfile == 0 || !a.state.Visible(state.ViewDashboard) {
		return
	}
	r.dashboard = true
	r.profile = a.wantProfile
	r.period = a.wantPeriod
}

// adopt moves the wanted dashboard key into state together with its
// snapshot, nil when it was not fetched. Caller holds a.mu.
func (a *App) adopt(snap *core.DashboardSnapshot) {
	if a.wantProfile != 0 {
		if err := a.state.SelectProfile(a.wantProfile); err != nil {
			a.wantProfile, _ = a.state.CurrentProfile()
		}
	}
	a.state.SetPeriod(a.wantPeriod)
	a.snap.dashboard = snap
}

// settle resets the wanted key to what state shows. Caller holds a.mu.
func (a *App) settle() {
	a.wantProfile, _ = a.state.CurrentProfile()
	a.wantPeriod = a.state.Period()
}

// apply re-renders the regions depending on fields. Caller holds a.mu.
func (a *App) apply(surf render.Surface, fields ...Field) error {
	return a.refresh(surf, Dependents(fields...)...)
}

// refresh paints the regions that are on screen and marks the views of the
// others stale. Caller holds a.mu.
func (a *App) refresh(surf render.Surface, regions ...render.Region) error {
	var errs []error
	for _, r := range regions {
		if v, ok := regionView[r]; ok && !a.state.Visible(v) {
			a.state.MarkStale(v)
			continue
		}
		errs = append(errs, a.paintRegion(surf, r))
	}
	return errors.Join(errs...)
}

// paint renders regions unconditionally. Caller holds a.mu.
func (a *App) paint(surf render.Surface, regions ...render.Region) error {
	var errs []error
	for _, r := range regions {
		errs = append(errs, a.paintRegion(surf, r))
	}
	return errors.Join(errs...)
}

func (a *App) paintRegion(surf render.Surface, r render.Region) error {
	s, rd := a.state, a.renderer
	switch r {
	case render.RegionChrome:
		return rd.Chrome(s, surf)
	case render.RegionNav:
		return rd.Nav(s, surf)
	case render.RegionProfileSelect:
		return rd.ProfileSelect(s, surf)
	case render.RegionPeriodTabs:
		return rd.PeriodTabs(s, surf)
	case render.RegionDashboard:
		return rd.Dashboard(s, a.snap.dashboard, surf)
	case render.RegionExpenseForm:
		return rd.ExpenseForm(s, surf)
	case render.RegionReportFilters:
		return rd.ReportFilters(s, surf)
	case render.RegionExpenseList:
		return rd.ExpenseList(s, surf)
	case render.RegionFamily:
		return rd.Family(s, a.snap.family, surf)
	case render.RegionCardGrid:
		return rd.CardGrid(s, surf)
	case render.RegionCardForm:
		return rd.CardForm(s, surf)
	case render.RegionCardDetail:
		return rd.CardDetail(s, a.snap.card, surf)
	case render.RegionSettings:
		return rd.Settings(s, surf)
	case render.RegionConfirm:
		return rd.Confirm(s, "", "", surf)
	}
	return nil
}
