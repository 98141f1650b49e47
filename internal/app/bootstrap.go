package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"familyspend/internal/core"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/render"
)

// Bootstrap loads profiles, categories and credit cards concurrently,
// selects the first profile, loads its dashboard and paints the whole page.
// A failed load leaves its collection empty and the page still renders; the
// returned error reports what failed.
func (a *App) Bootstrap(ctx context.Context, surf render.Surface) error {
	for _, m := range i18n.CheckCoverage() {
		a.logger.Warn("Missing translation",
			applog.FieldLanguage, m.Lang,
			applog.FieldMissing, m.Key)
	}

	var (
		g          errgroup.Group
		profiles   []core.Profile
		categories []core.Category
		cards      []core.CreditCard
		loaded     [3]bool
	)
	g.Go(func() (err error) {
		profiles, err = a.gw.Profiles(ctx)
		loaded[0] = err == nil
		return err
	})
	g.Go(func() (err error) {
		categories, err = a.gw.Categories(ctx)
		loaded[1] = err == nil
		return err
	})
	g.Go(func() (err error) {
		cards, err = a.gw.CreditCards(ctx)
		loaded[2] = err == nil
		return err
	})
	loadErr := g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if loaded[0] {
		a.state.SetProfiles(profiles)
	}
	if loaded[1] {
		a.state.SetCategories(categories)
	}
	if loaded[2] {
		a.state.SetCreditCards(cards)
	}
	a.settle()

	var r request
	a.dashboardRequest(&r)
	res, latest, dashErr := a.roundTrip(ctx, r)
	if dashErr == nil && latest && r.dashboard {
		a.adopt(&res.dashboard)
	}

	a.logger.InfoContext(ctx, "Bootstrap complete",
		"profiles", len(profiles),
		"categories", len(categories),
		"cards", len(cards))
	return errors.Join(loadErr, dashErr, a.paint(surf, render.Regions()...))
}
