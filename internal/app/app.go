// Package app holds the action handlers. Every user gesture arrives as a
// typed Command at App.Dispatch, which runs it in three phases: validate and
// collect the input, commit with a single gateway call, then reconcile the
// Application State and re-render the dependent regions.
//
// The App lock is held while validating and reconciling but not during
// gateway calls, so handlers interleave only at those calls. Each snapshot
// query carries a sequence number; a response that is no longer the latest
// for its query is dropped before reconcile.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"familyspend/internal/core"
	"familyspend/internal/events"
	"familyspend/internal/export"
	"familyspend/internal/i18n"
	applog "familyspend/internal/log"
	"familyspend/internal/notify"
	"familyspend/internal/prefs"
	"familyspend/internal/render"
	"familyspend/internal/state"
)

// Gateway is the Remote Data Gateway as the handlers use it.
type Gateway interface {
	Profiles(ctx context.Context) ([]core.Profile, error)
	Categories(ctx context.Context) ([]core.Category, error)
	Dashboard(ctx context.Context, profile core.ID, period core.Period) (core.DashboardSnapshot, error)
	Expenses(ctx context.Context, f core.ExpenseFilters) ([]core.Expense, error)
	CreateExpense(ctx context.Context, in core.ExpenseInput) (core.ID, error)
	DeleteExpense(ctx context.Context, id core.ID) error
	FamilyOverview(ctx context.Context, period core.Period) (core.FamilyOverviewSnapshot, error)
	ExportCSV(ctx context.Context, f core.ExpenseFilters) ([]byte, string, error)
	CreditCards(ctx context.Context) ([]core.CreditCard, error)
	CreateCreditCard(ctx context.Context, in core.CreditCardInput) (core.ID, error)
	UpdateCreditCard(ctx context.Context, id core.ID, in core.CreditCardInput) error
	DeleteCreditCard(ctx context.Context, id core.ID) error
	CardDashboard(ctx context.Context, id core.ID) (core.CardDashboardSnapshot, error)
}

// Confirmer asks the user to approve a destructive command.
type Confirmer interface {
	Confirm(ctx context.Context, prompt i18n.Key) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt i18n.Key) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt i18n.Key) bool { return f(ctx, prompt) }

type confirmedKey struct{}

// WithConfirmation marks ctx as carrying the user's approval, so the next
// destructive command dispatched with it commits without asking.
func WithConfirmation(ctx context.Context) context.Context {
	return context.WithValue(ctx, confirmedKey{}, true)
}

func confirmedIn(ctx context.Context) bool {
	ok, _ := ctx.Value(confirmedKey{}).(bool)
	return ok
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownView    = errors.New("unknown view")
)

// Outcome tells the surface what changed beyond the painted regions.
type Outcome struct {
	View            state.View
	ViewChanged     bool
	Theme           core.Theme
	ThemeChanged    bool
	Language        i18n.Language
	LanguageChanged bool

	// Confirm is set when the command was held back until the user approves
	// the prompt. Nothing was committed.
	Confirm i18n.Key

	// Download is the exported file, for Export.
	Download *export.File
}

// Deps are the collaborators of App. Gateway, Renderer and Prefs are required.
type Deps struct {
	Gateway   Gateway
	Renderer  *render.Renderer
	Prefs     prefs.Store
	Publisher events.Publisher
	Sink      export.Sink
	Notifier  notify.Notifier
	Confirmer Confirmer
	Logger    *applog.Logger
	Initial   prefs.Preferences
}

type snapshots struct {
	dashboard *core.DashboardSnapshot
	family    *core.FamilyOverviewSnapshot
	card      *core.CardDashboardSnapshot
}

// App owns the Application State and runs commands against it.
type App struct {
	mu    sync.Mutex
	state *state.State
	snap  snapshots

	// Most recently requested dashboard key. It is adopted into state when
	// the response for it arrives and is still the latest.
	wantProfile core.ID
	wantPeriod  core.Period

	gw        Gateway
	renderer  *render.Renderer
	prefs     prefs.Store
	queue     *events.Queue
	sink      export.Sink
	notifier  notify.Notifier
	confirmer Confirmer
	logger    *applog.Logger

	mirrors sync.WaitGroup
}

// eventQueueSize bounds the mutation events waiting for the broker.
const eventQueueSize = 64

func New(d Deps) *App {
	if d.Publisher == nil {
		d.Publisher = events.Noop{}
	}
	if d.Sink == nil {
		d.Sink = export.Noop{}
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Logger == nil {
		d.Logger = applog.Discard()
	}
	if d.Initial == (prefs.Preferences{}) {
		d.Initial = prefs.Defaults()
	}
	s := state.New(d.Initial.Language, d.Initial.Theme)
	return &App{
		state:      s,
		wantPeriod: s.Period(),
		gw:         d.Gateway,
		renderer:   d.Renderer,
		prefs:      d.Prefs,
		queue:      events.NewQueue(d.Publisher, eventQueueSize, d.Logger),
		sink:       d.Sink,
		notifier:   d.Notifier,
		confirmer:  d.Confirmer,
		logger:     d.Logger.WithComponent(applog.ComponentApp),
	}
}

// Dispatch runs cmd and paints the regions it re-renders into surf.
// Invalid input is rejected with a *core.ValidationError before any gateway
// call; gateway failures return the *gateway.Error and leave state as it was.
func (a *App) Dispatch(ctx context.Context, cmd Command, surf render.Surface) (Outcome, error) {
	start := time.Now()
	out, err := a.handle(ctx, cmd, surf)

	var verr *core.ValidationError
	if errors.As(err, &verr) {
		a.notify(ctx, notify.Error, i18n.InvalidInput)
	}
	applog.NewStructuredLogger(a.logger).LogCommand(ctx, cmd.Name(), time.Since(start).Milliseconds(), err)
	return out, err
}

func (a *App) handle(ctx context.Context, cmd Command, surf render.Surface) (Outcome, error) {
	switch c := cmd.(type) {
	case SelectProfile:
		return a.selectProfile(ctx, c, surf)
	case SelectPeriod:
		return a.selectPeriod(ctx, c, surf)
	case SwitchView:
		return a.switchView(ctx, c, surf)
	case SubmitExpense:
		return a.submitExpense(ctx, c, surf)
	case DeleteExpense:
		return a.deleteExpense(ctx, c, surf)
	case ApplyReportFilters:
		return a.applyReportFilters(ctx, c, surf)
	case Export:
		return a.export(ctx)
	case OpenFamilyOverview:
		return a.openFamily(ctx, surf)
	case CloseFamilyOverview:
		return a.closeFamily(surf)
	case AddCreditCard:
		return a.addCreditCard(ctx, c, surf)
	case UpdateCreditCard:
		return a.updateCreditCard(ctx, c, surf)
	case DeleteCreditCard:
		return a.deleteCreditCard(ctx, c, surf)
	case OpenCard:
		return a.openCard(ctx, c, surf)
	case CloseCard:
		return a.closeCard(surf)
	case ToggleTheme:
		return a.toggleTheme(ctx, surf)
	case ToggleLanguage:
		return a.toggleLanguage(ctx, surf)
	case Reload:
		return a.reload(ctx, surf)
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// Page paints every region from the current state.
func (a *App) Page(surf render.Surface) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paint(surf, render.Regions()...)
}

// Snapshot returns a read-only copy of what the page shows: active view,
// language and theme.
func (a *App) Snapshot() (state.View, i18n.Language, core.Theme) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.ActiveView(), a.state.Language(), a.state.Theme()
}

// Inspect runs fn with the state locked. fn must not keep the reader.
func (a *App) Inspect(fn func(s state.Reader)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.state)
}

// AskConfirmation opens the confirmation dialog for a held-back command.
func (a *App) AskConfirmation(prompt i18n.Key, token string, surf render.Surface) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderer.Confirm(a.state, prompt, token, surf)
}

// DismissConfirmation closes the confirmation dialog.
func (a *App) DismissConfirmation(surf render.Surface) error {
	return a.AskConfirmation("", "", surf)
}

// Close waits for export mirrors and queued events, then releases every
// chart handle. The publisher itself stays open.
func (a *App) Close() {
	a.mirrors.Wait()
	a.queue.Close()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Close()
}

func (a *App) notify(ctx context.Context, level notify.Level, key i18n.Key) {
	notify.From(ctx, a.notifier).Notify(level, key)
}

// confirm reports whether a destructive command may commit, and whether the
// surface should ask first.
func (a *App) confirm(ctx context.Context, prompt i18n.Key) (ok, ask bool) {
	switch {
	case confirmedIn(ctx):
		return true, false
	case a.confirmer == nil:
		return false, true
	default:
		return a.confirmer.Confirm(ctx, prompt), false
	}
}

// publish queues e for the broker. Delivery happens after the action
// returns; only a full queue is reported here.
func (a *App) publish(ctx context.Context, e events.Event) {
	if err := a.queue.Publish(ctx, e); err != nil {
		a.logger.For(ctx).WarnContext(ctx, "Event dropped",
			"kind", e.Kind,
			"entity_id", e.EntityID,
			applog.FieldError, err)
	}
}
