// Package notify carries transient user notifications (toasts) from the
// gateway and the action handlers to whatever surface displays them.
package notify

import (
	"context"
	"sync"

	"familyspend/internal/i18n"
)

// Level selects the toast styling.
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
)

// Notifier shows a localized message for a short time.
type Notifier interface {
	Notify(level Level, key i18n.Key)
}

// Func adapts a function to Notifier.
type Func func(level Level, key i18n.Key)

func (f Func) Notify(level Level, key i18n.Key) { f(level, key) }

// Discard drops every notification.
var Discard Notifier = Func(func(Level, i18n.Key) {})

// Toast is one queued notification.
type Toast struct {
	Level Level
	Key   i18n.Key
}

// Recorder collects notifications in order.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(level Level, key i18n.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Level: level, Key: key})
}

// Toasts returns a copy of everything recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Keys returns the recorded keys in order.
func (r *Recorder) Keys() []i18n.Key {
	toasts := r.Toasts()
	out := make([]i18n.Key, len(toasts))
	for i, t := range toasts {
		out[i] = t.Key
	}
	return out
}

type ctxKey struct{}

// WithNotifier returns a context whose notifications go to n.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// From returns the notifier carried by ctx, or fallback when there is none.
func From(ctx context.Context, fallback Notifier) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok {
		return n
	}
	if fallback == nil {
		return Discard
	}
	return fallback
}
