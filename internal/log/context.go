package log

import "context"

type requestIDKey struct{}

// ContextWithRequestID returns ctx carrying the id of the request it serves.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id carried by ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// For returns l tagged with the request id carried by ctx, if any.
func (l *Logger) For(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With(FieldRequestID, id)
	}
	return l
}
