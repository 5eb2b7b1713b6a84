package logging

import "context"

type ctxKey string

const requestIDKey ctxKey = "requestID"

// WithRequestID stores a request identifier on the context; SlogLogger adds
// it to every record logged with that context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the stored identifier or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
