// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

// Context keys propagated into log records.
const (
	RequestIDKey contextKey = "request_id"
	UserKey      contextKey = "user"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if user, ok := ctx.Value(UserKey).(string); ok {
		r.AddAttrs(slog.String("user", user))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	var handler slog.Handler
	level := slog.LevelInfo

	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Pretty text output for local development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	Logger = slog.New(&ctxHandler{handler})
}

// WithRequestID returns a new context carrying the request id for the logger.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithUser returns a new context carrying the resolved user identity (email).
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, UserKey, email)
}
