// Package logging defines the structured-logging interface the rest
// of the application logs through. Backends wrap zerolog (the CLI
// default), slog, or discard everything (tests).
package logging

import "context"

// Logger is a context-aware structured logger. The variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "invoice paid", "id", inv.ID, "onTime", onTime)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that carries the given key-value
	// pairs on every record.
	With(args ...any) Logger
}
