package logging

import "context"

type discardLogger struct{}

// Discard returns a Logger that drops everything. Useful in tests and
// as a safe default before configuration is loaded.
func Discard() Logger { return discardLogger{} }

func (discardLogger) Info(context.Context, string, ...any)  {}
func (discardLogger) Warn(context.Context, string, ...any)  {}
func (discardLogger) Error(context.Context, string, ...any) {}
func (discardLogger) With(...any) Logger                    { return discardLogger{} }
