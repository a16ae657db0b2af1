package logging

import (
	"context"

	"github.com/goliatone/go-blockgen/pkg/interfaces"
)

type noopLogger struct{}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

func (noopLogger) Trace(string, ...any)                           {}
func (noopLogger) Debug(string, ...any)                           {}
func (noopLogger) Info(string, ...any)                            {}
func (noopLogger) Warn(string, ...any)                            {}
func (noopLogger) Error(string, ...any)                           {}
func (noopLogger) Fatal(string, ...any)                           {}
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
func (n noopLogger) WithFields(map[string]any) interfaces.Logger  { return n }
