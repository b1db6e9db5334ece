package testing

import (
	"testing"

	"github.com/chungastico/vigia/types"
)

// NewTestLogger returns a types.Logger that forwards every record to the
// test's own log. Session tests attach it through vigia.WithLogger so
// worker goroutine output lands in the per-test output instead of stderr.
//
// Parameters:
//   - t: Test to log through
//
// Returns:
//   - types.Logger: Logger writing to t.Logf
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) emit(level, msg string, keysAndValues []any) {
	l.t.Logf("%s %s %v", level, msg, keysAndValues)
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.emit("DEBUG", msg, keysAndValues)
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.emit("INFO", msg, keysAndValues)
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.emit("WARN", msg, keysAndValues)
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.emit("ERROR", msg, keysAndValues)
}

func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Fatalf("FATAL %s %v", msg, keysAndValues)
}
