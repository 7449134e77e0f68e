package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		" Info ":  LogLevelInfo,
		"DEBUG":   LogLevelDebug,
		"trace":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestLoggerWithKeepsLevel(t *testing.T) {
	l := NewLogger(LogLevelDebug).With("run_id", "r-1")
	assert.Equal(t, LogLevelDebug, l.GetLevel())

	nop := NewNopLogger()
	nop.Info("dropped %d", 1)
	assert.Equal(t, LogLevelError, nop.GetLevel())
}
