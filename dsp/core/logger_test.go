package core

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsToSilent(t *testing.T) {
	SetLogger(nil)

	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should be disabled")
	}
}

func TestLogRejected(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	errBad := errors.New("bad cutoff")
	if err := LogRejected("svf", "SetParams", errBad); !errors.Is(err, errBad) {
		t.Fatalf("LogRejected returned %v", err)
	}

	out := buf.String()
	for _, want := range []string{"rejected configuration", "component=svf", "op=SetParams", "bad cutoff"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}
