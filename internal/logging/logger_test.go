package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"scenerender/internal/config"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestAssertLogsInRelease(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	config.SetDebugAssertions(false)
	Assert(errors.New("camera has no target"), "camera", 2)
	if out := buf.String(); !strings.Contains(out, "camera has no target") || !strings.Contains(out, "camera=2") {
		t.Errorf("unexpected log output %q", out)
	}

	buf.Reset()
	Assert(nil)
	if buf.Len() != 0 {
		t.Errorf("nil error logged %q", buf.String())
	}
}

func TestAssertPanicsInDebug(t *testing.T) {
	config.SetDebugAssertions(true)
	defer config.SetDebugAssertions(false)

	want := errors.New("arena exhausted")
	defer func() {
		if r := recover(); r != want {
			t.Errorf("recovered %v, want %v", r, want)
		}
	}()
	Assert(want)
	t.Error("Assert did not panic")
}
