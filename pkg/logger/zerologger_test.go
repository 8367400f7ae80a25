package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestZeroLogger_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Info("session opened", Field{Key: "session_id", Value: "42"})

	output := buf.String()

	if !strings.Contains(output, "session opened") {
		t.Errorf("expected message in log, got: %s", output)
	}
	if !strings.Contains(output, `"session_id":"42"`) {
		t.Errorf("expected field session_id=42, got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected level=info, got: %s", output)
	}
}

func TestZeroLogger_DebugShownInDev(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Debug("quote computed")

	if !strings.Contains(buf.String(), "quote computed") {
		t.Errorf("expected debug log in development, got: %s", buf.String())
	}
}

func TestZeroLogger_DebugHiddenInProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("production", buf)

	log.Debug("debug-hidden")

	if buf.String() != "" {
		t.Errorf("expected NO debug log output in production, got: %s", buf.String())
	}
}

func TestZeroLogger_ErrorField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Error("seat load failed", Err(errors.New("upstream 502")))

	output := buf.String()
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("expected error level, got: %s", output)
	}
	if !strings.Contains(output, `"err":"upstream 502"`) {
		t.Errorf("expected err field, got: %s", output)
	}
}

func TestZeroLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf).With(Field{Key: "trip_id", Value: "t-1"})

	log.Warn("trip type switched", Field{Key: "to", Value: "ONE_WAY"})

	output := buf.String()
	if !strings.Contains(output, `"trip_id":"t-1"`) {
		t.Errorf("expected inherited field, got: %s", output)
	}
	if !strings.Contains(output, `"to":"ONE_WAY"`) {
		t.Errorf("expected call field, got: %s", output)
	}
}
