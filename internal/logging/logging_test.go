package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogsAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Warning, &buf)

	log.Debug("should not appear")
	log.Info("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}

	log.Warning("heads up", "k", "v")
	if !strings.Contains(buf.String(), "heads up") {
		t.Fatalf("expected warning message in output, got %q", buf.String())
	}
}

func TestNewEmitsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Debug, &buf)
	log.Error("boom", "code", 42)

	var entry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("output not valid JSON: %v (%q)", err, line)
	}
	if entry["msg"] != "boom" {
		t.Errorf("msg = %v, want boom", entry["msg"])
	}
	if entry["code"] != float64(42) {
		t.Errorf("code = %v, want 42", entry["code"])
	}
}

func TestSetLevelRaisesThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := New(Debug, &buf)
	log.SetLevel(int8(Error))

	log.Info("quiet now")
	if buf.Len() != 0 {
		t.Fatalf("expected no output after raising level, got %q", buf.String())
	}
	log.Error("loud")
	if buf.Len() == 0 {
		t.Fatal("expected error to still log after raising level")
	}
}

func TestTestLoggerDoesNotPanic(t *testing.T) {
	log := NewTestLogger(t)
	log.Debug("d")
	log.Info("i")
	log.Warning("w")
	log.Error("e")
	log.SetLevel(0)
}
