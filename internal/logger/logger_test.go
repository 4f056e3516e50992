package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	// Reset state after test
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	output := buf.String()
	if output != "[DEBUG] test message arg\n" {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden message")

	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestLevels(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info message")
	Warn("warn message")
	Section("Sync")

	output := buf.String()
	if !strings.Contains(output, "[INFO] info message") {
		t.Errorf("missing info line: %q", output)
	}
	if !strings.Contains(output, "[WARN] warn message") {
		t.Errorf("missing warn line: %q", output)
	}
	if !strings.Contains(output, "=== Sync ===") {
		t.Errorf("missing section header: %q", output)
	}
}
