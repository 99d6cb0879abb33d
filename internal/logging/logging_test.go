package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "idiombench.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })

	LogEvent("hello %s", "world")
	LogDebug("debug %s", "only")
	LogPhase("measuring", "count/plain/n=5", map[string]int{"samples": 3})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "debug only") {
		t.Fatalf("expected LogDebug content, got: %s", content)
	}
	if !strings.Contains(content, `[MEASURING] entry=count/plain/n=5 detail={"samples":3}`) {
		t.Fatalf("expected LogPhase content, got: %s", content)
	}
}

func TestDebugEventsSuppressed(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	SetDebug(false)
	LogDebug("hidden")
	LogPhase("warming", "x", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output, got: %s", buf.String())
	}
	if DebugEnabled() {
		t.Fatalf("debug should be disabled")
	}

	LogEvent("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected LogEvent output, got: %s", buf.String())
	}
}

func TestBuildPhaseMessageDefaults(t *testing.T) {
	msg := buildPhaseMessage(" done ", " ", map[string]any{"ok": true})
	if !strings.Contains(msg, "[DONE]") {
		t.Fatalf("expected uppercased phase, got: %s", msg)
	}
	if !strings.Contains(msg, "entry=unknown") {
		t.Fatalf("expected default entry, got: %s", msg)
	}
	if !strings.Contains(msg, "detail={\"ok\":true}") {
		t.Fatalf("expected detail json, got: %s", msg)
	}

	if msg := buildPhaseMessage("warming", "e", nil); strings.Contains(msg, "detail=") {
		t.Fatalf("nil detail should be omitted, got: %s", msg)
	}
}

func TestFormatDetailVariants(t *testing.T) {
	if got := formatDetail(nil); got != "null" {
		t.Fatalf("nil detail: %s", got)
	}
	if got := formatDetail(" "); got != `""` {
		t.Fatalf("empty string detail: %s", got)
	}
	if got := formatDetail([]byte("hi")); got != "hi" {
		t.Fatalf("byte detail: %s", got)
	}
	if got := formatDetail(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer detail: %s", got)
	}
	if got := formatDetail(errors.New("boom")); got != "boom" {
		t.Fatalf("error detail: %s", got)
	}
}

func TestCloseWithoutFile(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close without a file should be a no-op, got %v", err)
	}
}
