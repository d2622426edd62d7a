package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "ideamock.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogWarn("unknown scenario %q", "bogus")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, `[WARN] unknown scenario "bogus"`) {
		t.Fatalf("expected LogWarn content, got: %s", content)
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" ", "", map[string]any{
		"mode":     "aws",
		"elements": []string{"Slack", "Trello"},
		"latency":  250 * time.Millisecond,
	})
	if !strings.HasPrefix(msg, "[MOCK]") {
		t.Fatalf("expected mock prefix, got: %s", msg)
	}
	if !strings.Contains(msg, "method=unknown") || !strings.Contains(msg, "scenario=unknown") {
		t.Fatalf("expected defaults, got: %s", msg)
	}
	if !strings.Contains(msg, `elements=["Slack","Trello"]`) {
		t.Fatalf("expected json elements, got: %s", msg)
	}
	if !strings.Contains(msg, "latency=250ms") {
		t.Fatalf("expected stringer latency, got: %s", msg)
	}
	if strings.Index(msg, "elements=") > strings.Index(msg, "mode=") {
		t.Fatalf("expected params sorted by key, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}

func TestInitRedirectsAwayFromPreviousWriter(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected previous writer to be replaced, got: %s", buf.String())
	}
}
