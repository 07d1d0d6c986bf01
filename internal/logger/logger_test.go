package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWithWriterUsesGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	SetDebug(true)
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "rank")
	l.Debug("loaded", "words", 3)
	out := buf.String()
	if !strings.Contains(out, "rank") || !strings.Contains(out, "loaded") || !strings.Contains(out, "words=3") {
		t.Fatalf("unexpected log output %q", out)
	}

	SetDebug(false)
	buf.Reset()
	NewWithWriter(&buf, "rank").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug output to be suppressed, got %q", buf.String())
	}
}
