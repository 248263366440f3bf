package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{"model", "gpt-4o", "OPENAI_API_KEY", "sk-123", "prompt_tokens", 12, "dangling"})
	want := []any{"model", "gpt-4o", "OPENAI_API_KEY", "[REDACTED]", "prompt_tokens", 12, "dangling"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("area", "Matemáticas").Info("item generated", "attempts", 1, "api_key", "x")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["area"] != "Matemáticas" || fields["attempts"] != int64(1) {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["api_key"] != "[REDACTED]" {
		t.Fatalf("api_key not redacted: %v", fields["api_key"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded", "k", "v")
	l.Sync()
}
