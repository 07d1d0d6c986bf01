package corpus

import (
	"strings"
	"testing"
)

func TestBuildCharModelCountsEveryOccurrence(t *testing.T) {
	m := BuildCharModel(New([]string{"foo", "bar", "baz"}))
	expected := map[rune]int{'a': 2, 'b': 2, 'f': 1, 'o': 2, 'r': 1, 'z': 1}
	for r, n := range expected {
		if got := m.Count(r); got != n {
			t.Fatalf("expected count %d for %q, got %d", n, r, got)
		}
	}
	if m.Total() != 9 {
		t.Fatalf("expected 9 characters, got %d", m.Total())
	}
	if m.Count('q') != 0 {
		t.Fatalf("expected unseen character to count 0")
	}
}

func TestBuildCharModelEmptyCorpus(t *testing.T) {
	m := BuildCharModel(New(nil))
	if m.Total() != 0 || len(m.Chars()) != 0 {
		t.Fatalf("expected empty model, got %d chars", len(m.Chars()))
	}
	if Score("abc", m) != 0 {
		t.Fatalf("expected zero score from empty model")
	}
}

func TestCharModelCharsOrder(t *testing.T) {
	m := BuildCharModel(New([]string{"foo", "bar", "baz"}))
	chars := string(m.Chars())
	if chars != "abofrz" {
		t.Fatalf("unexpected order: %q", chars)
	}
}

func TestBuildPositionalModel(t *testing.T) {
	m := BuildPositionalModel(New([]string{"foo", "bar", "baz", "ñob"}))
	if m.Count('b', 0) != 2 {
		t.Fatalf("expected b twice at 0, got %d", m.Count('b', 0))
	}
	if m.Count('o', 1) != 2 || m.Count('o', 2) != 1 {
		t.Fatalf("unexpected o counts: %v", m.Positions('o'))
	}
	if m.Count('b', 2) != 1 {
		t.Fatalf("expected multi-byte prefix to shift b to position 2 once, got %d", m.Count('b', 2))
	}
	if m.Count('ñ', 0) != 1 {
		t.Fatalf("expected ñ at position 0")
	}
	if m.Count('b', MaxPosition) != 0 || m.Count('b', -1) != 0 {
		t.Fatalf("expected out-of-range positions to count 0")
	}
	if got := m.Positions('z'); len(got) != 3 || got[2] != 1 {
		t.Fatalf("unexpected z positions: %v", got)
	}
}

func TestBuildPositionalModelAcceptsMaxLength(t *testing.T) {
	word := strings.Repeat("a", MaxPosition)
	m := BuildPositionalModel(New([]string{word}))
	if m.Count('a', MaxPosition-1) != 1 {
		t.Fatalf("expected last slot counted")
	}
}

func TestBuildPositionalModelPanicsOnLongWord(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for word longer than %d", MaxPosition)
		}
	}()
	BuildPositionalModel(New([]string{"ok", strings.Repeat("x", MaxPosition+1)}))
}
