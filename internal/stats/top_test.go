package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

func TestTopChars(t *testing.T) {
	m := corpus.BuildCharModel(corpus.New([]string{"foo", "bar", "baz"}))
	rows := TopChars(m, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", rows)
	}
	if rows[0].Char != 'a' || rows[0].Count != 2 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Char != 'b' || rows[1].Count != 2 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	if got := rows[0].Share; got < 0.222 || got > 0.223 {
		t.Fatalf("unexpected share %f", got)
	}
	if all := TopChars(m, 0); len(all) != 6 {
		t.Fatalf("expected all 6 chars, got %d", len(all))
	}
}

func TestRenderFrequencyTable(t *testing.T) {
	var buf bytes.Buffer
	m := corpus.BuildCharModel(corpus.New([]string{"foo", "bar"}))
	if err := RenderFrequencyTable(&buf, m, 1); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Char Count  Share\no        2 33.33%\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q", buf.String())
	}

	buf.Reset()
	if err := RenderFrequencyTable(&buf, corpus.BuildCharModel(corpus.New(nil)), 5); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No characters") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestRenderPositionalTable(t *testing.T) {
	var buf bytes.Buffer
	m := corpus.BuildPositionalModel(corpus.New([]string{"ab", "ba", "aa"}))
	if err := RenderPositionalTable(&buf, m, []rune("ab"), 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Char 1 2\na    2 2\nb    1 1\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q", buf.String())
	}
}
