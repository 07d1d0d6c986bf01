package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

var sample = []corpus.Ranked{
	{Word: "bar", Score: 5, Index: 1},
	{Word: "baz", Score: 3, Index: 2},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "TEXT": Text, "json": JSON, " yaml ": YAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Text, sample, 10); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "1. bar 5\n2. baz 3\n(2 of 10 candidates)\n"
	if buf.String() != want {
		t.Fatalf("unexpected text:\n%q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, Text, nil, 0); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if buf.String() != "No matching words.\n" {
		t.Fatalf("unexpected empty text %q", buf.String())
	}
}

func TestWriteJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, sample, 2); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var fromJSON Report
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if fromJSON.Candidates != 2 || len(fromJSON.Words) != 2 || fromJSON.Words[1].Word != "baz" || fromJSON.Words[1].Rank != 2 {
		t.Fatalf("unexpected json report %+v", fromJSON)
	}

	buf.Reset()
	if err := Write(&buf, YAML, sample, 2); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	var fromYAML Report
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(fromYAML.Words) != 2 || fromYAML.Words[0].Score != 5 {
		t.Fatalf("unexpected yaml report %+v", fromYAML)
	}
}
