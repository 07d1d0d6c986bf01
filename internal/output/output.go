// Package output writes ranked words as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (use text, json or yaml)", s)
	}
}

// Entry is the serialized form of a ranked word.
type Entry struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Word  string `json:"word" yaml:"word"`
	Score int    `json:"score" yaml:"score"`
}

// Report is the document written for json and yaml.
type Report struct {
	Candidates int     `json:"candidates" yaml:"candidates"`
	Words      []Entry `json:"words" yaml:"words"`
}

// Write renders ranked words to w. candidates is the number of words that
// passed the filters, which may exceed len(ranked).
func Write(w io.Writer, format Format, ranked []corpus.Ranked, candidates int) error {
	report := Report{Candidates: candidates, Words: make([]Entry, 0, len(ranked))}
	for i, r := range ranked {
		report.Words = append(report.Words, Entry{Rank: i + 1, Word: r.Word, Score: r.Score})
	}
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case Text, "":
		return writeText(w, report)
	default:
		return fmt.Errorf("invalid format %q", format)
	}
}

func writeText(w io.Writer, report Report) error {
	if len(report.Words) == 0 {
		_, err := fmt.Fprintln(w, "No matching words.")
		return err
	}
	rankWidth := len(fmt.Sprint(len(report.Words)))
	for _, e := range report.Words {
		if _, err := fmt.Fprintf(w, "%*d. %s %d\n", rankWidth, e.Rank, e.Word, e.Score); err != nil {
			return err
		}
	}
	if report.Candidates > len(report.Words) {
		if _, err := fmt.Fprintf(w, "(%d of %d candidates)\n", len(report.Words), report.Candidates); err != nil {
			return err
		}
	}
	return nil
}
