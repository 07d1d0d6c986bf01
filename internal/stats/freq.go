package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

// RenderFrequencyTable prints the n most frequent characters of m.
func RenderFrequencyTable(w io.Writer, m corpus.CharModel, n int) error {
	rows := TopChars(m, n)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No characters found.")
		return err
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			charLabel(r.Char),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%.2f%%", r.Share*100),
		})
	}
	return writeLines(w, formatTable([]string{"Char", "Count", "Share"}, tableRows, map[int]bool{1: true, 2: true}))
}

// RenderPositionalTable prints per-position counts for chars, one column
// per position up to width. Empty chars uses every character of m.
func RenderPositionalTable(w io.Writer, m corpus.PositionalModel, chars []rune, width int) error {
	if len(chars) == 0 {
		chars = m.Chars()
	}
	if width <= 0 {
		for _, r := range chars {
			width = max(width, len(m.Positions(r)))
		}
	}
	if len(chars) == 0 || width == 0 {
		_, err := fmt.Fprintln(w, "No characters found.")
		return err
	}
	width = min(width, corpus.MaxPosition)

	headers := make([]string, 0, width+1)
	headers = append(headers, "Char")
	right := map[int]bool{}
	for pos := 1; pos <= width; pos++ {
		headers = append(headers, strconv.Itoa(pos))
		right[pos] = true
	}
	tableRows := make([][]string, 0, len(chars))
	for _, r := range chars {
		row := make([]string, 0, width+1)
		row = append(row, charLabel(r))
		for pos := 0; pos < width; pos++ {
			row = append(row, strconv.Itoa(m.Count(r, pos)))
		}
		tableRows = append(tableRows, row)
	}
	return writeLines(w, formatTable(headers, tableRows, right))
}

func charLabel(r rune) string {
	if r == ' ' {
		return "<space>"
	}
	return string(r)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
