// Package stats renders letter statistics and game history reports.
package stats

import (
	"github.com/verte-zerg/wordrank/internal/corpus"
)

// CharFreq is one row of a letter frequency table.
type CharFreq struct {
	Char  rune
	Count int
	// Share is Count relative to all counted characters.
	Share float64
}

// TopChars returns the n most frequent characters of m. n <= 0 returns all.
func TopChars(m corpus.CharModel, n int) []CharFreq {
	chars := m.Chars()
	if n > 0 && n < len(chars) {
		chars = chars[:n]
	}
	total := m.Total()
	out := make([]CharFreq, 0, len(chars))
	for _, r := range chars {
		row := CharFreq{Char: r, Count: m.Count(r)}
		if total > 0 {
			row.Share = float64(row.Count) / float64(total)
		}
		out = append(out, row)
	}
	return out
}
