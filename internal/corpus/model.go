package corpus

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// MaxPosition bounds the word length a PositionalModel can describe.
const MaxPosition = 64

// Model assigns a weight to a character seen at a position.
type Model interface {
	Weight(r rune, pos int) int
}

// CharModel counts every character occurrence across a corpus.
type CharModel struct {
	counts map[rune]int
	total  int
}

// BuildCharModel counts all character occurrences in c, repeats included.
func BuildCharModel(c Corpus) CharModel {
	m := CharModel{counts: map[rune]int{}}
	for _, word := range c.words {
		for _, r := range word {
			m.counts[r]++
			m.total++
		}
	}
	return m
}

// Weight returns the global count of r; pos is ignored.
func (m CharModel) Weight(r rune, _ int) int {
	return m.counts[r]
}

// Count returns the number of occurrences of r.
func (m CharModel) Count(r rune) int {
	return m.counts[r]
}

// Total returns the number of characters counted.
func (m CharModel) Total() int {
	return m.total
}

// Chars returns the counted characters, most frequent first.
func (m CharModel) Chars() []rune {
	return sortedByCount(m.counts, func(r rune) int { return m.counts[r] })
}

// PositionalModel counts characters per zero-based position.
type PositionalModel struct {
	counts map[rune]*[MaxPosition]int
}

// BuildPositionalModel counts characters by position across c.
//
// It panics when a word is longer than MaxPosition characters.
func BuildPositionalModel(c Corpus) PositionalModel {
	m := PositionalModel{counts: map[rune]*[MaxPosition]int{}}
	for _, word := range c.words {
		if n := utf8.RuneCountInString(word); n > MaxPosition {
			panic(fmt.Sprintf("corpus: word %q has %d characters, positional model supports at most %d", word, n, MaxPosition))
		}
		pos := 0
		for _, r := range word {
			slots, ok := m.counts[r]
			if !ok {
				slots = &[MaxPosition]int{}
				m.counts[r] = slots
			}
			slots[pos]++
			pos++
		}
	}
	return m
}

// Weight returns the count of r at pos.
func (m PositionalModel) Weight(r rune, pos int) int {
	return m.Count(r, pos)
}

// Count returns how many words have r at pos.
func (m PositionalModel) Count(r rune, pos int) int {
	if pos < 0 || pos >= MaxPosition {
		return 0
	}
	slots, ok := m.counts[r]
	if !ok {
		return 0
	}
	return slots[pos]
}

// Positions returns the per-position counts of r up to the last non-zero slot.
func (m PositionalModel) Positions(r rune) []int {
	slots, ok := m.counts[r]
	if !ok {
		return nil
	}
	last := -1
	for i, n := range slots {
		if n > 0 {
			last = i
		}
	}
	out := make([]int, last+1)
	copy(out, slots[:last+1])
	return out
}

// Chars returns the counted characters, most frequent overall first.
func (m PositionalModel) Chars() []rune {
	totals := make(map[rune]int, len(m.counts))
	for r, slots := range m.counts {
		for _, n := range slots {
			totals[r] += n
		}
	}
	return sortedByCount(totals, func(r rune) int { return totals[r] })
}

func sortedByCount[V any](set map[rune]V, count func(rune) int) []rune {
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := count(out[i]), count(out[j])
		if ci == cj {
			return out[i] < out[j]
		}
		return ci > cj
	})
	return out
}
