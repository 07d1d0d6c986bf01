package corpus

import (
	"slices"
	"sort"
)

// Ranked is a scored word with its index in the ranked corpus.
type Ranked struct {
	Word  string
	Score int
	Index int
}

// Score sums the model weight of each distinct character in word.
// A repeated character is counted once, at the position of its first
// occurrence, so "eerie" earns e, r and i one time each.
func Score(word string, m Model) int {
	var seen []rune
	score := 0
	pos := 0
	for _, r := range word {
		if !slices.Contains(seen, r) {
			seen = append(seen, r)
			score += m.Weight(r, pos)
		}
		pos++
	}
	return score
}

// Rank scores every word in c and returns the k best, highest score first.
// Equal scores keep corpus order.
func Rank(c Corpus, m Model, k int) []Ranked {
	if k <= 0 || c.Len() == 0 {
		return []Ranked{}
	}
	items := make([]Ranked, 0, c.Len())
	for i, word := range c.words {
		items = append(items, Ranked{Word: word, Score: Score(word, m), Index: i})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if k > len(items) {
		k = len(items)
	}
	return items[:k:k]
}

// TopK returns the k highest scoring words of c under m.
func TopK(c Corpus, m Model, k int) []string {
	ranked := Rank(c, m, k)
	out := make([]string, 0, len(ranked))
	for _, item := range ranked {
		out = append(out, item.Word)
	}
	return out
}
