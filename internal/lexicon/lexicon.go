// Package lexicon indexes a corpus in a patricia trie for membership and
// prefix lookups.
package lexicon

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

// Lexicon is a read-only word index.
type Lexicon struct {
	trie *patricia.Trie
	size int
}

// New indexes every word of c. Each word maps to its first corpus index.
func New(c corpus.Corpus) *Lexicon {
	lx := &Lexicon{trie: patricia.NewTrie()}
	for i, word := range c.All() {
		if word == "" {
			continue
		}
		if lx.trie.Insert(patricia.Prefix(word), i) {
			lx.size++
		}
	}
	return lx
}

// Len returns the number of distinct words.
func (lx *Lexicon) Len() int {
	return lx.size
}

// Has reports whether word is in the lexicon.
func (lx *Lexicon) Has(word string) bool {
	if word == "" {
		return false
	}
	return lx.trie.Get(patricia.Prefix(word)) != nil
}

// Index returns the corpus index of word.
func (lx *Lexicon) Index(word string) (int, bool) {
	if word == "" {
		return 0, false
	}
	item := lx.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	idx, ok := item.(int)
	return idx, ok
}

// WithPrefix returns up to limit words starting with prefix, in corpus
// order. A limit <= 0 returns all of them.
func (lx *Lexicon) WithPrefix(prefix string, limit int) []string {
	type hit struct {
		word  string
		index int
	}
	var hits []hit
	err := lx.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		idx, ok := item.(int)
		if !ok {
			return nil
		}
		hits = append(hits, hit{word: string(p), index: idx})
		return nil
	})
	if err != nil {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].index < hits[j].index
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.word)
	}
	return out
}
