// Package corpus holds word collections and the letter-frequency models
// used to rank them.
package corpus

import (
	"iter"
	"slices"
)

// Corpus is an ordered, immutable sequence of words.
type Corpus struct {
	words []string
}

// New returns a Corpus holding a copy of words.
func New(words []string) Corpus {
	return Corpus{words: slices.Clone(words)}
}

// wrap adopts words without copying. Callers must not retain the slice.
func wrap(words []string) Corpus {
	return Corpus{words: words}
}

// Len returns the number of words.
func (c Corpus) Len() int {
	return len(c.words)
}

// At returns the word at index i.
func (c Corpus) At(i int) string {
	return c.words[i]
}

// Words returns a copy of the words in corpus order.
func (c Corpus) Words() []string {
	return slices.Clone(c.words)
}

// All iterates over the words with their corpus index.
func (c Corpus) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, w := range c.words {
			if !yield(i, w) {
				return
			}
		}
	}
}

// Collect materializes a word sequence into a Corpus.
func Collect(seq iter.Seq[string]) Corpus {
	return wrap(slices.Collect(seq))
}
