package filter

import (
	"iter"

	"github.com/verte-zerg/wordrank/internal/corpus"
)

type stage struct {
	pred  Predicate
	limit int
}

// Pipeline is an immutable chain of stages over a source corpus. Each
// attachment returns a new Pipeline; the receiver and its source are left
// untouched so the full corpus stays available to the caller.
type Pipeline struct {
	source corpus.Corpus
	stages []stage
}

// From starts a pipeline over c.
func From(c corpus.Corpus) Pipeline {
	return Pipeline{source: c}
}

// Apply filters c by all predicates in order.
func Apply(c corpus.Corpus, preds ...Predicate) corpus.Corpus {
	p := From(c)
	for _, pred := range preds {
		p = p.Where(pred)
	}
	return p.Apply()
}

// Source returns the unfiltered corpus.
func (p Pipeline) Source() corpus.Corpus {
	return p.source
}

// Len returns the number of attached stages.
func (p Pipeline) Len() int {
	return len(p.stages)
}

func (p Pipeline) with(s stage) Pipeline {
	stages := make([]stage, len(p.stages), len(p.stages)+1)
	copy(stages, p.stages)
	return Pipeline{source: p.source, stages: append(stages, s)}
}

// Where attaches an arbitrary predicate.
func (p Pipeline) Where(pred Predicate) Pipeline {
	if pred == nil {
		return p
	}
	return p.with(stage{pred: pred})
}

// Length keeps words with exactly n characters.
func (p Pipeline) Length(n int) Pipeline {
	return p.Where(Length(n))
}

// StartsWith keeps words with the given prefix.
func (p Pipeline) StartsWith(s string) Pipeline {
	if s == "" {
		return p
	}
	return p.Where(StartsWith(s))
}

// EndsWith keeps words with the given suffix.
func (p Pipeline) EndsWith(s string) Pipeline {
	if s == "" {
		return p
	}
	return p.Where(EndsWith(s))
}

// Contains keeps words containing s.
func (p Pipeline) Contains(s string) Pipeline {
	if s == "" {
		return p
	}
	return p.Where(Contains(s))
}

// Excludes drops words containing s.
func (p Pipeline) Excludes(s string) Pipeline {
	if s == "" {
		return p
	}
	return p.Where(Excludes(s))
}

// ContainsChars keeps words containing every character of set.
func (p Pipeline) ContainsChars(set string) Pipeline {
	if set == "" {
		return p
	}
	return p.Where(ContainsChars(set))
}

// ExcludesChars drops words containing any character of set.
func (p Pipeline) ExcludesChars(set string) Pipeline {
	if set == "" {
		return p
	}
	return p.Where(ExcludesChars(set))
}

// Positional keeps words matching the pattern at every constrained index.
func (p Pipeline) Positional(pattern Pattern) Pipeline {
	if pattern.IsEmpty() {
		return p
	}
	return p.Where(Positional(pattern))
}

// NotPositional drops words matching the pattern at any constrained index.
func (p Pipeline) NotPositional(pattern Pattern) Pipeline {
	if pattern.IsEmpty() {
		return p
	}
	return p.Where(NotPositional(pattern))
}

// Take lets at most n words through; later stages see only those.
func (p Pipeline) Take(n int) Pipeline {
	if n < 0 {
		n = 0
	}
	return p.with(stage{limit: n})
}

// Seq lazily yields the words that pass every stage, in corpus order.
// Each word is checked stage by stage and dropped at the first failure.
func (p Pipeline) Seq() iter.Seq[string] {
	return func(yield func(string) bool) {
		taken := make([]int, len(p.stages))
	words:
		for _, word := range p.source.All() {
			for i, s := range p.stages {
				if s.pred != nil {
					if !s.pred.Match(word) {
						continue words
					}
					continue
				}
				if taken[i] >= s.limit {
					return
				}
				taken[i]++
			}
			if !yield(word) {
				return
			}
		}
	}
}

// Apply evaluates the pipeline into a new corpus.
func (p Pipeline) Apply() corpus.Corpus {
	return corpus.Collect(p.Seq())
}

// Count returns how many words pass the pipeline.
func (p Pipeline) Count() int {
	n := 0
	for range p.Seq() {
		n++
	}
	return n
}
