// Package filter narrows a corpus with a chain of word predicates.
package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Predicate reports whether a word should be kept.
type Predicate interface {
	Match(word string) bool
}

// Func adapts a plain function to a Predicate.
type Func func(string) bool

// Match implements Predicate.
func (f Func) Match(word string) bool { return f(word) }

// Length keeps words with exactly N characters.
type Length int

// Match implements Predicate.
func (n Length) Match(word string) bool {
	return utf8.RuneCountInString(word) == int(n)
}

// StartsWith keeps words beginning with the literal prefix. Empty matches all.
type StartsWith string

// Match implements Predicate.
func (s StartsWith) Match(word string) bool {
	return strings.HasPrefix(word, string(s))
}

// EndsWith keeps words ending with the literal suffix. Empty matches all.
type EndsWith string

// Match implements Predicate.
func (s EndsWith) Match(word string) bool {
	return strings.HasSuffix(word, string(s))
}

// Contains keeps words containing the literal substring. Empty matches all.
type Contains string

// Match implements Predicate.
func (s Contains) Match(word string) bool {
	return strings.Contains(word, string(s))
}

// Excludes drops words containing the literal substring. Empty matches all.
type Excludes string

// Match implements Predicate.
func (s Excludes) Match(word string) bool {
	return s == "" || !strings.Contains(word, string(s))
}

// ContainsChars keeps words that contain every character of the set.
// Order and duplicates in the set are irrelevant; an empty set matches all.
type ContainsChars string

// Match implements Predicate.
func (set ContainsChars) Match(word string) bool {
	for _, r := range string(set) {
		if !strings.ContainsRune(word, r) {
			return false
		}
	}
	return true
}

// ExcludesChars drops words containing any character of the set.
type ExcludesChars string

// Match implements Predicate.
func (set ExcludesChars) Match(word string) bool {
	return set == "" || !strings.ContainsAny(word, string(set))
}

// AnyChar marks a Pattern slot that accepts any character.
const AnyChar rune = 0

// Pattern is a sparse per-position constraint; AnyChar slots are ignored.
type Pattern []rune

// ParsePattern reads a pattern such as "__o_a". The characters '_', '.',
// '?', '*' and ' ' leave a slot unconstrained.
func ParsePattern(s string) (Pattern, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("pattern %q is not valid UTF-8", s)
	}
	p := make(Pattern, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		switch r {
		case '_', '.', '?', '*', ' ':
			p = append(p, AnyChar)
		default:
			p = append(p, r)
		}
	}
	return p, nil
}

// IsEmpty reports whether the pattern constrains no position.
func (p Pattern) IsEmpty() bool {
	for _, r := range p {
		if r != AnyChar {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var b strings.Builder
	for _, r := range p {
		if r == AnyChar {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Positional keeps words whose character at every constrained index equals
// the pattern. A constrained index past the end of the word rejects it.
type Positional Pattern

// Match implements Predicate.
func (p Positional) Match(word string) bool {
	if len(p) == 0 {
		return true
	}
	i := 0
	for _, r := range word {
		if i >= len(p) {
			return true
		}
		if p[i] != AnyChar && p[i] != r {
			return false
		}
		i++
	}
	for ; i < len(p); i++ {
		if p[i] != AnyChar {
			return false
		}
	}
	return true
}

// NotPositional drops words whose character at a constrained index equals
// the pattern. Indexes past the end of the word have nothing to violate and
// pass.
type NotPositional Pattern

// Match implements Predicate.
func (p NotPositional) Match(word string) bool {
	i := 0
	for _, r := range word {
		if i >= len(p) {
			break
		}
		if p[i] != AnyChar && p[i] == r {
			return false
		}
		i++
	}
	return true
}
