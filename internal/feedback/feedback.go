// Package feedback turns guess results from a word-guessing game into
// filter constraints.
package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/wordrank/internal/filter"
)

// Mark is the result for one letter of a guess.
type Mark uint8

const (
	// Absent means the letter is not in the answer (beyond the copies
	// already marked elsewhere).
	Absent Mark = iota
	// Present means the letter is in the answer at another position.
	Present
	// Correct means the letter is in the answer at this position.
	Correct
)

// Marks holds one Mark per letter of a guess.
type Marks []Mark

// ParseMarks reads marks such as "gy..b". Accepted forms per letter:
// g/2 correct, y/1 present, ./b/x/-/0 absent.
func ParseMarks(s string) (Marks, error) {
	marks := make(Marks, 0, utf8.RuneCountInString(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'g', '2':
			marks = append(marks, Correct)
		case 'y', '1':
			marks = append(marks, Present)
		case '.', 'b', 'x', '-', '0':
			marks = append(marks, Absent)
		default:
			return nil, fmt.Errorf("invalid mark %q at letter %d (use g, y or .)", r, len(marks)+1)
		}
	}
	return marks, nil
}

func (m Marks) String() string {
	var b strings.Builder
	for _, mark := range m {
		switch mark {
		case Correct:
			b.WriteByte('g')
		case Present:
			b.WriteByte('y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Solved reports whether every letter is Correct.
func (m Marks) Solved() bool {
	if len(m) == 0 {
		return false
	}
	for _, mark := range m {
		if mark != Correct {
			return false
		}
	}
	return true
}

// Evaluate scores guess against secret. Exact matches are marked first;
// remaining letters are marked Present while unmatched copies remain in the
// secret, so a doubled letter in the guess is not rewarded twice.
func Evaluate(secret, guess string) Marks {
	s := []rune(secret)
	g := []rune(guess)
	marks := make(Marks, len(g))
	remaining := map[rune]int{}
	for i, r := range s {
		if i < len(g) && g[i] == r {
			marks[i] = Correct
			continue
		}
		remaining[r]++
	}
	for i, r := range g {
		if marks[i] == Correct {
			continue
		}
		if remaining[r] > 0 {
			marks[i] = Present
			remaining[r]--
		}
	}
	return marks
}

// Turn is one guess with its marks.
type Turn struct {
	Guess string
	Marks Marks
}

// ParseTurn reads "guess:marks", e.g. "crane:..y.g".
func ParseTurn(s string) (Turn, error) {
	guess, raw, ok := strings.Cut(s, ":")
	if !ok {
		return Turn{}, fmt.Errorf("turn %q must look like guess:marks", s)
	}
	marks, err := ParseMarks(raw)
	if err != nil {
		return Turn{}, err
	}
	t := Turn{Guess: strings.TrimSpace(guess), Marks: marks}
	if err := t.Validate(); err != nil {
		return Turn{}, err
	}
	return t, nil
}

// Validate checks that the guess and marks line up.
func (t Turn) Validate() error {
	n := utf8.RuneCountInString(t.Guess)
	if n == 0 {
		return fmt.Errorf("guess is empty")
	}
	if n != len(t.Marks) {
		return fmt.Errorf("guess %q has %d letters but %d marks", t.Guess, n, len(t.Marks))
	}
	return nil
}

func (t Turn) String() string {
	return t.Guess + ":" + t.Marks.String()
}

// Constraints returns the predicates a candidate must satisfy to be
// consistent with the turn.
//
// Correct letters pin their position. Present letters must appear but not
// here. Absent letters are excluded everywhere, unless the same letter is
// Correct or Present elsewhere in the guess; then the absent mark only says
// the letter is not at this position.
func (t Turn) Constraints() []filter.Predicate {
	guess := []rune(t.Guess)
	n := min(len(guess), len(t.Marks))
	preds := []filter.Predicate{filter.Length(len(guess))}

	confirmed := map[rune]bool{}
	for i := 0; i < n; i++ {
		if t.Marks[i] != Absent {
			confirmed[guess[i]] = true
		}
	}

	match := make(filter.Pattern, len(guess))
	mismatch := make(filter.Pattern, len(guess))
	var required, excluded strings.Builder
	for i := 0; i < n; i++ {
		r := guess[i]
		switch t.Marks[i] {
		case Correct:
			match[i] = r
		case Present:
			mismatch[i] = r
			required.WriteRune(r)
		default:
			if confirmed[r] {
				mismatch[i] = r
				continue
			}
			excluded.WriteRune(r)
		}
	}
	if !match.IsEmpty() {
		preds = append(preds, filter.Positional(match))
	}
	if !mismatch.IsEmpty() {
		preds = append(preds, filter.NotPositional(mismatch))
	}
	if required.Len() > 0 {
		preds = append(preds, filter.ContainsChars(required.String()))
	}
	if excluded.Len() > 0 {
		preds = append(preds, filter.ExcludesChars(excluded.String()))
	}
	return preds
}

// Apply attaches the constraints of every turn to p.
func Apply(p filter.Pipeline, turns ...Turn) filter.Pipeline {
	for _, t := range turns {
		for _, pred := range t.Constraints() {
			p = p.Where(pred)
		}
	}
	return p
}
