// Package generator picks secret words for self-play.
package generator

import (
	"math/rand"
	"time"
)

// Generator picks random words.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator for seed. A zero seed uses the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns n distinct words chosen uniformly from words. Duplicates in
// words are treated as one entry. When fewer than n distinct words exist,
// all of them are returned in random order.
func (g *Generator) Pick(words []string, n int) []string {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	pool := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		pool = append(pool, word)
	}
	n = min(n, len(pool))
	// Partial Fisher-Yates: the first n slots end up as the sample.
	for i := 0; i < n; i++ {
		j := i + g.rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}

// PickCommon is like Pick but favors words near the front of the list,
// which for frequency-ordered lists means more common words. bias 0 is
// uniform; larger values skew harder toward the front.
func (g *Generator) PickCommon(words []string, n int, bias float64) []string {
	if bias <= 0 {
		return g.Pick(words, n)
	}
	if n <= 0 || len(words) == 0 {
		return nil
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i := range words {
		w := 1.0 / (1.0 + bias*float64(i)/float64(len(words)))
		weights[i] = w
		total += w
	}

	result := make([]string, 0, min(n, len(words)))
	taken := make(map[string]struct{}, n)
	for left := len(words); len(result) < n && left > 0; left-- {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := -1
		for j, w := range weights {
			if w == 0 {
				continue
			}
			idx = j
			acc += w
			if r <= acc {
				break
			}
		}
		total -= weights[idx]
		weights[idx] = 0
		if _, ok := taken[words[idx]]; ok {
			continue
		}
		taken[words[idx]] = struct{}{}
		result = append(result, words[idx])
	}
	return result
}
