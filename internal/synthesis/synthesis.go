// Package synthesis maps a free-text character concept to the best-fitting
// preset by keyword scoring. Only the no-match fallback is random, and the
// randomness source is injected so tests can seed it.
package synthesis

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"nexuschronicles/internal/catalog"
)

var punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")

// Matcher scores concepts against a preset catalog.
type Matcher struct {
	presets []catalog.Preset
	rng     *rand.Rand
}

// New creates a matcher over the given presets with a time-seeded fallback rng.
func New(presets []catalog.Preset) *Matcher {
	return NewWithRand(presets, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a matcher with an explicit randomness source, used by
// tests that exercise the fallback path.
func NewWithRand(presets []catalog.Preset, rng *rand.Rand) *Matcher {
	return &Matcher{presets: presets, rng: rng}
}

// Tokenize lowercases the concept, strips punctuation, splits on whitespace,
// and discards tokens of length <= 2.
func Tokenize(concept string) map[string]bool {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(concept), " ")
	tokens := map[string]bool{}
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) > 2 {
			tokens[tok] = true
		}
	}
	return tokens
}

// Score counts how many of the preset's keywords appear in the token set,
// with a +1 bonus when the first (defining) keyword is present.
func Score(p catalog.Preset, tokens map[string]bool) int {
	score := 0
	for _, kw := range p.Keywords {
		if tokens[strings.ToLower(kw)] {
			score++
		}
	}
	if len(p.Keywords) > 0 && tokens[strings.ToLower(p.Keywords[0])] {
		score++
	}
	return score
}

// Synthesize returns the preset with the strictly highest score; ties resolve
// to the first maximum in catalog order. With no usable tokens, or when every
// preset scores zero, a uniformly random preset is returned.
func (m *Matcher) Synthesize(concept string) catalog.Preset {
	tokens := Tokenize(concept)
	if len(tokens) == 0 {
		return m.randomPreset()
	}

	best := -1
	bestScore := 0
	for i, p := range m.presets {
		if s := Score(p, tokens); s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best < 0 {
		return m.randomPreset()
	}
	return m.presets[best]
}

func (m *Matcher) randomPreset() catalog.Preset {
	return m.presets[m.rng.Intn(len(m.presets))]
}
