package stats

import (
	"math/rand"

	"nexuschronicles/internal/character"
)

// The three curses. Each is a plain function gated on its trigger condition
// so it can be unit-tested in isolation:
//
//	Adrenal Burnout    - strength penalty while overexerted
//	Analysis Paralysis - chance to forfeit a combat turn
//	Feedback Loop      - self-damage on failed attribute checks

const (
	burnoutFatigueTrigger = 70
	burnoutPenalty        = 0.85 // -15%

	paralysisChanceCap = 50
)

// AdrenalBurnoutMultiplier returns the strength multiplier for the Adrenal
// Burnout curse: x0.85 when the character bears the curse and fatigue is
// above 70, otherwise x1.
func AdrenalBurnoutMultiplier(p *character.Profile) float64 {
	if !p.HasCurse(character.CurseAdrenalBurnout) {
		return 1
	}
	if p.State.Fatigue.Value <= burnoutFatigueTrigger {
		return 1
	}
	return burnoutPenalty
}

// TurnForfeitChance returns the Analysis Paralysis turn-forfeit chance as a
// percentage. The chance scales with intelligence and is mitigated by
// spirit; it is zero when the curse is not borne.
func TurnForfeitChance(p *character.Profile) int {
	if !p.HasCurse(character.CurseAnalysisParalysis) {
		return 0
	}
	chance := p.Attributes.Intelligence.Value/2 - p.Attributes.Spirit.Value/4
	if chance < 0 {
		chance = 0
	}
	if chance > paralysisChanceCap {
		chance = paralysisChanceCap
	}
	return chance
}

// RollTurnForfeit rolls against TurnForfeitChance with the caller's rng so
// the outcome is reproducible in tests.
func RollTurnForfeit(p *character.Profile, rng *rand.Rand) bool {
	chance := TurnForfeitChance(p)
	if chance == 0 {
		return false
	}
	return rng.Intn(100) < chance
}

// FeedbackDamage returns the self-damage the Feedback Loop curse inflicts on
// a failed check: spirit/5, minimum 1 while the curse is borne.
func FeedbackDamage(p *character.Profile) int {
	if !p.HasCurse(character.CurseFeedbackLoop) {
		return 0
	}
	dmg := p.Attributes.Spirit.Value / 5
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
