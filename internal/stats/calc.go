// Package stats derives effective combat values from a character snapshot.
// Every function here is pure: same profile in, same numbers out. The store
// never persists the results; callers recompute on read.
package stats

import (
	"math"

	"nexuschronicles/internal/character"
)

// Cybernetic bonuses applied after the condition modifiers.
const (
	adrenalBoosterBonus = 5
	neuralLinkBonus     = 5
)

// CalculatedStats is the ephemeral derived view over a profile.
type CalculatedStats struct {
	EffectiveStrength     int `json:"effectiveStrength"`
	EffectiveIntelligence int `json:"effectiveIntelligence"`
	MaxHP                 int `json:"maxHP"`
	CritChance            int `json:"critChance"`
	InventorySlots        int `json:"inventorySlots"`
}

// Calculate produces the full derived view for a profile.
func Calculate(p *character.Profile) CalculatedStats {
	return CalculatedStats{
		EffectiveStrength:     EffectiveStrength(p),
		EffectiveIntelligence: EffectiveIntelligence(p),
		MaxHP:                 MaxHP(p),
		CritChance:            CritChance(p),
		InventorySlots:        p.InventorySlots,
	}
}

// FitnessModifier scales strength by physical condition: [0.9, 1.1].
func FitnessModifier(fitness int) float64 {
	return float64(fitness)/100*0.2 + 0.9
}

// FatigueModifier penalizes strength under exhaustion: [0.5, 1.0].
func FatigueModifier(fatigue int) float64 {
	return 1 - float64(fatigue)/100*0.5
}

// ClarityModifier scales intelligence by mental clarity: [0.8, 1.1].
func ClarityModifier(clarity int) float64 {
	return float64(clarity)/100*0.3 + 0.8
}

// FocusModifier scales intelligence by focus: [0.85, 1.1].
func FocusModifier(focus int) float64 {
	return float64(focus)/100*0.25 + 0.85
}

// EffectiveStrength applies the fitness and fatigue modifiers, the Adrenal
// Burnout curse when triggered, and the AdrenalBooster bonus. Never below 1.
func EffectiveStrength(p *character.Profile) int {
	base := float64(p.Attributes.Strength.Value)
	modified := base * FitnessModifier(p.State.Fitness.Value) * FatigueModifier(p.State.Fatigue.Value)
	modified *= AdrenalBurnoutMultiplier(p)

	v := int(math.Round(modified))
	if p.HasCybernetic(character.CyberAdrenalBooster) {
		v += adrenalBoosterBonus
	}
	if v < 1 {
		v = 1
	}
	return v
}

// EffectiveIntelligence applies the clarity and focus modifiers plus the
// NeuralLink V2 bonus. Never below 1.
func EffectiveIntelligence(p *character.Profile) int {
	base := float64(p.Attributes.Intelligence.Value)
	modified := base * ClarityModifier(p.State.MentalClarity.Value) * FocusModifier(p.State.Focus.Value)

	v := int(math.Round(modified))
	if p.HasCybernetic(character.CyberNeuralLinkV2) {
		v += neuralLinkBonus
	}
	if v < 1 {
		v = 1
	}
	return v
}

// MaxHP = base pool + level*10 + strength*5.
func MaxHP(p *character.Profile) int {
	return p.Attributes.HP + p.Level*10 + p.Attributes.Strength.Value*5
}

// CritChance is a percentage derived from intelligence and spirit. It is
// deliberately unclamped: at extreme attribute values it can exceed 100.
func CritChance(p *character.Profile) int {
	intPart := float64(p.Attributes.Intelligence.Value) / 100 * 0.1
	spiritPart := float64(p.Attributes.Spirit.Value) / 150 * 0.05
	return int(math.Round((intPart + spiritPart) * 100))
}
