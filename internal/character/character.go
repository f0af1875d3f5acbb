// Package character defines the canonical character schema for Nexus
// Chronicles: base attributes, dynamic condition state, enhancements, and
// flavor metadata. The package holds no game logic beyond construction and
// clamping; derived values live in internal/stats.
package character

// Capacity bounds for the inventory. Capacity is a persisted field seeded at
// creation and only ever incremented, never recomputed.
const (
	InventorySlotCap = 25

	MetricMin = 0
	MetricMax = 100
)

// Well-known cybernetic identifiers inspected by the stat calculator.
const (
	CyberAdrenalBooster = "AdrenalBooster"
	CyberNeuralLinkV2   = "NeuralLink V2"
)

// Curse identifiers. A curse is inert unless the character bears it AND its
// trigger condition holds (see internal/stats).
const (
	CurseAdrenalBurnout    = "adrenal-burnout"
	CurseAnalysisParalysis = "analysis-paralysis"
	CurseFeedbackLoop      = "feedback-loop"
)

// Alternate currency names. Credits are the primary currency; these are
// faction/region-specific counters.
const (
	CurrencyKamen             = "kamen"
	CurrencyMracnik           = "mracnik"
	CurrencyPrasinskeKovanice = "prasinske_kovanice"
)

// Score is a base attribute value with a human-readable description.
type Score struct {
	Value       int    `json:"value"`
	Description string `json:"description,omitempty"`
}

// Metric is a dynamic condition percentage in [0,100] with a description.
type Metric struct {
	Value       int    `json:"value"`
	Description string `json:"description,omitempty"`
}

// Attributes are the base, rarely-changing character attributes. Values are
// fixed at creation except via explicit cheats or enhancements.
type Attributes struct {
	Strength     Score `json:"strength"`
	Intelligence Score `json:"intelligence"`
	Spirit       Score `json:"spirit"`
	HP           int   `json:"hp"`
}

// State is the dynamic, frequently-changing condition block. Every metric is
// clamped to [0,100].
type State struct {
	Fatigue       Metric `json:"fatigue"`
	Fitness       Metric `json:"fitness"`
	Focus         Metric `json:"focus"`
	MentalClarity Metric `json:"mentalClarity"`
}

// Enhancements are unlocked permanent modifiers. The calculator inspects
// cybernetics and curses by name.
type Enhancements struct {
	Cybernetics []string `json:"cybernetics"`
	Implants    []string `json:"implants"`
	Curses      []string `json:"curses,omitempty"`
}

// Metadata holds flavor fields that are immutable after creation.
type Metadata struct {
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Orientation string `json:"orientation"`
	Style       string `json:"style"`
	Origin      string `json:"origin"`
	Backstory   string `json:"backstory"`
}

// Profile is the mutable root entity. Exactly one instance is owned by the
// store; nothing outside the store mutates it.
type Profile struct {
	Name           string         `json:"name"`
	Level          int            `json:"level"`
	XP             int            `json:"xp"`
	Attributes     Attributes     `json:"attributes"`
	State          State          `json:"state"`
	Enhancements   Enhancements   `json:"enhancements"`
	Metadata       Metadata       `json:"metadata"`
	Currency       int            `json:"currency"`
	AltCurrencies  map[string]int `json:"altCurrencies,omitempty"`
	InventorySlots int            `json:"inventorySlots"`
}

// BaseStats carries the creation-time attribute rolls.
type BaseStats struct {
	Strength     int
	Intelligence int
	Spirit       int
	HP           int
}

// NewProfile builds a fresh level-1 profile. Inventory capacity is seeded as
// 10 + strength/2 and only grows afterwards.
func NewProfile(name string, base BaseStats, meta Metadata) *Profile {
	p := &Profile{
		Name:  name,
		Level: 1,
		XP:    0,
		Attributes: Attributes{
			Strength:     Score{Value: base.Strength},
			Intelligence: Score{Value: base.Intelligence},
			Spirit:       Score{Value: base.Spirit},
			HP:           base.HP,
		},
		State: State{
			Fatigue:       Metric{Value: 0, Description: "Rested"},
			Fitness:       Metric{Value: 70, Description: "In shape"},
			Focus:         Metric{Value: 80, Description: "Sharp"},
			MentalClarity: Metric{Value: 80, Description: "Clear-headed"},
		},
		Enhancements: Enhancements{
			Cybernetics: []string{},
			Implants:    []string{},
		},
		Metadata:       meta,
		Currency:       0,
		AltCurrencies:  map[string]int{},
		InventorySlots: StartingSlots(base.Strength),
	}
	p.clampState()
	return p
}

// StartingSlots is the creation-time inventory capacity formula.
func StartingSlots(strength int) int {
	slots := 10 + strength/2
	if slots > InventorySlotCap {
		slots = InventorySlotCap
	}
	return slots
}

// HasCybernetic reports whether the named cybernetic is installed.
func (p *Profile) HasCybernetic(name string) bool {
	for _, c := range p.Enhancements.Cybernetics {
		if c == name {
			return true
		}
	}
	return false
}

// HasCurse reports whether the character bears the named curse.
func (p *Profile) HasCurse(id string) bool {
	for _, c := range p.Enhancements.Curses {
		if c == id {
			return true
		}
	}
	return false
}

// ClampMetric forces a condition value into [0,100].
func ClampMetric(v int) int {
	if v < MetricMin {
		return MetricMin
	}
	if v > MetricMax {
		return MetricMax
	}
	return v
}

func (p *Profile) clampState() {
	p.State.Fatigue.Value = ClampMetric(p.State.Fatigue.Value)
	p.State.Fitness.Value = ClampMetric(p.State.Fitness.Value)
	p.State.Focus.Value = ClampMetric(p.State.Focus.Value)
	p.State.MentalClarity.Value = ClampMetric(p.State.MentalClarity.Value)
}

// Normalize re-applies invariants after external mutation or deserialization:
// metrics in [0,100], level >= 1, non-negative xp/currency, capacity capped.
func (p *Profile) Normalize() {
	p.clampState()
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Currency < 0 {
		p.Currency = 0
	}
	if p.InventorySlots > InventorySlotCap {
		p.InventorySlots = InventorySlotCap
	}
	if p.AltCurrencies == nil {
		p.AltCurrencies = map[string]int{}
	}
	if p.Enhancements.Cybernetics == nil {
		p.Enhancements.Cybernetics = []string{}
	}
	if p.Enhancements.Implants == nil {
		p.Enhancements.Implants = []string{}
	}
}
