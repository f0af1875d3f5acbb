package character

import "encoding/json"

// An earlier iteration of the save format used flat attribute keys
// (intellect/strength/adaptation), tracked hunger instead of fitness, and
// carried the regional currencies at the top level. Saves in that shape are
// migrated one-way into the canonical nested schema on load.

// legacyProfile mirrors the early flat save shape closely enough to decode
// it. Unknown fields are ignored.
type legacyProfile struct {
	Name               string `json:"name"`
	Level              int    `json:"level"`
	XP                 int    `json:"xp"`
	Strength           int    `json:"strength"`
	Intellect          int    `json:"intellect"`
	Adaptation         int    `json:"adaptation"`
	HP                 int    `json:"hp"`
	Fatigue            int    `json:"fatigue"`
	Hunger             int    `json:"hunger"`
	Focus              int    `json:"focus"`
	MentalClarity      int    `json:"mentalClarity"`
	Kamen              int    `json:"kamen"`
	Mracnik            int    `json:"mracnik"`
	PrasinskeKovanice  int    `json:"prasinskeKovanice"`
	InventorySlots     int    `json:"inventorySlots"`
	Origin             string `json:"origin"`
	Backstory          string `json:"backstory"`
}

// IsLegacyProfile sniffs raw JSON for the early flat schema. The "intellect"
// key never appears in the canonical shape.
func IsLegacyProfile(raw []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, hasIntellect := probe["intellect"]
	_, hasAttributes := probe["attributes"]
	return hasIntellect && !hasAttributes
}

// MigrateLegacyProfile converts a flat early-schema save into the canonical
// nested schema. Mapping: intellect -> intelligence, adaptation -> spirit,
// fitness = 100 - hunger. Regional currencies move into AltCurrencies.
func MigrateLegacyProfile(raw []byte) (*Profile, error) {
	var lp legacyProfile
	if err := json.Unmarshal(raw, &lp); err != nil {
		return nil, err
	}

	p := &Profile{
		Name:  lp.Name,
		Level: lp.Level,
		XP:    lp.XP,
		Attributes: Attributes{
			Strength:     Score{Value: lp.Strength},
			Intelligence: Score{Value: lp.Intellect},
			Spirit:       Score{Value: lp.Adaptation},
			HP:           lp.HP,
		},
		State: State{
			Fatigue:       Metric{Value: lp.Fatigue},
			Fitness:       Metric{Value: MetricMax - lp.Hunger},
			Focus:         Metric{Value: lp.Focus},
			MentalClarity: Metric{Value: lp.MentalClarity},
		},
		Enhancements: Enhancements{
			Cybernetics: []string{},
			Implants:    []string{},
		},
		Metadata: Metadata{
			Origin:    lp.Origin,
			Backstory: lp.Backstory,
		},
		AltCurrencies: map[string]int{
			CurrencyKamen:             lp.Kamen,
			CurrencyMracnik:           lp.Mracnik,
			CurrencyPrasinskeKovanice: lp.PrasinskeKovanice,
		},
		InventorySlots: lp.InventorySlots,
	}
	if p.InventorySlots == 0 {
		p.InventorySlots = StartingSlots(lp.Strength)
	}
	p.Normalize()
	return p, nil
}
