// Package catalog loads the static reference data shipped with the game:
// character presets, factions, item templates, and quest templates. The data
// is embedded YAML, parsed once at startup, and never mutated.
package catalog

import (
	"embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"nexuschronicles/internal/game"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Preset is a ready-made character concept used by the synthesis matcher and
// by character creation. Keywords are ordered: the first keyword is the
// preset's defining term and scores a bonus when matched.
type Preset struct {
	Name      string   `yaml:"name"`
	Backstory string   `yaml:"backstory"`
	Age       int      `yaml:"age"`
	Gender    string   `yaml:"gender"`
	Style     string   `yaml:"style"`
	Keywords  []string `yaml:"keywords"`
}

// Faction is a starting origin with its regional currency.
type Faction struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Currency    string `yaml:"currency"`
}

// ItemTemplate is the blueprint an inventory item instance is spawned from.
type ItemTemplate struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Value       int    `yaml:"value"`
	Description string `yaml:"description"`
	Nutrition   int    `yaml:"nutrition"`
}

// QuestTemplate is the blueprint a quest is instantiated from.
type QuestTemplate struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	MoralChoice string `yaml:"moral_choice"`
	Outcomes    string `yaml:"outcomes"`
	Reward      struct {
		XP       int    `yaml:"xp"`
		Currency int    `yaml:"currency"`
		ItemID   string `yaml:"item_id"`
	} `yaml:"reward"`
}

// Catalog is the full static data set.
type Catalog struct {
	Presets  []Preset
	Factions []Faction
	Items    []ItemTemplate
	Quests   []QuestTemplate
}

// Load parses the embedded reference data. Called once at process start.
func Load() (*Catalog, error) {
	c := &Catalog{}

	files := []struct {
		path string
		dst  interface{}
	}{
		{"data/presets.yaml", &c.Presets},
		{"data/factions.yaml", &c.Factions},
		{"data/items.yaml", &c.Items},
		{"data/quests.yaml", &c.Quests},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
		if err := yaml.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
	}

	if len(c.Presets) == 0 {
		return nil, fmt.Errorf("preset catalog is empty")
	}
	return c, nil
}

// PresetByName returns the named preset, or nil.
func (c *Catalog) PresetByName(name string) *Preset {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i]
		}
	}
	return nil
}

// FactionByName returns the named faction, or nil.
func (c *Catalog) FactionByName(name string) *Faction {
	for i := range c.Factions {
		if c.Factions[i].Name == name {
			return &c.Factions[i]
		}
	}
	return nil
}

// SpawnItem instantiates an inventory item from a template. Each instance
// gets its own id so duplicates of a template can coexist.
func (c *Catalog) SpawnItem(templateID string) (game.InventoryItem, bool) {
	for _, tpl := range c.Items {
		if tpl.ID == templateID {
			return game.InventoryItem{
				ID:          uuid.NewString(),
				Name:        tpl.Name,
				Type:        game.ItemType(tpl.Type),
				Value:       tpl.Value,
				Description: tpl.Description,
				Nutrition:   tpl.Nutrition,
			}, true
		}
	}
	return game.InventoryItem{}, false
}

// SpawnQuest instantiates a quest from a template. The quest keeps the
// template id: the store deduplicates quests by id, so a template can be
// active at most once.
func (c *Catalog) SpawnQuest(templateID string) (game.Quest, bool) {
	for _, tpl := range c.Quests {
		if tpl.ID == templateID {
			return game.Quest{
				ID:          tpl.ID,
				Title:       tpl.Title,
				Description: tpl.Description,
				MoralChoice: tpl.MoralChoice,
				Outcomes:    tpl.Outcomes,
				Status:      game.QuestActive,
				Progress:    0,
				Reward: game.QuestReward{
					XP:       tpl.Reward.XP,
					Currency: tpl.Reward.Currency,
					ItemID:   tpl.Reward.ItemID,
				},
			}, true
		}
	}
	return game.Quest{}, false
}
