// Package achievement defines the static achievement catalog and the pure
// unlock predicates evaluated by the store after relevant mutations.
package achievement

import (
	"nexuschronicles/internal/character"
	"nexuschronicles/internal/game"
)

// Icon is a closed identifier for achievement artwork. Icons resolve through
// an explicit table rather than free-form string lookups.
type Icon int

const (
	IconCompass Icon = iota
	IconScroll
	IconTrophy
	IconBackpack
	IconChip
	IconCoin
	IconSkull
)

var iconGlyphs = map[Icon]string{
	IconCompass:  "🧭",
	IconScroll:   "📜",
	IconTrophy:   "🏆",
	IconBackpack: "🎒",
	IconChip:     "🔩",
	IconCoin:     "🪙",
	IconSkull:    "💀",
}

// Glyph returns the display glyph for the icon, falling back to the trophy.
func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[IconTrophy]
}

// Reward is granted exactly once, on first unlock. Values are additive and
// never negative.
type Reward struct {
	XP       int `json:"xp,omitempty"`
	Currency int `json:"currency,omitempty"`
}

// Predicate decides unlock eligibility from a character snapshot and the
// quest list. Predicates are pure; the store owns all side effects.
type Predicate func(p *character.Profile, quests []game.Quest) bool

// Achievement is a static catalog entry.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        Icon
	IsSpoiler   bool
	Reward      Reward
	Unlocked    Predicate
}

// Well-known achievement ids referenced by the store lifecycle.
const (
	IDStartJourney      = "achieve-start-journey"
	IDFirstQuest        = "achieve-first-quest"
	IDFirstQuestDone    = "achieve-first-quest-complete"
	IDPackMule          = "achieve-pack-mule"
	IDLevelFive         = "achieve-level-five"
	IDChromeHeart       = "achieve-chrome-heart"
	IDKamenCollector    = "achieve-kamen-collector"
)

// Catalog returns the full static achievement set, in unlock-display order.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:          IDStartJourney,
			Name:        "First Light",
			Description: "Begin your journey through the Nexus.",
			Icon:        IconCompass,
			Reward:      Reward{XP: 50},
			Unlocked: func(p *character.Profile, _ []game.Quest) bool {
				return p != nil
			},
		},
		{
			ID:          IDFirstQuest,
			Name:        "Taking Work",
			Description: "Accept your first quest.",
			Icon:        IconScroll,
			Reward:      Reward{XP: 100},
			Unlocked: func(_ *character.Profile, quests []game.Quest) bool {
				return len(quests) > 0
			},
		},
		{
			ID:          IDFirstQuestDone,
			Name:        "Finisher",
			Description: "See a quest through to the end.",
			Icon:        IconTrophy,
			Reward:      Reward{XP: 200, Currency: 50},
			Unlocked: func(_ *character.Profile, quests []game.Quest) bool {
				for _, q := range quests {
					if q.Status == game.QuestCompleted {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          IDPackMule,
			Name:        "Pack Mule",
			Description: "Expand your inventory to 15 slots.",
			Icon:        IconBackpack,
			Reward:      Reward{Currency: 25},
			Unlocked: func(p *character.Profile, _ []game.Quest) bool {
				return p != nil && p.InventorySlots >= 15
			},
		},
		{
			ID:          IDLevelFive,
			Name:        "Seasoned",
			Description: "Reach level 5.",
			Icon:        IconTrophy,
			Reward:      Reward{XP: 0, Currency: 100},
			Unlocked: func(p *character.Profile, _ []game.Quest) bool {
				return p != nil && p.Level >= 5
			},
		},
		{
			ID:          IDChromeHeart,
			Name:        "Chrome Heart",
			Description: "Install your first cybernetic enhancement.",
			Icon:        IconChip,
			IsSpoiler:   true,
			Reward:      Reward{XP: 150},
			Unlocked: func(p *character.Profile, _ []game.Quest) bool {
				return p != nil && len(p.Enhancements.Cybernetics) > 0
			},
		},
		{
			ID:          IDKamenCollector,
			Name:        "Stone Counter",
			Description: "Hold 100 kamen at once.",
			Icon:        IconCoin,
			IsSpoiler:   true,
			Reward:      Reward{Currency: 200},
			Unlocked: func(p *character.Profile, _ []game.Quest) bool {
				return p != nil && p.AltCurrencies[character.CurrencyKamen] >= 100
			},
		},
	}
}

// ByID indexes the catalog for lookup.
func ByID(catalog []Achievement) map[string]Achievement {
	m := make(map[string]Achievement, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}
