package catalog

import (
	"testing"

	"nexuschronicles/internal/game"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Presets) == 0 || len(c.Factions) == 0 || len(c.Items) == 0 || len(c.Quests) == 0 {
		t.Fatalf("catalog sections must be non-empty: %d presets, %d factions, %d items, %d quests",
			len(c.Presets), len(c.Factions), len(c.Items), len(c.Quests))
	}
	for _, p := range c.Presets {
		if len(p.Keywords) == 0 {
			t.Errorf("preset %q has no keywords", p.Name)
		}
	}
}

func TestSpawnItem_UniqueInstanceIDs(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a, ok := c.SpawnItem("item-ration-bar")
	if !ok {
		t.Fatal("expected item-ration-bar template")
	}
	b, _ := c.SpawnItem("item-ration-bar")
	if a.ID == b.ID {
		t.Error("two spawns of the same template must have distinct ids")
	}
	if a.Type != game.ItemConsumable {
		t.Errorf("expected Consumable, got %s", a.Type)
	}
	if a.Nutrition != 40 {
		t.Errorf("expected nutrition 40, got %d", a.Nutrition)
	}
}

func TestSpawnItem_UnknownTemplate(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := c.SpawnItem("item-nope"); ok {
		t.Error("unknown template must not spawn")
	}
}

func TestSpawnQuest_KeepsTemplateID(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	q, ok := c.SpawnQuest("quest-ghost-freighter")
	if !ok {
		t.Fatal("expected quest-ghost-freighter template")
	}
	if q.ID != "quest-ghost-freighter" {
		t.Errorf("quest instances keep the template id, got %s", q.ID)
	}
	if q.Status != game.QuestActive || q.Progress != 0 {
		t.Errorf("fresh quest should be Active at 0%%, got %s/%d", q.Status, q.Progress)
	}
	if q.Reward.ItemID != "item-flak-vest" {
		t.Errorf("reward item should carry over, got %q", q.Reward.ItemID)
	}
}

func TestFactionLookup(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f := c.FactionByName("Drifters")
	if f == nil {
		t.Fatal("expected Drifters faction")
	}
	if f.Currency != "kamen" {
		t.Errorf("expected kamen currency, got %s", f.Currency)
	}
	if c.FactionByName("Nobody") != nil {
		t.Error("unknown faction should return nil")
	}
}
