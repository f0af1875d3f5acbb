package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexuschronicles/internal/character"
	"nexuschronicles/internal/game"
)

func openTestDB(t *testing.T) *SaveDB {
	t.Helper()
	db, err := OpenSaveDB(filepath.Join(t.TempDir(), "save.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestSaveDB_MissingRecordIsColdStart(t *testing.T) {
	db := openTestDB(t)

	agg, err := db.LoadAggregate()
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestSaveDB_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	prof := character.NewProfile("Vesna", character.BaseStats{
		Strength: 12, Intelligence: 14, Spirit: 10, HP: 100,
	}, character.Metadata{Origin: "Drifters"})
	prof.Enhancements.Cybernetics = append(prof.Enhancements.Cybernetics, character.CyberNeuralLinkV2)
	prof.AltCurrencies[character.CurrencyKamen] = 42

	want := Aggregate{
		Character: prof,
		Inventory: []game.InventoryItem{
			{ID: "i-1", Name: "Mono Knife", Type: game.ItemWeapon, Value: 120},
		},
		Quests: []game.Quest{
			{ID: "q-1", Title: "Test", Status: game.QuestActive, Progress: 40},
		},
		UnlockedAchievements: []string{"achieve-start-journey"},
	}

	require.NoError(t, db.SaveAggregate(want))

	got, err := db.LoadAggregate()
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("aggregate changed across save/load (-want +got):\n%s", diff)
	}
}

func TestSaveDB_UpsertReplaces(t *testing.T) {
	db := openTestDB(t)

	prof := character.NewProfile("Vesna", character.BaseStats{Strength: 10, HP: 100}, character.Metadata{})
	agg := Aggregate{Character: prof, Inventory: []game.InventoryItem{}, Quests: []game.Quest{}, UnlockedAchievements: []string{}}
	require.NoError(t, db.SaveAggregate(agg))

	agg.Character.Level = 7
	require.NoError(t, db.SaveAggregate(agg))

	got, err := db.LoadAggregate()
	require.NoError(t, err)
	assert.Equal(t, 7, got.Character.Level)
}

func TestSaveDB_ClearAggregate(t *testing.T) {
	db := openTestDB(t)

	prof := character.NewProfile("Vesna", character.BaseStats{Strength: 10, HP: 100}, character.Metadata{})
	require.NoError(t, db.SaveAggregate(Aggregate{Character: prof}))
	require.NoError(t, db.ClearAggregate())

	got, err := db.LoadAggregate()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveDB_TutorialFlag(t *testing.T) {
	db := openTestDB(t)

	done, err := db.TutorialComplete()
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, db.SetTutorialComplete(true))
	done, err = db.TutorialComplete()
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, db.SetTutorialComplete(false))
	done, err = db.TutorialComplete()
	require.NoError(t, err)
	assert.False(t, done)
}

func TestDecodeAggregate_LegacySchema(t *testing.T) {
	raw := []byte(`{
		"character": {
			"name": "Old Hand",
			"level": 3,
			"xp": 450,
			"strength": 9,
			"intellect": 12,
			"adaptation": 8,
			"hp": 90,
			"fatigue": 20,
			"hunger": 25,
			"focus": 60,
			"mentalClarity": 70,
			"kamen": 15,
			"origin": "Drifters"
		},
		"inventory": [],
		"quests": [],
		"unlockedAchievements": ["achieve-start-journey"]
	}`)

	agg, err := decodeAggregate(raw)
	require.NoError(t, err)
	require.NotNil(t, agg.Character)

	p := agg.Character
	assert.Equal(t, "Old Hand", p.Name)
	assert.Equal(t, 12, p.Attributes.Intelligence.Value)
	assert.Equal(t, 8, p.Attributes.Spirit.Value)
	assert.Equal(t, 75, p.State.Fitness.Value) // 100 - hunger
	assert.Equal(t, 15, p.AltCurrencies[character.CurrencyKamen])
	assert.Equal(t, 14, p.InventorySlots) // reseeded from strength 9
}

func TestDecodeAggregate_CorruptJSON(t *testing.T) {
	_, err := decodeAggregate([]byte(`{not json`))
	assert.Error(t, err)
}

func TestSaveDB_CorruptRecordIsColdStart(t *testing.T) {
	db := openTestDB(t)

	_, err := db.db.Exec(`INSERT INTO save_state (key, data, updated_at) VALUES (?, '{broken', '2026-01-01T00:00:00Z')`, saveKey)
	require.NoError(t, err)

	agg, err := db.LoadAggregate()
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestDecodeAggregate_NilSlicesBecomeEmpty(t *testing.T) {
	agg, err := decodeAggregate([]byte(`{"character": null}`))
	require.NoError(t, err)
	assert.Nil(t, agg.Character)
	assert.NotNil(t, agg.Inventory)
	assert.NotNil(t, agg.Quests)
	assert.NotNil(t, agg.UnlockedAchievements)
}
