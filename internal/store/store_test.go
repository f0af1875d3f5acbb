package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"nexuschronicles/internal/achievement"
	"nexuschronicles/internal/catalog"
	"nexuschronicles/internal/character"
	"nexuschronicles/internal/game"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memPersistence is an in-memory stand-in for the SQLite save file.
type memPersistence struct {
	mu       sync.Mutex
	agg      *Aggregate
	tutorial bool
	saves    int
}

func (m *memPersistence) LoadAggregate() (*Aggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agg, nil
}

func (m *memPersistence) SaveAggregate(agg Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agg = &agg
	m.saves++
	return nil
}

func (m *memPersistence) ClearAggregate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agg = nil
	return nil
}

func (m *memPersistence) SetTutorialComplete(done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tutorial = done
	return nil
}

func (m *memPersistence) TutorialComplete() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tutorial, nil
}

func (m *memPersistence) Close() error { return nil }

func (m *memPersistence) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func testStore(t *testing.T) (*Store, *memPersistence) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	mem := &memPersistence{}
	s := newStore(mem, cat, 0)
	require.NoError(t, s.Hydrate())
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s, mem
}

func createTestCharacter(s *Store) *character.Profile {
	return s.CreateCharacter(CreateParams{
		Name:    "Vesna",
		Faction: "Drifters",
		Base:    character.BaseStats{Strength: 12, Intelligence: 14, Spirit: 10, HP: 100},
	})
}

func TestStore_HydrateColdStart(t *testing.T) {
	s, _ := testStore(t)
	assert.True(t, s.Hydrated())
	assert.Nil(t, s.Snapshot().Character)
}

func TestStore_CreateCharacter(t *testing.T) {
	s, mem := testStore(t)
	mem.SetTutorialComplete(true)

	p := createTestCharacter(s)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 16, p.InventorySlots) // 10 + 12/2

	snap := s.Snapshot()
	require.NotNil(t, snap.Character)
	assert.Contains(t, snap.UnlockedAchievements, achievement.IDStartJourney)

	// A new character restarts onboarding.
	assert.False(t, s.TutorialCompleted())
}

func TestStore_ResetCharacter(t *testing.T) {
	s, mem := testStore(t)
	createTestCharacter(s)
	s.MarkTutorialComplete()

	s.ResetCharacter()

	snap := s.Snapshot()
	assert.Nil(t, snap.Character)
	assert.Empty(t, snap.Quests)
	assert.Empty(t, snap.UnlockedAchievements)
	assert.False(t, s.TutorialCompleted())

	agg, err := mem.LoadAggregate()
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestStore_UpdateCharacterStats_ClampsAndLevels(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	// Condition metrics clamp at both ends.
	require.True(t, s.UpdateCharacterStats(StatDeltas{Fatigue: 150, Fitness: -200}))
	snap := s.Snapshot()
	assert.Equal(t, 100, snap.Character.State.Fatigue.Value)
	assert.Equal(t, 0, snap.Character.State.Fitness.Value)

	// 3200 xp: level 1 costs 1000, level 2 costs 2000, 200 remains.
	require.True(t, s.UpdateCharacterStats(StatDeltas{XP: 3200}))
	snap = s.Snapshot()
	assert.Equal(t, 3, snap.Character.Level)
	assert.Equal(t, 200, snap.Character.XP)
}

func TestStore_UpdateCharacterStats_NoCharacter(t *testing.T) {
	s, _ := testStore(t)
	assert.False(t, s.UpdateCharacterStats(StatDeltas{XP: 100}))
}

func TestStore_AltCurrencyFloor(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	s.UpdateCharacterStats(StatDeltas{Alt: map[string]int{character.CurrencyKamen: 30}})
	s.UpdateCharacterStats(StatDeltas{Alt: map[string]int{character.CurrencyKamen: -50}})
	assert.Equal(t, 0, s.Snapshot().Character.AltCurrencies[character.CurrencyKamen])
}

func TestStore_UnlockInventorySlot_Cap(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s) // 16 slots

	for i := 0; i < 20; i++ {
		s.UnlockInventorySlot()
	}
	assert.Equal(t, character.InventorySlotCap, s.Snapshot().Character.InventorySlots)
	assert.False(t, s.UnlockInventorySlot())
}

func TestStore_AddQuest_DedupesByID(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	q := game.Quest{ID: "quest-1", Title: "Test", Status: game.QuestActive}
	assert.True(t, s.AddQuest(q))
	assert.False(t, s.AddQuest(q))
	assert.Len(t, s.Snapshot().Quests, 1)
}

func TestStore_UpdateQuestProgress_CompletionOnce(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	q := game.Quest{
		ID:     "quest-1",
		Title:  "Test",
		Status: game.QuestActive,
		Reward: game.QuestReward{XP: 300, Currency: 40},
	}
	require.True(t, s.AddQuest(q))

	before := s.Snapshot().Character
	require.True(t, s.UpdateQuestProgress("quest-1", 60))
	require.True(t, s.UpdateQuestProgress("quest-1", 60))

	snap := s.Snapshot()
	assert.Equal(t, game.QuestCompleted, snap.Quests[0].Status)
	assert.Equal(t, 100, snap.Quests[0].Progress)

	// Further progress on a completed quest grants nothing twice.
	xpAfterCompletion := snap.Character.XP
	currencyAfterCompletion := snap.Character.Currency
	require.True(t, s.UpdateQuestProgress("quest-1", 50))
	snap = s.Snapshot()
	assert.Equal(t, xpAfterCompletion, snap.Character.XP)
	assert.Equal(t, currencyAfterCompletion, snap.Character.Currency)
	assert.Greater(t, snap.Character.Currency, before.Currency)
}

func TestStore_UpdateQuestProgress_UnknownID(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)
	assert.False(t, s.UpdateQuestProgress("nope", 10))
}

func TestStore_QuestRewardSpawnsItem(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	q, ok := s.catalog.SpawnQuest("quest-signal-in-the-dust")
	require.True(t, ok)
	require.True(t, s.AddQuest(q))
	require.True(t, s.UpdateQuestProgress(q.ID, 100))

	snap := s.Snapshot()
	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, "Kamen Chit", snap.Inventory[0].Name)
}

func TestStore_AchievementFixpoint(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	// Accepting and finishing a quest unlocks both quest achievements in one
	// evaluation pass, and the rewards land.
	q := game.Quest{ID: "quest-1", Title: "Test", Status: game.QuestActive}
	require.True(t, s.AddQuest(q))
	require.True(t, s.UpdateQuestProgress("quest-1", 100))

	snap := s.Snapshot()
	assert.Contains(t, snap.UnlockedAchievements, achievement.IDFirstQuest)
	assert.Contains(t, snap.UnlockedAchievements, achievement.IDFirstQuestDone)
}

func TestStore_UnlockAchievement_Idempotent(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	// Seeded at creation; a manual unlock must not grant the reward again.
	xp := s.Snapshot().Character.XP
	assert.False(t, s.UnlockAchievement(achievement.IDStartJourney))
	assert.Equal(t, xp, s.Snapshot().Character.XP)
}

func TestStore_UnlockAchievement_PredicateGates(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	// Level 5 not reached yet.
	assert.False(t, s.UnlockAchievement(achievement.IDLevelFive))

	s.UpdateCharacterStats(StatDeltas{XP: 15000})
	assert.Contains(t, s.Snapshot().UnlockedAchievements, achievement.IDLevelFive)
}

func TestStore_InstallCybernetic(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	assert.True(t, s.InstallCybernetic(character.CyberAdrenalBooster))
	assert.False(t, s.InstallCybernetic(character.CyberAdrenalBooster))
	assert.Contains(t, s.Snapshot().UnlockedAchievements, achievement.IDChromeHeart)
}

func TestStore_InventoryCapacity(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s) // 16 slots

	for i := 0; i < 16; i++ {
		item, ok := s.catalog.SpawnItem("item-ration-bar")
		require.True(t, ok)
		require.True(t, s.AddItem(item))
	}
	item, ok := s.catalog.SpawnItem("item-ration-bar")
	require.True(t, ok)
	assert.False(t, s.AddItem(item))
	assert.Len(t, s.Snapshot().Inventory, 16)
}

func TestStore_RemoveItem(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	item, ok := s.catalog.SpawnItem("item-mono-knife")
	require.True(t, ok)
	require.True(t, s.AddItem(item))

	assert.False(t, s.RemoveItem("nope"))
	assert.True(t, s.RemoveItem(item.ID))
	assert.Empty(t, s.Snapshot().Inventory)
}

func TestStore_AdjustAttribute(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	assert.True(t, s.AdjustAttribute("strength", 5))
	assert.Equal(t, 17, s.Snapshot().Character.Attributes.Strength.Value)
	assert.False(t, s.AdjustAttribute("charisma", 5))
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s, _ := testStore(t)
	createTestCharacter(s)

	snap := s.Snapshot()
	snap.Character.Level = 99
	snap.UnlockedAchievements = append(snap.UnlockedAchievements, "fake")

	assert.Equal(t, 1, s.Snapshot().Character.Level)
	assert.NotContains(t, s.Snapshot().UnlockedAchievements, "fake")
}

func TestStore_BackgroundSaveFlushes(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	mem := &memPersistence{}
	s := newStore(mem, cat, 5*time.Millisecond)
	require.NoError(t, s.Hydrate())

	s.CreateCharacter(CreateParams{
		Name: "Vesna",
		Base: character.BaseStats{Strength: 10, Intelligence: 10, Spirit: 10, HP: 100},
	})

	require.Eventually(t, func() bool {
		return mem.saveCount() > 0
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Close())

	agg, err := mem.LoadAggregate()
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, "Vesna", agg.Character.Name)
}
