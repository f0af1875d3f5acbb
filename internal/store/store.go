package store

import (
	"sync"
	"time"

	"nexuschronicles/internal/achievement"
	"nexuschronicles/internal/catalog"
	"nexuschronicles/internal/character"
	"nexuschronicles/internal/game"
	"nexuschronicles/internal/logging"
)

// Store is the single owner of the character aggregate. Every mutation goes
// through its operation set; readers get snapshots. Operations are safe
// no-ops on missing entities - the UI layer never sees an error from them.
//
// Saves happen in the background: mutations mark the aggregate dirty and a
// saver goroutine flushes after a short debounce, so rapid UI-driven
// mutations coalesce into one write.
type Store struct {
	mu           sync.Mutex
	db           persistence
	catalog      *catalog.Catalog
	achievements []achievement.Achievement

	agg      Aggregate
	hydrated bool

	dirty    chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	debounce time.Duration
}

// StatDeltas carries additive updates for the mutable scalar fields. XP and
// the currencies are plain additions; the condition metrics clamp to
// [0,100] after the delta is applied.
type StatDeltas struct {
	XP            int
	Currency      int
	Alt           map[string]int
	Fatigue       int
	Fitness       int
	Focus         int
	MentalClarity int
}

// CreateParams describes a new character.
type CreateParams struct {
	Name        string
	Faction     string
	Base        character.BaseStats
	Preset      *catalog.Preset
	Orientation string
}

// New builds a store over the given save database and static data. Call
// Hydrate before use.
func New(db *SaveDB, cat *catalog.Catalog, debounce time.Duration) *Store {
	return newStore(db, cat, debounce)
}

func newStore(db persistence, cat *catalog.Catalog, debounce time.Duration) *Store {
	return &Store{
		db:           db,
		catalog:      cat,
		achievements: achievement.Catalog(),
		agg: Aggregate{
			Inventory:            []game.InventoryItem{},
			Quests:               []game.Quest{},
			UnlockedAchievements: []string{},
		},
		dirty:    make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
	}
}

// Hydrate loads persisted state and starts the background saver. The UI
// gates rendering on Hydrated so a fresh default sheet never flashes while
// the save record is still being read.
func (s *Store) Hydrate() error {
	agg, err := s.db.LoadAggregate()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if agg != nil {
		s.agg = *agg
	}
	s.hydrated = true
	s.mu.Unlock()

	if agg != nil && agg.Character != nil {
		logging.Store("hydrated character %q (level %d)", agg.Character.Name, agg.Character.Level)
	} else {
		logging.Store("cold start: no persisted character")
	}

	s.wg.Add(1)
	go s.saver()
	return nil
}

// Hydrated reports whether persisted state has finished loading.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Close flushes any pending save and stops the saver goroutine.
func (s *Store) Close() error {
	close(s.done)
	s.wg.Wait()

	s.mu.Lock()
	agg := s.snapshotLocked()
	hasCharacter := s.agg.Character != nil
	s.mu.Unlock()

	if hasCharacter {
		if err := s.db.SaveAggregate(agg); err != nil {
			logging.StoreError("final flush failed: %v", err)
		}
	}
	return s.db.Close()
}

// saver debounces dirty signals into background writes.
func (s *Store) saver() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.dirty:
		}

		if s.debounce > 0 {
			timer := time.NewTimer(s.debounce)
			select {
			case <-s.done:
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		s.mu.Lock()
		agg := s.snapshotLocked()
		s.mu.Unlock()

		if err := s.db.SaveAggregate(agg); err != nil {
			logging.StoreError("background save failed: %v", err)
		}
	}
}

func (s *Store) markDirtyLocked() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Snapshot returns a deep copy of the aggregate for readers.
func (s *Store) Snapshot() Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Aggregate {
	out := Aggregate{
		Inventory:            append([]game.InventoryItem(nil), s.agg.Inventory...),
		Quests:               append([]game.Quest(nil), s.agg.Quests...),
		UnlockedAchievements: append([]string(nil), s.agg.UnlockedAchievements...),
	}
	if s.agg.Character != nil {
		p := *s.agg.Character
		p.Enhancements.Cybernetics = append([]string(nil), s.agg.Character.Enhancements.Cybernetics...)
		p.Enhancements.Implants = append([]string(nil), s.agg.Character.Enhancements.Implants...)
		p.Enhancements.Curses = append([]string(nil), s.agg.Character.Enhancements.Curses...)
		p.AltCurrencies = make(map[string]int, len(s.agg.Character.AltCurrencies))
		for k, v := range s.agg.Character.AltCurrencies {
			p.AltCurrencies[k] = v
		}
		out.Character = &p
	}
	return out
}

// CreateCharacter initializes a fresh aggregate. The caller is responsible
// for confirming an overwrite when a character already exists. The tutorial
// flag is cleared: a new character means a fresh start.
func (s *Store) CreateCharacter(p CreateParams) *character.Profile {
	meta := character.Metadata{
		Orientation: p.Orientation,
		Origin:      p.Faction,
	}
	if p.Preset != nil {
		meta.Age = p.Preset.Age
		meta.Gender = p.Preset.Gender
		meta.Style = p.Preset.Style
		meta.Backstory = p.Preset.Backstory
	}

	prof := character.NewProfile(p.Name, p.Base, meta)

	s.mu.Lock()
	s.agg = Aggregate{
		Character:            prof,
		Inventory:            []game.InventoryItem{},
		Quests:               []game.Quest{},
		UnlockedAchievements: []string{achievement.IDStartJourney},
	}
	s.markDirtyLocked()
	s.mu.Unlock()

	if err := s.db.SetTutorialComplete(false); err != nil {
		logging.StoreError("clear tutorial flag: %v", err)
	}

	logging.Game("created character %q (faction %s)", p.Name, p.Faction)
	return prof
}

// ResetCharacter clears everything: in-memory aggregate, persisted record,
// tutorial flag. Irreversible; confirmation is the caller's problem.
func (s *Store) ResetCharacter() {
	s.mu.Lock()
	s.agg = Aggregate{
		Inventory:            []game.InventoryItem{},
		Quests:               []game.Quest{},
		UnlockedAchievements: []string{},
	}
	s.mu.Unlock()

	if err := s.db.ClearAggregate(); err != nil {
		logging.StoreError("clear save record: %v", err)
	}
	if err := s.db.SetTutorialComplete(false); err != nil {
		logging.StoreError("clear tutorial flag: %v", err)
	}
	logging.Game("character reset")
}

// UpdateCharacterStats applies additive deltas. No-op without an active
// character. Condition metrics clamp to [0,100]; XP overflow converts into
// level-ups at level*1000 per level.
func (s *Store) UpdateCharacterStats(d StatDeltas) bool {
	s.mu.Lock()
	if s.agg.Character == nil {
		s.mu.Unlock()
		return false
	}
	s.applyDeltasLocked(d)
	s.checkAchievementsLocked()
	s.markDirtyLocked()
	s.mu.Unlock()
	return true
}

func (s *Store) applyDeltasLocked(d StatDeltas) {
	p := s.agg.Character

	p.XP += d.XP
	p.Currency += d.Currency
	for name, delta := range d.Alt {
		if p.AltCurrencies == nil {
			p.AltCurrencies = map[string]int{}
		}
		p.AltCurrencies[name] += delta
		if p.AltCurrencies[name] < 0 {
			p.AltCurrencies[name] = 0
		}
	}

	p.State.Fatigue.Value = character.ClampMetric(p.State.Fatigue.Value + d.Fatigue)
	p.State.Fitness.Value = character.ClampMetric(p.State.Fitness.Value + d.Fitness)
	p.State.Focus.Value = character.ClampMetric(p.State.Focus.Value + d.Focus)
	p.State.MentalClarity.Value = character.ClampMetric(p.State.MentalClarity.Value + d.MentalClarity)

	// Spend XP thresholds into levels.
	for p.XP >= p.Level*1000 {
		p.XP -= p.Level * 1000
		p.Level++
		logging.Game("%q reached level %d", p.Name, p.Level)
	}

	p.Normalize()
}

// UnlockInventorySlot increments capacity by one, silently refusing at the
// cap of 25. A success re-evaluates achievements (inventory expansion).
func (s *Store) UnlockInventorySlot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil || s.agg.Character.InventorySlots >= character.InventorySlotCap {
		return false
	}
	s.agg.Character.InventorySlots++
	s.checkAchievementsLocked()
	s.markDirtyLocked()
	return true
}

// AddQuest appends a quest unless one with the same id is already present.
func (s *Store) AddQuest(q game.Quest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil {
		return false
	}
	for _, existing := range s.agg.Quests {
		if existing.ID == q.ID {
			return false
		}
	}
	s.agg.Quests = append(s.agg.Quests, q)
	logging.Game("quest accepted: %s", q.ID)
	s.checkAchievementsLocked()
	s.markDirtyLocked()
	return true
}

// UpdateQuestProgress advances a quest by id. Completion fires exactly once
// and grants the quest reward before achievements are re-evaluated. No-op
// when the id is unknown.
func (s *Store) UpdateQuestProgress(questID string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil {
		return false
	}
	for i := range s.agg.Quests {
		if s.agg.Quests[i].ID != questID {
			continue
		}
		q := &s.agg.Quests[i]
		if q.Advance(delta) {
			logging.Game("quest completed: %s", q.ID)
			s.grantQuestRewardLocked(q.Reward)
		}
		s.checkAchievementsLocked()
		s.markDirtyLocked()
		return true
	}
	return false
}

func (s *Store) grantQuestRewardLocked(r game.QuestReward) {
	if r.XP > 0 || r.Currency > 0 {
		s.applyDeltasLocked(StatDeltas{XP: r.XP, Currency: r.Currency})
	}
	if r.ItemID != "" && s.catalog != nil {
		if item, ok := s.catalog.SpawnItem(r.ItemID); ok {
			s.addItemLocked(item)
		}
	}
}

// UnlockAchievement evaluates one catalog entry by id and unlocks it if its
// predicate holds. Idempotent: an already-unlocked id is a no-op and the
// reward is granted at most once.
func (s *Store) UnlockAchievement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil || s.isUnlockedLocked(id) {
		return false
	}
	for _, a := range s.achievements {
		if a.ID != id {
			continue
		}
		if !a.Unlocked(s.agg.Character, s.agg.Quests) {
			return false
		}
		s.unlockLocked(a)
		s.checkAchievementsLocked()
		s.markDirtyLocked()
		return true
	}
	return false
}

func (s *Store) isUnlockedLocked(id string) bool {
	for _, u := range s.agg.UnlockedAchievements {
		if u == id {
			return true
		}
	}
	return false
}

// unlockLocked appends the id and grants the reward through the additive
// stat path. Rewards never subtract.
func (s *Store) unlockLocked(a achievement.Achievement) {
	s.agg.UnlockedAchievements = append(s.agg.UnlockedAchievements, a.ID)
	if a.Reward.XP > 0 || a.Reward.Currency > 0 {
		s.applyDeltasLocked(StatDeltas{XP: a.Reward.XP, Currency: a.Reward.Currency})
	}
	logging.Achievements("unlocked %s (%s)", a.ID, a.Name)
}

// checkAchievementsLocked evaluates every locked achievement and runs to a
// fixpoint: a granted reward can itself satisfy a later predicate. Bounded
// by the catalog size.
func (s *Store) checkAchievementsLocked() {
	if s.agg.Character == nil {
		return
	}
	for {
		unlockedAny := false
		for _, a := range s.achievements {
			if s.isUnlockedLocked(a.ID) {
				continue
			}
			if a.Unlocked(s.agg.Character, s.agg.Quests) {
				s.unlockLocked(a)
				unlockedAny = true
			}
		}
		if !unlockedAny {
			return
		}
	}
}

// AddItem appends an item if a slot is free. No-op at capacity or without a
// character.
func (s *Store) AddItem(item game.InventoryItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil {
		return false
	}
	if !s.addItemLocked(item) {
		return false
	}
	s.markDirtyLocked()
	return true
}

func (s *Store) addItemLocked(item game.InventoryItem) bool {
	if len(s.agg.Inventory) >= s.agg.Character.InventorySlots {
		logging.GameDebug("inventory full, dropping spawn of %q", item.Name)
		return false
	}
	s.agg.Inventory = append(s.agg.Inventory, item)
	return true
}

// RemoveItem drops an item by id; unknown ids are ignored.
func (s *Store) RemoveItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.agg.Inventory {
		if item.ID == itemID {
			s.agg.Inventory = append(s.agg.Inventory[:i], s.agg.Inventory[i+1:]...)
			s.markDirtyLocked()
			return true
		}
	}
	return false
}

// SetInventory wholesale-replaces the inventory (bulk initialization).
func (s *Store) SetInventory(items []game.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg.Inventory = append([]game.InventoryItem(nil), items...)
	s.markDirtyLocked()
}

// InstallCybernetic adds a named cybernetic enhancement and re-evaluates
// achievements. Duplicate installs are no-ops.
func (s *Store) InstallCybernetic(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil || s.agg.Character.HasCybernetic(name) {
		return false
	}
	s.agg.Character.Enhancements.Cybernetics = append(s.agg.Character.Enhancements.Cybernetics, name)
	s.checkAchievementsLocked()
	s.markDirtyLocked()
	return true
}

// AdjustAttribute is the sanctioned cheat path for base attributes, which
// are otherwise fixed at creation.
func (s *Store) AdjustAttribute(attr string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.agg.Character == nil {
		return false
	}
	p := s.agg.Character
	switch attr {
	case "strength":
		p.Attributes.Strength.Value += delta
	case "intelligence":
		p.Attributes.Intelligence.Value += delta
	case "spirit":
		p.Attributes.Spirit.Value += delta
	case "hp":
		p.Attributes.HP += delta
	default:
		return false
	}
	s.checkAchievementsLocked()
	s.markDirtyLocked()
	return true
}

// MarkTutorialComplete records the onboarding flag.
func (s *Store) MarkTutorialComplete() {
	if err := s.db.SetTutorialComplete(true); err != nil {
		logging.StoreError("set tutorial flag: %v", err)
	}
}

// TutorialCompleted reads the onboarding flag; failures read as false.
func (s *Store) TutorialCompleted() bool {
	done, err := s.db.TutorialComplete()
	if err != nil {
		logging.StoreError("read tutorial flag: %v", err)
		return false
	}
	return done
}
