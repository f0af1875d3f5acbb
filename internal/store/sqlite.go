// Package store owns the single active character aggregate - profile,
// inventory, quest list, unlocked achievements - and all mutation on it.
// The aggregate persists as one JSON record in a small SQLite key/value
// table; a missing or unreadable record is a cold start, never an error.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nexuschronicles/internal/character"
	"nexuschronicles/internal/game"
	"nexuschronicles/internal/logging"
)

// Fixed record keys in the save database.
const (
	saveKey     = "nexus-rpg-save"
	tutorialKey = "nexus-tutorial-complete"
)

// Aggregate is the persisted unit: everything the store owns, saved and
// loaded together.
type Aggregate struct {
	Character            *character.Profile   `json:"character"`
	Inventory            []game.InventoryItem `json:"inventory"`
	Quests               []game.Quest         `json:"quests"`
	UnlockedAchievements []string             `json:"unlockedAchievements"`
}

// persistence is what the store needs from its backing storage.
type persistence interface {
	LoadAggregate() (*Aggregate, error)
	SaveAggregate(Aggregate) error
	ClearAggregate() error
	SetTutorialComplete(bool) error
	TutorialComplete() (bool, error)
	Close() error
}

// SaveDB is the SQLite-backed save file.
type SaveDB struct {
	db *sql.DB
}

// OpenSaveDB opens or creates the save database at path.
func OpenSaveDB(path string) (*SaveDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}

	s := &SaveDB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate save db: %w", err)
	}
	return s, nil
}

func (s *SaveDB) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS save_state (
		key        TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// LoadAggregate reads the persisted aggregate. A missing record or a record
// that fails to parse yields (nil, nil): cold start.
func (s *SaveDB) LoadAggregate() (*Aggregate, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM save_state WHERE key = ?`, saveKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save record: %w", err)
	}

	agg, err := decodeAggregate([]byte(raw))
	if err != nil {
		// Corrupt save: log and fall back to cold start rather than
		// blocking the player.
		logging.StoreError("save record unreadable, starting cold: %v", err)
		return nil, nil
	}
	return agg, nil
}

// decodeAggregate parses a persisted aggregate, migrating a legacy-schema
// character in place when one is found.
func decodeAggregate(raw []byte) (*Aggregate, error) {
	var probe struct {
		Character            json.RawMessage      `json:"character"`
		Inventory            []game.InventoryItem `json:"inventory"`
		Quests               []game.Quest         `json:"quests"`
		UnlockedAchievements []string             `json:"unlockedAchievements"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	agg := &Aggregate{
		Inventory:            probe.Inventory,
		Quests:               probe.Quests,
		UnlockedAchievements: probe.UnlockedAchievements,
	}

	if len(probe.Character) > 0 && string(probe.Character) != "null" {
		if character.IsLegacyProfile(probe.Character) {
			p, err := character.MigrateLegacyProfile(probe.Character)
			if err != nil {
				return nil, fmt.Errorf("migrate legacy character: %w", err)
			}
			logging.Store("migrated legacy character schema for %q", p.Name)
			agg.Character = p
		} else {
			var p character.Profile
			if err := json.Unmarshal(probe.Character, &p); err != nil {
				return nil, fmt.Errorf("decode character: %w", err)
			}
			p.Normalize()
			agg.Character = &p
		}
	}

	if agg.Inventory == nil {
		agg.Inventory = []game.InventoryItem{}
	}
	if agg.Quests == nil {
		agg.Quests = []game.Quest{}
	}
	if agg.UnlockedAchievements == nil {
		agg.UnlockedAchievements = []string{}
	}
	return agg, nil
}

// SaveAggregate upserts the aggregate under the fixed key.
func (s *SaveDB) SaveAggregate(agg Aggregate) error {
	data, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO save_state (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		saveKey, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write save record: %w", err)
	}
	return nil
}

// ClearAggregate removes the save record entirely.
func (s *SaveDB) ClearAggregate() error {
	_, err := s.db.Exec(`DELETE FROM save_state WHERE key = ?`, saveKey)
	return err
}

// SetTutorialComplete writes the secondary onboarding flag.
func (s *SaveDB) SetTutorialComplete(done bool) error {
	if !done {
		_, err := s.db.Exec(`DELETE FROM save_state WHERE key = ?`, tutorialKey)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO save_state (key, data, updated_at) VALUES (?, 'true', ?)
		ON CONFLICT(key) DO UPDATE SET data = 'true', updated_at = excluded.updated_at`,
		tutorialKey, time.Now().UTC().Format(time.RFC3339))
	return err
}

// TutorialComplete reads the onboarding flag; absence means false.
func (s *SaveDB) TutorialComplete() (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM save_state WHERE key = ?`, tutorialKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

// Close closes the underlying database.
func (s *SaveDB) Close() error {
	return s.db.Close()
}
