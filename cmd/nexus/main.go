package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nexuschronicles/internal/catalog"
	"nexuschronicles/internal/config"
	"nexuschronicles/internal/logging"
	"nexuschronicles/internal/store"
)

var (
	// Global flags
	verbose bool
	dataDir string
	apiKey  string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Nexus Chronicles - post-apocalyptic CLI RPG",
	Long: `Nexus Chronicles is a single-player, local-first RPG engine.

Your character, inventory, quests, and achievements live in a SQLite save
database under the data directory. Derived stats are recomputed on every
read; nothing derived is ever persisted.

Run without arguments to open the interactive character sheet.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive sheet has its own UI; skip the CLI logger there.
		if cmd.Use == "nexus" && cmd.CalledAs() == "nexus" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSheetUI()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.nexus)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set NEXUS_API_KEY / GEMINI_API_KEY)")

	rootCmd.AddCommand(characterCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cheatCmd)
	rootCmd.AddCommand(aiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles everything a command needs: config, static catalogs, and the
// hydrated store. Always pair openApp with a deferred app.close.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *store.Store
}

func openApp() (*app, error) {
	dir := dataDir
	if dir == "" {
		dir = config.DefaultDataDir()
	}

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Initialize(dir, cfg.Logging.Options()); err != nil {
		return nil, err
	}
	logging.Boot("nexus starting, data dir %s", dir)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	db, err := store.OpenSaveDB(cfg.Game.ResolveSavePath(dir))
	if err != nil {
		return nil, err
	}

	st := store.New(db, cat, time.Duration(cfg.Game.AutosaveDebounceMS)*time.Millisecond)
	if err := st.Hydrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("hydrate save state: %w", err)
	}

	return &app{cfg: cfg, catalog: cat, store: st}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing save state: %v\n", err)
	}
}

// requireCharacter returns the current profile snapshot or a friendly error
// telling the player to create one.
func (a *app) requireCharacter() (store.Aggregate, error) {
	snap := a.store.Snapshot()
	if snap.Character == nil {
		return snap, fmt.Errorf("no character yet; run 'nexus character create' first")
	}
	return snap, nil
}
