package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nexuschronicles/internal/character"
	"nexuschronicles/internal/stats"
	"nexuschronicles/internal/store"
	"nexuschronicles/internal/synthesis"
)

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Create, inspect, and reset your character",
}

var (
	createName        string
	createFaction     string
	createPreset      string
	createConcept     string
	createOrientation string
	createStr         int
	createInt         int
	createSpirit      int
	createHP          int
	createForce       bool
)

var characterCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new character",
	Long: `Creates a fresh character, replacing any existing save.

Flavor comes from a preset, chosen either by name (--preset) or synthesized
from a free-text concept (--concept "grizzled veteran pirate"). Attributes
default to 10/10/10 with a 100 HP pool unless overridden.`,
	RunE: runCharacterCreate,
}

var characterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the current character and all progress",
	RunE:  runCharacterReset,
}

var characterSheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Print the character sheet",
	RunE:  runCharacterSheet,
}

func init() {
	characterCreateCmd.Flags().StringVar(&createName, "name", "", "Character name (required)")
	characterCreateCmd.Flags().StringVar(&createFaction, "faction", "", "Starting faction")
	characterCreateCmd.Flags().StringVar(&createPreset, "preset", "", "Preset name from the catalog")
	characterCreateCmd.Flags().StringVar(&createConcept, "concept", "", "Free-text concept to synthesize a preset from")
	characterCreateCmd.Flags().StringVar(&createOrientation, "orientation", "", "Character orientation")
	characterCreateCmd.Flags().IntVar(&createStr, "str", 10, "Base strength")
	characterCreateCmd.Flags().IntVar(&createInt, "int", 10, "Base intelligence")
	characterCreateCmd.Flags().IntVar(&createSpirit, "spirit", 10, "Base spirit")
	characterCreateCmd.Flags().IntVar(&createHP, "hp", 100, "Base HP pool")
	characterCreateCmd.Flags().BoolVar(&createForce, "force", false, "Overwrite an existing character without asking")
	characterCreateCmd.MarkFlagRequired("name")

	characterResetCmd.Flags().BoolVar(&createForce, "force", false, "Skip the confirmation prompt")

	characterCmd.AddCommand(characterCreateCmd)
	characterCmd.AddCommand(characterResetCmd)
	characterCmd.AddCommand(characterSheetCmd)
}

func runCharacterCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.store.Snapshot().Character != nil && !createForce {
		if !confirm(cmd, "A character already exists. Overwrite?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if createFaction != "" && a.catalog.FactionByName(createFaction) == nil {
		names := make([]string, len(a.catalog.Factions))
		for i, f := range a.catalog.Factions {
			names[i] = f.Name
		}
		return fmt.Errorf("unknown faction %q (have: %s)", createFaction, strings.Join(names, ", "))
	}

	preset := a.catalog.PresetByName(createPreset)
	if preset == nil && createPreset != "" {
		return fmt.Errorf("unknown preset %q", createPreset)
	}
	if preset == nil && createConcept != "" {
		matched := synthesis.New(a.catalog.Presets).Synthesize(createConcept)
		preset = &matched
		logger.Info("Synthesized preset from concept",
			zap.String("concept", createConcept),
			zap.String("preset", matched.Name))
		fmt.Printf("Concept matched preset: %s\n", matched.Name)
	}

	p := a.store.CreateCharacter(store.CreateParams{
		Name:        createName,
		Faction:     createFaction,
		Orientation: createOrientation,
		Preset:      preset,
		Base: character.BaseStats{
			Strength:     createStr,
			Intelligence: createInt,
			Spirit:       createSpirit,
			HP:           createHP,
		},
	})

	fmt.Printf("Created %s (level %d, %d inventory slots)\n", p.Name, p.Level, p.InventorySlots)
	return nil
}

func runCharacterReset(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.store.Snapshot().Character == nil {
		fmt.Println("No character to reset.")
		return nil
	}
	if !createForce && !confirm(cmd, "This deletes your character and all progress. Continue?") {
		fmt.Println("Aborted.")
		return nil
	}

	a.store.ResetCharacter()
	fmt.Println("Character reset.")
	return nil
}

func runCharacterSheet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.requireCharacter()
	if err != nil {
		return err
	}
	p := snap.Character
	derived := stats.Calculate(p)

	fmt.Printf("%s  (level %d, %d xp)\n", p.Name, p.Level, p.XP)
	if p.Metadata.Origin != "" {
		fmt.Printf("Faction: %s\n", p.Metadata.Origin)
	}
	fmt.Println()
	fmt.Printf("  Strength:     %3d  (effective %d)\n", p.Attributes.Strength.Value, derived.EffectiveStrength)
	fmt.Printf("  Intelligence: %3d  (effective %d)\n", p.Attributes.Intelligence.Value, derived.EffectiveIntelligence)
	fmt.Printf("  Spirit:       %3d\n", p.Attributes.Spirit.Value)
	fmt.Printf("  Max HP:       %3d   Crit: %d%%\n", derived.MaxHP, derived.CritChance)
	fmt.Println()
	fmt.Printf("  Fatigue %d  Fitness %d  Focus %d  Clarity %d\n",
		p.State.Fatigue.Value, p.State.Fitness.Value, p.State.Focus.Value, p.State.MentalClarity.Value)
	fmt.Printf("  Credits: %d", p.Currency)
	for _, name := range []string{character.CurrencyKamen, character.CurrencyMracnik, character.CurrencyPrasinskeKovanice} {
		if v := p.AltCurrencies[name]; v > 0 {
			fmt.Printf("  %s: %d", name, v)
		}
	}
	fmt.Println()
	if len(p.Enhancements.Cybernetics) > 0 {
		fmt.Printf("  Cybernetics: %s\n", strings.Join(p.Enhancements.Cybernetics, ", "))
	}
	if len(p.Enhancements.Curses) > 0 {
		fmt.Printf("  Curses: %s\n", strings.Join(p.Enhancements.Curses, ", "))
	}
	fmt.Printf("  Inventory: %d/%d slots used\n", len(snap.Inventory), p.InventorySlots)
	return nil
}

// confirm asks a y/N question on the command's stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	fmt.Fscanln(cmd.InOrStdin(), &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
