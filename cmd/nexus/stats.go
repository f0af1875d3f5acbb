package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nexuschronicles/internal/stats"
	"nexuschronicles/internal/store"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show derived stats for the current character",
	Long: `Recomputes the derived view (effective attributes, max HP, crit chance)
from the persisted character. Nothing here is stored; change a state metric
and the numbers move on the next read.`,
	RunE: runStats,
}

var statsAdjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply deltas to the dynamic condition metrics",
	Long: `Adjusts fatigue/fitness/focus/clarity and grants xp or credits. All
deltas are additive; condition metrics clamp to [0,100].

Example:
  nexus stats adjust --fatigue 30 --xp 150`,
	RunE: runStatsAdjust,
}

var (
	adjFatigue  int
	adjFitness  int
	adjFocus    int
	adjClarity  int
	adjXP       int
	adjCurrency int
)

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Emit JSON")

	statsAdjustCmd.Flags().IntVar(&adjFatigue, "fatigue", 0, "Fatigue delta")
	statsAdjustCmd.Flags().IntVar(&adjFitness, "fitness", 0, "Fitness delta")
	statsAdjustCmd.Flags().IntVar(&adjFocus, "focus", 0, "Focus delta")
	statsAdjustCmd.Flags().IntVar(&adjClarity, "clarity", 0, "Mental clarity delta")
	statsAdjustCmd.Flags().IntVar(&adjXP, "xp", 0, "XP delta")
	statsAdjustCmd.Flags().IntVar(&adjCurrency, "credits", 0, "Credits delta")

	statsCmd.AddCommand(statsAdjustCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.requireCharacter()
	if err != nil {
		return err
	}
	derived := stats.Calculate(snap.Character)

	if statsJSON {
		out, err := json.MarshalIndent(derived, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Effective Strength:     %d\n", derived.EffectiveStrength)
	fmt.Printf("Effective Intelligence: %d\n", derived.EffectiveIntelligence)
	fmt.Printf("Max HP:                 %d\n", derived.MaxHP)
	fmt.Printf("Crit Chance:            %d%%\n", derived.CritChance)
	fmt.Printf("Inventory Slots:        %d\n", derived.InventorySlots)

	if chance := stats.TurnForfeitChance(snap.Character); chance > 0 {
		fmt.Printf("Turn Forfeit Chance:    %d%% (Analysis Paralysis)\n", chance)
	}
	return nil
}

func runStatsAdjust(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.requireCharacter(); err != nil {
		return err
	}

	a.store.UpdateCharacterStats(store.StatDeltas{
		XP:            adjXP,
		Currency:      adjCurrency,
		Fatigue:       adjFatigue,
		Fitness:       adjFitness,
		Focus:         adjFocus,
		MentalClarity: adjClarity,
	})

	p := a.store.Snapshot().Character
	fmt.Printf("Level %d, %d xp, %d credits | fatigue %d fitness %d focus %d clarity %d\n",
		p.Level, p.XP, p.Currency,
		p.State.Fatigue.Value, p.State.Fitness.Value, p.State.Focus.Value, p.State.MentalClarity.Value)
	return nil
}
