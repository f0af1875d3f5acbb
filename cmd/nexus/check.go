package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nexuschronicles/internal/stats"
	"nexuschronicles/internal/store"
)

var checkDifficulty string

var checkCmd = &cobra.Command{
	Use:   "check [str|int] [target]",
	Short: "Roll an attribute check against a target number",
	Long: `Compares the effective attribute against a target under the configured
difficulty. Story-only auto-succeeds; easy shifts the comparison by +1, hard
by -1, ultimate by -2.

A character bearing the Feedback Loop curse takes self-damage on failure,
applied as fatigue.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDifficulty, "difficulty", "", "Override the configured difficulty for this check")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	target, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("target must be an integer: %w", err)
	}

	var effective int
	switch args[0] {
	case "str", "strength":
		effective = stats.EffectiveStrength(p)
	case "int", "intelligence":
		effective = stats.EffectiveIntelligence(p)
	default:
		return fmt.Errorf("checkable attributes are str and int, not %q", args[0])
	}

	difficulty := a.cfg.Game.DifficultyValue()
	if checkDifficulty != "" {
		difficulty = stats.Difficulty(checkDifficulty)
		if !difficulty.Valid() {
			return fmt.Errorf("unknown difficulty %q", checkDifficulty)
		}
	}

	if stats.CheckAttribute(effective, target, difficulty) {
		fmt.Printf("Success: %s %d vs target %d (%s)\n", args[0], effective, target, difficulty)
		return nil
	}

	fmt.Printf("Failure: %s %d vs target %d (%s)\n", args[0], effective, target, difficulty)
	if dmg := stats.FeedbackDamage(p); dmg > 0 {
		a.store.UpdateCharacterStats(store.StatDeltas{Fatigue: dmg})
		fmt.Printf("Feedback Loop bites back: +%d fatigue\n", dmg)
	}
	return nil
}
