package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexuschronicles/internal/achievement"
)

var achievementsAll bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements",
	Long: `Lists the achievement catalog with unlock state. Spoiler achievements
stay hidden until unlocked unless --all is given.`,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&achievementsAll, "all", false, "Show spoiler achievements too")
}

func runAchievements(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap := a.store.Snapshot()
	unlocked := map[string]bool{}
	for _, id := range snap.UnlockedAchievements {
		unlocked[id] = true
	}

	shown, total := 0, 0
	for _, ach := range achievement.Catalog() {
		total++
		if ach.IsSpoiler && !unlocked[ach.ID] && !achievementsAll {
			continue
		}
		shown++
		marker := " "
		if unlocked[ach.ID] {
			marker = "x"
		}
		fmt.Printf("[%s] %s %-18s %s\n", marker, ach.Icon.Glyph(), ach.Name, ach.Description)
	}
	if shown < total {
		fmt.Printf("(%d hidden; use --all to reveal)\n", total-shown)
	}
	fmt.Printf("%d/%d unlocked\n", len(snap.UnlockedAchievements), total)
	return nil
}
