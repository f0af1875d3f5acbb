package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nexuschronicles/internal/game"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Accept and advance quests",
}

var questListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your quests",
	RunE:  runQuestList,
}

var questAddCmd = &cobra.Command{
	Use:   "add [template-id]",
	Short: "Accept a quest from the catalog",
	Long: `Accepts a quest by template id. A quest can be active at most once;
accepting the same template again is a no-op. Run without arguments to see
the available templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuestAdd,
}

var questProgressCmd = &cobra.Command{
	Use:   "progress [quest-id] [delta]",
	Short: "Advance a quest's progress",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuestProgress,
}

func init() {
	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questAddCmd)
	questCmd.AddCommand(questProgressCmd)
}

func runQuestList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.requireCharacter()
	if err != nil {
		return err
	}
	if len(snap.Quests) == 0 {
		fmt.Println("No quests. Accept one with 'nexus quest add'.")
		return nil
	}

	for _, q := range snap.Quests {
		marker := " "
		if q.Status == game.QuestCompleted {
			marker = "x"
		}
		fmt.Printf("[%s] %-30s %3d%%  (%s)\n", marker, q.Title, q.Progress, q.ID)
	}
	return nil
}

func runQuestAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.requireCharacter(); err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println("Available quests:")
		for _, tpl := range a.catalog.Quests {
			fmt.Printf("  %-28s %s\n", tpl.ID, tpl.Title)
		}
		return nil
	}

	q, ok := a.catalog.SpawnQuest(args[0])
	if !ok {
		return fmt.Errorf("unknown quest template %q", args[0])
	}
	if !a.store.AddQuest(q) {
		fmt.Printf("Quest %q is already in your log.\n", q.Title)
		return nil
	}
	fmt.Printf("Accepted: %s\n", q.Title)
	if q.MoralChoice != "" {
		fmt.Printf("  %s\n", q.MoralChoice)
	}
	return nil
}

func runQuestProgress(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.requireCharacter(); err != nil {
		return err
	}

	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be an integer: %w", err)
	}

	if !a.store.UpdateQuestProgress(args[0], delta) {
		return fmt.Errorf("no quest with id %q in your log", args[0])
	}

	for _, q := range a.store.Snapshot().Quests {
		if q.ID == args[0] {
			if q.Status == game.QuestCompleted {
				fmt.Printf("Quest complete: %s\n", q.Title)
				if q.Outcomes != "" {
					fmt.Printf("  %s\n", q.Outcomes)
				}
			} else {
				fmt.Printf("%s: %d%%\n", q.Title, q.Progress)
			}
			return nil
		}
	}
	return nil
}
