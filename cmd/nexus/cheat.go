package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cheatCmd = &cobra.Command{
	Use:    "cheat",
	Short:  "Developer cheats",
	Hidden: true,
}

var cheatStatCmd = &cobra.Command{
	Use:   "stat [strength|intelligence|spirit|hp] [delta]",
	Short: "Adjust a base attribute",
	Long: `Base attributes are fixed at creation; this is the one sanctioned way
to change them afterwards.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheatStat,
}

var cheatResetQuestsCmd = &cobra.Command{
	Use:   "reset-quests",
	Short: "Reset all quest progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Preserved from the original cheat menu; never had backing logic.
		fmt.Println("Quest reset is not implemented.")
		return nil
	},
}

func init() {
	cheatCmd.AddCommand(cheatStatCmd)
	cheatCmd.AddCommand(cheatResetQuestsCmd)
}

func runCheatStat(cmd *cobra.Command, args []string) error {
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
	if !a.store.AdjustAttribute(args[0], delta) {
		return fmt.Errorf("unknown attribute %q", args[0])
	}

	p := a.store.Snapshot().Character
	fmt.Printf("str %d  int %d  spirit %d  hp %d\n",
		p.Attributes.Strength.Value, p.Attributes.Intelligence.Value,
		p.Attributes.Spirit.Value, p.Attributes.HP)
	return nil
}
