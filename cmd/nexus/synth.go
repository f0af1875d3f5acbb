package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nexuschronicles/internal/logging"
	"nexuschronicles/internal/synthesis"
)

var synthCmd = &cobra.Command{
	Use:   "synth [concept...]",
	Short: "Match a free-text concept against the preset catalog",
	Long: `Scores the concept's keywords against every preset and prints the best
match. Useful for previewing what 'character create --concept' would pick.

Example:
  nexus synth grizzled veteran pirate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSynth,
}

func runSynth(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	concept := strings.Join(args, " ")
	matched := synthesis.New(a.catalog.Presets).Synthesize(concept)
	logging.Get(logging.CategorySynthesis).Info("concept %q matched %q", concept, matched.Name)

	fmt.Printf("Matched: %s\n", matched.Name)
	fmt.Printf("  Age %d, %s, style: %s\n", matched.Age, matched.Gender, matched.Style)
	fmt.Printf("  %s\n", matched.Backstory)
	return nil
}
