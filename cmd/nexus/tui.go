package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"nexuschronicles/cmd/nexus/ui"
	"nexuschronicles/internal/logging"
)

// runSheetUI launches the interactive character sheet.
func runSheetUI() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	logging.Get(logging.CategoryUI).Info("sheet UI starting")
	model := ui.NewSheetModel(a.store, ui.DefaultStyles())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}

	// A full tour of the sheet counts as onboarding.
	if a.store.Snapshot().Character != nil && !a.store.TutorialCompleted() {
		a.store.MarkTutorialComplete()
	}
	return nil
}
