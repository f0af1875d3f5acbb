package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nexuschronicles/internal/achievement"
	"nexuschronicles/internal/game"
	"nexuschronicles/internal/stats"
	"nexuschronicles/internal/store"
)

// Tabs of the interactive sheet.
const (
	tabSheet = iota
	tabInventory
	tabQuests
	tabAchievements
	tabCount
)

var tabNames = [tabCount]string{"Sheet", "Inventory", "Quests", "Achievements"}

// SheetModel is the root bubbletea model for the interactive character sheet.
// It reads snapshots from the store and never mutates game state.
type SheetModel struct {
	store    *store.Store
	styles   Styles
	viewport viewport.Model
	snap     store.Aggregate
	tab      int
	width    int
	height   int
	ready    bool
}

// NewSheetModel creates the sheet over a hydrated store.
func NewSheetModel(st *store.Store, styles Styles) SheetModel {
	return SheetModel{
		store:  st,
		styles: styles,
		snap:   st.Snapshot(),
	}
}

// Init implements tea.Model.
func (m SheetModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.refreshContent()
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.refreshContent()
			return m, nil
		case "r":
			m.snap = m.store.Snapshot()
			m.refreshContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m SheetModel) View() string {
	if !m.ready {
		return "loading..."
	}

	tabs := make([]string, tabCount)
	for i, name := range tabNames {
		if i == m.tab {
			tabs[i] = m.styles.ActiveTab.Render(name)
		} else {
			tabs[i] = m.styles.Tab.Render(name)
		}
	}

	header := m.styles.Header.Width(m.width).Render("Nexus Chronicles")
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	footer := m.styles.Footer.Render("tab/←→ switch · r refresh · q quit")

	return strings.Join([]string{header, tabBar, m.viewport.View(), footer}, "\n")
}

func (m *SheetModel) refreshContent() {
	if m.snap.Character == nil {
		m.viewport.SetContent(m.styles.Muted.Render(
			"No character yet.\n\nRun 'nexus character create --name <name>' first."))
		return
	}

	switch m.tab {
	case tabSheet:
		m.viewport.SetContent(m.renderSheet())
	case tabInventory:
		m.viewport.SetContent(m.renderInventory())
	case tabQuests:
		m.viewport.SetContent(m.renderQuests())
	case tabAchievements:
		m.viewport.SetContent(m.renderAchievements())
	}
}

func (m *SheetModel) renderSheet() string {
	p := m.snap.Character
	derived := stats.Calculate(p)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%s  ·  level %d  ·  %d xp", p.Name, p.Level, p.XP)))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render("Attributes"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Strength      %3d   effective %s\n",
		p.Attributes.Strength.Value, m.effectiveStyle(derived.EffectiveStrength, p.Attributes.Strength.Value)))
	sb.WriteString(fmt.Sprintf("  Intelligence  %3d   effective %s\n",
		p.Attributes.Intelligence.Value, m.effectiveStyle(derived.EffectiveIntelligence, p.Attributes.Intelligence.Value)))
	sb.WriteString(fmt.Sprintf("  Spirit        %3d\n", p.Attributes.Spirit.Value))
	sb.WriteString(fmt.Sprintf("  Max HP        %3d   crit %d%%\n", derived.MaxHP, derived.CritChance))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Bold.Render("Condition"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Fatigue  %s\n", meter(p.State.Fatigue.Value)))
	sb.WriteString(fmt.Sprintf("  Fitness  %s\n", meter(p.State.Fitness.Value)))
	sb.WriteString(fmt.Sprintf("  Focus    %s\n", meter(p.State.Focus.Value)))
	sb.WriteString(fmt.Sprintf("  Clarity  %s\n", meter(p.State.MentalClarity.Value)))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Bold.Render("Wealth"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Credits %d", p.Currency))
	for name, v := range p.AltCurrencies {
		if v > 0 {
			sb.WriteString(fmt.Sprintf("  ·  %s %d", name, v))
		}
	}
	sb.WriteString("\n")

	if len(p.Enhancements.Cybernetics) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Bold.Render("Cybernetics"))
		sb.WriteString("\n  " + strings.Join(p.Enhancements.Cybernetics, ", ") + "\n")
	}
	if len(p.Enhancements.Curses) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Negative.Render("Curses"))
		sb.WriteString("\n  " + strings.Join(p.Enhancements.Curses, ", ") + "\n")
		if chance := stats.TurnForfeitChance(p); chance > 0 {
			sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("  %d%% chance to forfeit a combat turn\n", chance)))
		}
	}
	return sb.String()
}

// effectiveStyle colors the effective value against its base.
func (m *SheetModel) effectiveStyle(effective, base int) string {
	s := fmt.Sprintf("%d", effective)
	switch {
	case effective > base:
		return m.styles.Positive.Render(s)
	case effective < base:
		return m.styles.Negative.Render(s)
	default:
		return s
	}
}

func (m *SheetModel) renderInventory() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(
		fmt.Sprintf("Inventory %d/%d", len(m.snap.Inventory), m.snap.Character.InventorySlots)))
	sb.WriteString("\n\n")

	if len(m.snap.Inventory) == 0 {
		sb.WriteString(m.styles.Muted.Render("Empty. Scavenge something."))
		return sb.String()
	}
	for _, item := range m.snap.Inventory {
		sb.WriteString(fmt.Sprintf("  %-22s %-12s %5dc\n", item.Name, item.Type, item.Value))
		if item.Description != "" {
			sb.WriteString(m.styles.Muted.Render("    "+item.Description) + "\n")
		}
	}
	return sb.String()
}

func (m *SheetModel) renderQuests() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Quest Log"))
	sb.WriteString("\n\n")

	if len(m.snap.Quests) == 0 {
		sb.WriteString(m.styles.Muted.Render("No quests accepted."))
		return sb.String()
	}
	for _, q := range m.snap.Quests {
		if q.Status == game.QuestCompleted {
			sb.WriteString(m.styles.Positive.Render("✓ ") + m.styles.Bold.Render(q.Title) + "\n")
		} else {
			sb.WriteString("  " + m.styles.Bold.Render(q.Title) + "\n")
			sb.WriteString(fmt.Sprintf("  %s\n", meter(q.Progress)))
		}
		if q.Description != "" {
			sb.WriteString(m.styles.Muted.Render("  "+q.Description) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *SheetModel) renderAchievements() string {
	unlocked := map[string]bool{}
	for _, id := range m.snap.UnlockedAchievements {
		unlocked[id] = true
	}

	var sb strings.Builder
	catalog := achievement.Catalog()
	sb.WriteString(m.styles.Title.Render(
		fmt.Sprintf("Achievements %d/%d", len(m.snap.UnlockedAchievements), len(catalog))))
	sb.WriteString("\n\n")

	hidden := 0
	for _, a := range catalog {
		if a.IsSpoiler && !unlocked[a.ID] {
			hidden++
			continue
		}
		line := fmt.Sprintf("%s %-18s %s", a.Icon.Glyph(), a.Name, a.Description)
		if unlocked[a.ID] {
			sb.WriteString(m.styles.Positive.Render("✓ ") + line + "\n")
		} else {
			sb.WriteString(m.styles.Muted.Render("  "+line) + "\n")
		}
	}
	if hidden > 0 {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("\n%d hidden achievements", hidden)))
	}
	return sb.String()
}

// meter renders a 20-cell bar for a [0,100] value.
func meter(v int) string {
	filled := v / 5
	if filled > 20 {
		filled = 20
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("[%s%s] %3d", strings.Repeat("█", filled), strings.Repeat("░", 20-filled), v)
}
