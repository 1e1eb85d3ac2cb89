package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanlens/scanlens/internal/types"
)

// Run opens the interactive browser over a finished scan result and
// blocks until the user quits.
func Run(res *types.ScanResult) error {
	m := NewModel(res)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
