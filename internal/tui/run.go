package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard on the terminal and blocks until it exits.
func Run(cfg Config, out io.Writer) error {
	final, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	if m, ok := final.(Model); ok && m.ExitMessage() != "" {
		fmt.Fprintln(out, m.ExitMessage())
	}
	return nil
}
