package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/logging"
	"github.com/Iron-Ham/fitsched/internal/schedule"
)

// Run starts the interactive menu program and blocks until the user quits.
func Run(cfg *config.Config, creds credential.Store, sessions schedule.Store, logger *logging.Logger) error {
	p := tea.NewProgram(New(cfg, creds, sessions, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
