// Package tui implements the interactive menu program. It is a thin shell:
// every menu action maps to one store operation, and every store error is
// rendered as a message line while the menu loop keeps running.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/logging"
	"github.com/Iron-Ham/fitsched/internal/schedule"
)

// screen identifies which view the model is showing.
type screen int

const (
	screenMain screen = iota
	screenCoach
	screenClient
	screenForm
	screenSessions
)

// Model is the bubbletea model for the whole program.
type Model struct {
	cfg      *config.Config
	creds    credential.Store
	sessions schedule.Store
	logger   *logging.Logger
	now      func() time.Time

	screen screen
	cursor int

	// user is the logged-in account; zero value until login succeeds.
	user credential.User

	// form is non-nil while screenForm is active.
	form *form

	// list holds the sessions shown by screenSessions, and listBack the
	// menu to return to.
	list     []schedule.Session
	listBack screen

	// status is the feedback line shown under the current view.
	status    string
	statusErr bool

	width    int
	quitting bool
}

// New creates the program model.
func New(cfg *config.Config, creds credential.Store, sessions schedule.Store, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Model{
		cfg:      cfg,
		creds:    creds,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		screen:   screenMain,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.screen {
		case screenMain, screenCoach, screenClient:
			return m.updateMenu(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenSessions:
			// Any key returns to the owning menu.
			m.screen = m.listBack
			m.cursor = 0
			return m, nil
		}
	}

	return m, nil
}

// updateMenu handles key input on the three menus.
func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		return items[m.cursor].run(m)
	case "q", "esc":
		if m.screen == screenMain {
			m.quitting = true
			return m, tea.Quit
		}
		// Logout from a role menu.
		return m.logout(), nil
	}

	return m, nil
}

// logout clears the session state and returns to the main menu.
func (m Model) logout() Model {
	m.logger.Info("user logged out", "username", m.user.Username)
	m.user = credential.User{}
	m.screen = screenMain
	m.cursor = 0
	m.clearStatus()
	return m
}

// setStatus records the feedback line shown under the next view.
func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
