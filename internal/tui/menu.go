package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fitsched/internal/credential"
)

// menuItem is one selectable menu entry.
type menuItem struct {
	label string
	run   func(Model) (tea.Model, tea.Cmd)
}

// menuItems returns the entries for the currently active menu.
func (m Model) menuItems() []menuItem {
	switch m.screen {
	case screenCoach:
		return coachMenu
	case screenClient:
		return clientMenu
	default:
		return mainMenu
	}
}

// menuTitle returns the heading for the currently active menu.
func (m Model) menuTitle() string {
	switch m.screen {
	case screenCoach:
		return "Coach Menu — " + m.user.Username
	case screenClient:
		return "Client Menu — " + m.user.Username
	default:
		return "FitSched"
	}
}

var mainMenu = []menuItem{
	{"Login", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newLoginForm()), nil
	}},
	{"Register", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newRegisterForm()), nil
	}},
	{"Quit", func(m Model) (tea.Model, tea.Cmd) {
		m.quitting = true
		return m, tea.Quit
	}},
}

var coachMenu = []menuItem{
	{"Schedule New Session", func(m Model) (tea.Model, tea.Cmd) {
		return m.openScheduleForm()
	}},
	{"View My Sessions", func(m Model) (tea.Model, tea.Cmd) {
		return m.showSessions(credential.RoleCoach), nil
	}},
	{"Generate/Refresh Session Link", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newRefreshLinkForm()), nil
	}},
	{"Edit Session", func(m Model) (tea.Model, tea.Cmd) {
		return m.openEditForm()
	}},
	{"Cancel Session", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newCancelForm()), nil
	}},
	{"Mark Session Completed", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newCompleteForm()), nil
	}},
	{"Add Session Notes", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newNotesForm()), nil
	}},
	{"Logout", func(m Model) (tea.Model, tea.Cmd) {
		return m.logout(), nil
	}},
}

var clientMenu = []menuItem{
	{"View My Sessions", func(m Model) (tea.Model, tea.Cmd) {
		return m.showSessions(credential.RoleClient), nil
	}},
	{"Join Session", func(m Model) (tea.Model, tea.Cmd) {
		return m.openForm(newJoinForm()), nil
	}},
	{"Logout", func(m Model) (tea.Model, tea.Cmd) {
		return m.logout(), nil
	}},
}

// showSessions loads the user's sessions and switches to the list view.
func (m Model) showSessions(role credential.Role) Model {
	m.clearStatus()

	sessions, err := m.sessions.ListFor(m.user.Username, role)
	if err != nil {
		m.setStatus(userMessage(m.logger, err), true)
		return m
	}

	m.list = sessions
	m.listBack = m.screen
	m.screen = screenSessions
	return m
}
