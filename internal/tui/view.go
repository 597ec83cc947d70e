package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/fitsched/internal/schedule"
	"github.com/Iron-Ham/fitsched/internal/tui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenForm:
		body = m.viewForm()
	case screenSessions:
		body = m.viewSessions()
	default:
		body = m.viewMenu()
	}

	var b strings.Builder
	b.WriteString(body)

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(styles.Error.Render(m.status))
		} else {
			b.WriteString(styles.Secondary.Render(m.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// viewMenu renders the active menu with a cursor.
func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.menuTitle()))
	b.WriteString("\n\n")

	for i, item := range m.menuItems() {
		if i == m.cursor {
			b.WriteString(styles.MenuCursor.Render("> "))
			b.WriteString(styles.MenuItem.Render(item.label))
		} else {
			b.WriteString("  ")
			b.WriteString(styles.MenuItemDim.Render(item.label))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Help.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}

// viewForm renders the active form's labeled inputs.
func (m Model) viewForm() string {
	f := m.form

	var b strings.Builder
	b.WriteString(styles.Title.Render(f.title))
	b.WriteString("\n\n")

	if f.hint != "" {
		b.WriteString(styles.Muted.Render(f.hint))
		b.WriteString("\n\n")
	}

	for i := range f.fields {
		label := styles.Muted.Render(f.labels[i] + ":")
		b.WriteString(fmt.Sprintf("%s\n%s\n", label, f.fields[i].View()))
	}

	b.WriteString(styles.Help.Render("enter next/submit · tab move · esc back"))
	return b.String()
}

// viewSessions renders the loaded session list.
func (m Model) viewSessions() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("My Sessions"))
	b.WriteString("\n\n")
	b.WriteString(renderSessions(m.list))
	b.WriteString(styles.Help.Render("any key to go back"))
	return b.String()
}

// renderSessions formats sessions one block per record, in store order.
func renderSessions(sessions []schedule.Session) string {
	if len(sessions) == 0 {
		return styles.Muted.Render("No sessions found.") + "\n\n"
	}

	var b strings.Builder
	for _, s := range sessions {
		b.WriteString(styles.Text.Render(fmt.Sprintf("ID: %s", s.ID)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Coach: %s | Client: %s\n", s.Coach, s.Client))
		b.WriteString(fmt.Sprintf("When: %s %s | Status: %s\n", s.Date, s.Time, renderStatus(s.Status)))
		b.WriteString(styles.Muted.Render("Link: " + s.Link))
		b.WriteString("\n")
		if s.Notes != "" {
			b.WriteString(fmt.Sprintf("Notes: %s\n", s.Notes))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus colors a lifecycle state.
func renderStatus(status schedule.Status) string {
	switch status {
	case schedule.StatusScheduled:
		return styles.StatusScheduled.Render(string(status))
	case schedule.StatusCanceled:
		return styles.StatusCanceled.Render(string(status))
	case schedule.StatusCompleted:
		return styles.StatusCompleted.Render(string(status))
	default:
		return string(status)
	}
}
