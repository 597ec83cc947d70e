package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a sequence of labeled text inputs ending in one store operation.
// Submit receives the live model so it can read the logged-in user and
// mutate login state; it returns the success message and the screen to show
// next.
type form struct {
	title string
	// hint is an optional helper line shown between the title and the fields.
	hint   string
	labels []string
	fields []textinput.Model
	focus  int
	submit func(m *Model, values []string) (string, screen, error)
	// back is where esc cancels to.
	back screen
}

// newForm builds a form with one text input per label.
func newForm(title string, back screen, labels ...string) *form {
	fields := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.CharLimit = 128
		if i == 0 {
			ti.Focus()
		}
		fields[i] = ti
	}
	return &form{
		title:  title,
		labels: labels,
		fields: fields,
		back:   back,
	}
}

// values returns the trimmed field contents in label order.
func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i := range f.fields {
		out[i] = strings.TrimSpace(f.fields[i].Value())
	}
	return out
}

// setFocus moves input focus to the field at index i.
func (f *form) setFocus(i int) {
	for j := range f.fields {
		if j == i {
			f.fields[j].Focus()
		} else {
			f.fields[j].Blur()
		}
	}
	f.focus = i
}

// openForm switches the model to the given form.
func (m Model) openForm(f *form) Model {
	m.clearStatus()
	m.form = f
	m.screen = screenForm
	return m
}

// closeForm returns to the screen the form was opened from.
func (m Model) closeForm(next screen) Model {
	m.form = nil
	m.screen = next
	m.cursor = 0
	return m
}

// updateForm handles key input while a form is active.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		return m.closeForm(f.back), nil

	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.fields))
		return m, nil

	case "shift+tab", "up":
		f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields))
		return m, nil

	case "enter":
		// Enter advances through the fields and submits on the last one.
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return m, nil
		}

		message, next, err := f.submit(&m, f.values())
		if err != nil {
			m = m.closeForm(f.back)
			m.setStatus(userMessage(m.logger, err), true)
			return m, nil
		}
		m = m.closeForm(next)
		m.setStatus(message, false)
		return m, nil
	}

	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return m, cmd
}
