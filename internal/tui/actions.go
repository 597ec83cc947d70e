package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/errors"
	"github.com/Iron-Ham/fitsched/internal/logging"
	"github.com/Iron-Ham/fitsched/internal/schedule"
)

func newLoginForm() *form {
	f := newForm("Login", screenMain, "Username", "Password")
	f.fields[1].EchoMode = textinput.EchoPassword

	f.submit = func(m *Model, values []string) (string, screen, error) {
		user, err := m.creds.Authenticate(values[0], values[1])
		if err != nil {
			return "", 0, err
		}

		m.user = user
		m.logger.Info("user logged in", "username", user.Username, "role", string(user.Role))

		next := screenClient
		if user.Role == credential.RoleCoach {
			next = screenCoach
		}
		return fmt.Sprintf("Welcome, %s! You are logged in as %s.", user.Username, user.Role), next, nil
	}
	return f
}

func newRegisterForm() *form {
	f := newForm("Register New User", screenMain, "Username", "Password", "Role (coach or client)", "Email")
	f.fields[1].EchoMode = textinput.EchoPassword

	f.submit = func(m *Model, values []string) (string, screen, error) {
		role, err := credential.ParseRole(values[2])
		if err != nil {
			return "", 0, err
		}

		user := credential.User{
			Username: values[0],
			Password: values[1],
			Role:     role,
			Email:    values[3],
		}
		if err := m.creds.Register(user); err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("User %q registered successfully as %s!", user.Username, role), screenMain, nil
	}
	return f
}

// openScheduleForm lists the registered clients before prompting, matching
// what a coach needs to fill the client field. With no clients registered
// there is nobody to schedule for, so the form is not opened.
func (m Model) openScheduleForm() (tea.Model, tea.Cmd) {
	clients, err := m.creds.ListByRole(credential.RoleClient)
	if err != nil {
		m.setStatus(userMessage(m.logger, err), true)
		return m, nil
	}
	if len(clients) == 0 {
		m.setStatus("No clients found. Ask your clients to register first.", true)
		return m, nil
	}

	f := newScheduleForm()
	f.hint = "Known clients: " + joinUsernames(clients)
	return m.openForm(f), nil
}

// openEditForm shows the same client roster; the client field may be left
// blank, so an empty roster does not block the form.
func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	f := newEditForm()
	if clients, err := m.creds.ListByRole(credential.RoleClient); err == nil && len(clients) > 0 {
		f.hint = "Known clients: " + joinUsernames(clients)
	}
	return m.openForm(f), nil
}

func joinUsernames(users []credential.User) string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return strings.Join(names, ", ")
}

func newScheduleForm() *form {
	f := newForm("Schedule New Session", screenCoach,
		"Client username", "Date (YYYY-MM-DD)", "Time (HH:MM, 24-hour)")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		client, date, timeOfDay := values[0], values[1], values[2]

		if err := validateFuture(date, timeOfDay, m.now()); err != nil {
			return "", 0, err
		}

		sess, err := m.sessions.Create(m.user.Username, client, date, timeOfDay)
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("Session created! ID: %s  Link: %s", sess.ID, sess.Link), screenCoach, nil
	}
	return f
}

func newRefreshLinkForm() *form {
	f := newForm("Generate/Refresh Session Link", screenCoach, "Session ID")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		link, err := m.sessions.RegenerateLink(values[0], m.user.Username)
		if err != nil {
			return "", 0, err
		}
		return "New link: " + link, screenCoach, nil
	}
	return f
}

func newEditForm() *form {
	f := newForm("Edit Session", screenCoach,
		"Session ID", "New client (blank to keep)", "New date (blank to keep)", "New time (blank to keep)")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		id := values[0]
		fields := schedule.EditFields{Client: values[1], Date: values[2], Time: values[3]}

		// Past-time check needs the merged date and time; the store only
		// validates formats.
		if fields.Date != "" || fields.Time != "" {
			current, err := m.sessions.Get(id)
			if err != nil {
				return "", 0, err
			}
			date, timeOfDay := current.Date, current.Time
			if fields.Date != "" {
				date = fields.Date
			}
			if fields.Time != "" {
				timeOfDay = fields.Time
			}
			if err := validateFuture(date, timeOfDay, m.now()); err != nil {
				return "", 0, err
			}
		}

		if err := m.sessions.Edit(id, fields, m.user.Username); err != nil {
			return "", 0, err
		}
		return "Session updated.", screenCoach, nil
	}
	return f
}

func newCancelForm() *form {
	f := newForm("Cancel Session", screenCoach, "Session ID")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		if err := m.sessions.UpdateStatus(values[0], schedule.StatusCanceled, m.user.Username); err != nil {
			return "", 0, err
		}
		return "Session canceled.", screenCoach, nil
	}
	return f
}

func newCompleteForm() *form {
	f := newForm("Mark Session Completed", screenCoach, "Session ID")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		if err := m.sessions.UpdateStatus(values[0], schedule.StatusCompleted, m.user.Username); err != nil {
			return "", 0, err
		}
		return "Session marked completed.", screenCoach, nil
	}
	return f
}

func newNotesForm() *form {
	f := newForm("Add Session Notes", screenCoach, "Session ID", "Note")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		if err := m.sessions.AppendNotes(values[0], values[1], m.user.Username); err != nil {
			return "", 0, err
		}
		return "Notes updated.", screenCoach, nil
	}
	return f
}

func newJoinForm() *form {
	f := newForm("Join Session", screenClient, "Session ID")

	f.submit = func(m *Model, values []string) (string, screen, error) {
		sess, err := m.sessions.Get(values[0])
		if err != nil {
			return "", 0, err
		}
		if sess.Client != m.user.Username {
			return "", 0, errors.NewScheduleError("not your session", errors.ErrNotSessionOwner).WithSessionID(sess.ID)
		}
		if sess.Status == schedule.StatusCanceled {
			return "", 0, errors.NewScheduleError("cannot join", errors.ErrSessionCanceled).WithSessionID(sess.ID)
		}
		return "Join link: " + sess.Link, screenClient, nil
	}
	return f
}

// validateFuture rejects a session time that is already in the past. Format
// errors are reported here too so the user is told before the store is hit.
func validateFuture(date, timeOfDay string, now time.Time) error {
	when, err := time.ParseInLocation(schedule.DateLayout+" "+schedule.TimeLayout, date+" "+timeOfDay, now.Location())
	if err != nil {
		return fmt.Errorf("%w: expected date %s and time %s", errors.ErrInvalidInput, schedule.DateLayout, schedule.TimeLayout)
	}
	if when.Before(now) {
		return fmt.Errorf("%w: that time is in the past", errors.ErrInvalidInput)
	}
	return nil
}

// userMessage renders an error for the feedback line. Store and schedule
// failures carry safe messages; anything else is logged and summarized.
func userMessage(logger *logging.Logger, err error) string {
	if errors.IsUserFacing(err) {
		return err.Error()
	}
	if logger != nil {
		logger.Error("operation failed", "error", err.Error())
	}
	return "Something went wrong; see debug.log for details."
}
