package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/errors"
	"github.com/Iron-Ham/fitsched/internal/schedule"
	"github.com/Iron-Ham/fitsched/internal/testutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	_, usersPath, sessionsPath := testutil.DataDir(t)
	cfg := config.Default()
	creds := credential.NewFileStore(usersPath, nil)
	sessions := schedule.NewFileStore(sessionsPath, creds, cfg.Link, nil)
	return New(cfg, creds, sessions, nil)
}

// send runs one Update and returns the resulting Model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func keyPress(t *testing.T, m Model, key string) Model {
	t.Helper()

	switch key {
	case "enter":
		return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "down":
		return send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	default:
		return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// fillForm types one value per field, pressing enter between fields and once
// more at the end to submit.
func fillForm(t *testing.T, m Model, values ...string) Model {
	t.Helper()

	for i, v := range values {
		if v != "" {
			m = typeString(t, m, v)
		}
		if i < len(values)-1 {
			m = keyPress(t, m, "enter")
		}
	}
	return keyPress(t, m, "enter")
}

func registerUser(t *testing.T, m Model, username, password, role, email string) Model {
	t.Helper()

	// Main menu: Login, Register, Quit.
	m = keyPress(t, m, "down")
	m = keyPress(t, m, "enter")
	if m.screen != screenForm {
		t.Fatalf("screen = %v after selecting Register, want form", m.screen)
	}
	return fillForm(t, m, username, password, role, email)
}

func login(t *testing.T, m Model, username, password string) Model {
	t.Helper()

	m = keyPress(t, m, "enter") // Login is the first entry
	return fillForm(t, m, username, password)
}

func TestRegisterThenLoginFlow(t *testing.T) {
	m := newTestModel(t)

	m = registerUser(t, m, "huda", "pw", "coach", "huda@gym.io")
	if m.statusErr {
		t.Fatalf("register failed: %s", m.status)
	}
	if m.screen != screenMain {
		t.Fatalf("screen = %v after register, want main menu", m.screen)
	}

	m = login(t, m, "huda", "pw")
	if m.statusErr {
		t.Fatalf("login failed: %s", m.status)
	}
	if m.screen != screenCoach {
		t.Errorf("screen = %v after coach login, want coach menu", m.screen)
	}
	if m.user.Username != "huda" {
		t.Errorf("user = %q, want huda", m.user.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "john", "456", "client", "john@gmail.com")

	m = login(t, m, "john", "wrong")
	if !m.statusErr {
		t.Fatal("login with wrong password did not surface an error")
	}
	if !strings.Contains(m.status, "invalid username or password") {
		t.Errorf("status = %q, want invalid credentials message", m.status)
	}
	if m.screen != screenMain {
		t.Errorf("screen = %v after failed login, want main menu (loop continues)", m.screen)
	}
}

func TestDuplicateRegisterSurfacesError(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "john", "456", "client", "john@gmail.com")
	m = registerUser(t, m, "john", "other", "client", "j2@gmail.com")

	if !m.statusErr {
		t.Fatal("duplicate register did not surface an error")
	}
	if !strings.Contains(m.status, "already registered") {
		t.Errorf("status = %q, want duplicate user message", m.status)
	}
}

func TestScheduleSessionFlow(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "huda", "pw", "coach", "huda@gym.io")
	m = registerUser(t, m, "john", "456", "client", "john@gmail.com")
	m = login(t, m, "huda", "pw")

	// Coach menu: Schedule New Session is the first entry.
	m = keyPress(t, m, "enter")
	if m.screen != screenForm {
		t.Fatalf("screen = %v, want schedule form", m.screen)
	}

	future := time.Now().Add(48 * time.Hour)
	m = fillForm(t, m, "john", future.Format(schedule.DateLayout), "10:00")
	if m.statusErr {
		t.Fatalf("schedule failed: %s", m.status)
	}
	if !strings.Contains(m.status, "https://meet.jit.si/FitnessSession_") {
		t.Errorf("status = %q, want the join link", m.status)
	}

	sessions, err := m.sessions.ListFor("huda", credential.RoleCoach)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
}

func TestScheduleFormListsKnownClients(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "huda", "pw", "coach", "huda@gym.io")
	m = registerUser(t, m, "john", "456", "client", "john@gmail.com")
	m = registerUser(t, m, "amy", "pw", "client", "amy@gmail.com")
	m = login(t, m, "huda", "pw")

	m = keyPress(t, m, "enter") // Schedule New Session
	if m.screen != screenForm {
		t.Fatalf("screen = %v, want schedule form", m.screen)
	}
	if !strings.Contains(m.View(), "Known clients: john, amy") {
		t.Errorf("schedule form missing client roster in:\n%s", m.View())
	}
}

func TestScheduleBlockedWithoutClients(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "huda", "pw", "coach", "huda@gym.io")
	m = login(t, m, "huda", "pw")

	m = keyPress(t, m, "enter") // Schedule New Session
	if m.screen != screenCoach {
		t.Fatalf("screen = %v, want coach menu (form not opened)", m.screen)
	}
	if !m.statusErr || !strings.Contains(m.status, "No clients found") {
		t.Errorf("status = %q (err=%v), want no-clients message", m.status, m.statusErr)
	}
}

func TestEditFormListsKnownClients(t *testing.T) {
	m := newTestModel(t)
	m = registerUser(t, m, "huda", "pw", "coach", "huda@gym.io")
	m = registerUser(t, m, "john", "456", "client", "john@gmail.com")
	m = login(t, m, "huda", "pw")

	// Coach menu: Schedule, View, Generate/Refresh, Edit.
	for i := 0; i < 3; i++ {
		m = keyPress(t, m, "down")
	}
	m = keyPress(t, m, "enter")
	if m.screen != screenForm {
		t.Fatalf("screen = %v, want edit form", m.screen)
	}
	if m.form.title != "Edit Session" {
		t.Fatalf("form = %q, want Edit Session", m.form.title)
	}
	if !strings.Contains(m.View(), "Known clients: john") {
		t.Errorf("edit form missing client roster in:\n%s", m.View())
	}
}

func TestEscCancelsForm(t *testing.T) {
	m := newTestModel(t)

	m = keyPress(t, m, "enter") // open login form
	if m.screen != screenForm {
		t.Fatalf("screen = %v, want form", m.screen)
	}

	m = keyPress(t, m, "esc")
	if m.screen != screenMain {
		t.Errorf("screen = %v after esc, want main menu", m.screen)
	}
	if m.form != nil {
		t.Error("form still set after esc")
	}
}

func TestValidateFuture(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		date      string
		timeOfDay string
		wantErr   bool
	}{
		{"future", "2025-08-27", "23:23", false},
		{"later same day", "2025-08-26", "12:01", false},
		{"past day", "2025-08-25", "12:00", true},
		{"earlier same day", "2025-08-26", "11:59", true},
		{"bad date", "26-08-2025", "12:00", true},
		{"bad time", "2025-08-27", "noon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFuture(tt.date, tt.timeOfDay, now)
			if tt.wantErr && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("validateFuture() error = %v, want ErrInvalidInput", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateFuture() error = %v", err)
			}
		})
	}
}

func TestRenderSessions(t *testing.T) {
	out := renderSessions(nil)
	if !strings.Contains(out, "No sessions found.") {
		t.Errorf("empty render = %q, want placeholder", out)
	}

	sessions := []schedule.Session{
		{
			ID: "20250826110956JF8FQY", Coach: "huda", Client: "john",
			Date: "2025-08-27", Time: "23:23",
			Link:   "https://meet.jit.si/FitnessSession_20250826111414A9XCHS",
			Status: schedule.StatusScheduled, Notes: "knee rehab",
		},
	}
	out = renderSessions(sessions)

	for _, want := range []string{
		"20250826110956JF8FQY",
		"Coach: huda | Client: john",
		"2025-08-27 23:23",
		"https://meet.jit.si/FitnessSession_20250826111414A9XCHS",
		"Notes: knee rehab",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderSessions() missing %q in:\n%s", want, out)
		}
	}
}

func TestUserMessageHidesInternalErrors(t *testing.T) {
	if got := userMessage(nil, errors.ErrDuplicateUser); !strings.Contains(got, "already registered") {
		t.Errorf("userMessage(sentinel) = %q", got)
	}
	if got := userMessage(nil, errors.New("open /x: permission denied")); strings.Contains(got, "permission denied") {
		t.Errorf("userMessage(internal) leaked details: %q", got)
	}
}
