package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/errors"
	"github.com/Iron-Ham/fitsched/internal/flatfile"
	"github.com/Iron-Ham/fitsched/internal/logging"
)

// Date and time formats used by the store files.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// notesSeparator joins appended notes within the single notes field.
const notesSeparator = " | "

// Store is the session persistence interface. Mutating operations take an
// asCoach username; when non-empty, the operation fails with
// ErrNotSessionOwner unless that coach owns the session. An empty asCoach
// skips the ownership check (administrative callers such as the CLI utilities).
type Store interface {
	// Create validates both identities against the credential store,
	// generates the ID and link, and persists a scheduled session.
	Create(coach, client, date, timeOfDay string) (Session, error)

	// ListFor returns the sessions where the user appears in the field
	// matching their role. Re-reads the store on every call.
	ListFor(username string, role credential.Role) ([]Session, error)

	// Get returns the session with the given ID, or ErrSessionNotFound.
	Get(id string) (Session, error)

	// UpdateStatus applies a lifecycle transition and persists.
	UpdateStatus(id string, to Status, asCoach string) error

	// Edit updates the given fields of a still-scheduled session.
	Edit(id string, fields EditFields, asCoach string) error

	// RegenerateLink replaces the meeting link of a still-scheduled session
	// and returns the new link.
	RegenerateLink(id string, asCoach string) (string, error)

	// AppendNotes appends a note to a still-scheduled session.
	AppendNotes(id string, note string, asCoach string) error
}

// FileStore keeps sessions in a comma-delimited flat file, rewriting the
// whole file on every mutation. Identity validation goes through the
// credential store.
type FileStore struct {
	path   string
	creds  credential.Store
	link   config.LinkConfig
	logger *logging.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore over the file at path. The file does not
// need to exist yet. The logger may be nil.
func NewFileStore(path string, creds credential.Store, link config.LinkConfig, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &FileStore{
		path:   path,
		creds:  creds,
		link:   link,
		logger: logger.WithStore(path),
	}
}

// loadAll parses every well-formed session record. Malformed lines are
// skipped with a warning; a later rewrite persists only the parsed records.
func (s *FileStore) loadAll() ([]Session, error) {
	records, err := flatfile.ReadAll(s.path)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(records))
	for i, record := range records {
		sess, err := sessionFromRecord(record)
		if err != nil {
			s.logger.Warn("skipping malformed session record", "record", i+1, "reason", err.Error())
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// saveAll rewrites the whole store.
func (s *FileStore) saveAll(sessions []Session) error {
	records := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		records = append(records, sess.record())
	}
	return flatfile.WriteAll(s.path, records)
}

// Create validates both identities, generates the ID and link, and appends a
// scheduled session.
func (s *FileStore) Create(coach, client, date, timeOfDay string) (Session, error) {
	if err := s.requireRole(coach, credential.RoleCoach); err != nil {
		return Session{}, err
	}
	if err := s.requireRole(client, credential.RoleClient); err != nil {
		return Session{}, err
	}
	if err := validateWhen(date, timeOfDay); err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:     NewID(),
		Coach:  coach,
		Client: client,
		Date:   date,
		Time:   timeOfDay,
		Link:   NewLink(s.link.BaseURL, s.link.RoomPrefix),
		Status: StatusScheduled,
		Notes:  "",
	}

	lock, err := flatfile.AcquireLock(s.path, s.logger)
	if err != nil {
		return Session{}, err
	}
	defer lock.Release()

	sessions, err := s.loadAll()
	if err != nil {
		return Session{}, err
	}

	sessions = append(sessions, sess)
	if err := s.saveAll(sessions); err != nil {
		return Session{}, err
	}

	s.logger.Info("session created",
		"session_id", sess.ID,
		"coach", coach,
		"client", client,
		"date", date,
		"time", timeOfDay,
	)
	return sess, nil
}

// ListFor returns the sessions where the user appears in the field matching
// their role.
func (s *FileStore) ListFor(username string, role credential.Role) ([]Session, error) {
	sessions, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	matched := make([]Session, 0, len(sessions))
	for _, sess := range sessions {
		switch role {
		case credential.RoleCoach:
			if sess.Coach == username {
				matched = append(matched, sess)
			}
		case credential.RoleClient:
			if sess.Client == username {
				matched = append(matched, sess)
			}
		}
	}
	return matched, nil
}

// Get returns the session with the given ID.
func (s *FileStore) Get(id string) (Session, error) {
	sessions, err := s.loadAll()
	if err != nil {
		return Session{}, err
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return Session{}, errors.NewScheduleError("no such session", errors.ErrSessionNotFound).WithSessionID(id)
}

// UpdateStatus applies a lifecycle transition.
func (s *FileStore) UpdateStatus(id string, to Status, asCoach string) error {
	err := s.mutate(id, asCoach, func(sess *Session) error {
		if !sess.Status.CanTransition(to) {
			return errors.NewScheduleError(
				fmt.Sprintf("cannot move from %q to %q", sess.Status, to),
				errors.ErrInvalidTransition,
			).WithSessionID(id)
		}
		sess.Status = to
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("session status updated", "session_id", id, "status", string(to))
	return nil
}

// Edit updates the given fields of a still-scheduled session. An empty field
// keeps the current value; a new client is validated against the credential
// store.
func (s *FileStore) Edit(id string, fields EditFields, asCoach string) error {
	if fields.Client != "" {
		if err := s.requireRole(fields.Client, credential.RoleClient); err != nil {
			return err
		}
	}

	return s.mutate(id, asCoach, func(sess *Session) error {
		if sess.Status != StatusScheduled {
			return errors.NewScheduleError("session can no longer be edited", errors.ErrImmutableSession).WithSessionID(id)
		}

		date := sess.Date
		timeOfDay := sess.Time
		if fields.Date != "" {
			date = fields.Date
		}
		if fields.Time != "" {
			timeOfDay = fields.Time
		}
		if err := validateWhen(date, timeOfDay); err != nil {
			return err
		}

		if fields.Client != "" {
			sess.Client = fields.Client
		}
		sess.Date = date
		sess.Time = timeOfDay
		return nil
	})
}

// RegenerateLink replaces the meeting link of a still-scheduled session.
func (s *FileStore) RegenerateLink(id string, asCoach string) (string, error) {
	var newLink string
	err := s.mutate(id, asCoach, func(sess *Session) error {
		if sess.Status != StatusScheduled {
			return errors.NewScheduleError("session can no longer be modified", errors.ErrImmutableSession).WithSessionID(id)
		}
		newLink = NewLink(s.link.BaseURL, s.link.RoomPrefix)
		sess.Link = newLink
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("session link regenerated", "session_id", id)
	return newLink, nil
}

// AppendNotes appends a note to a still-scheduled session, joining multiple
// notes with " | ".
func (s *FileStore) AppendNotes(id string, note string, asCoach string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("%w: note must not be empty", errors.ErrInvalidInput)
	}
	if strings.Contains(note, ",") {
		return fmt.Errorf("%w: note must not contain commas", errors.ErrInvalidInput)
	}

	return s.mutate(id, asCoach, func(sess *Session) error {
		if sess.Status != StatusScheduled {
			return errors.NewScheduleError("session can no longer be modified", errors.ErrImmutableSession).WithSessionID(id)
		}
		if sess.Notes == "" {
			sess.Notes = note
		} else {
			sess.Notes = sess.Notes + notesSeparator + note
		}
		return nil
	})
}

// mutate loads the store under a scoped lock, applies fn to the session with
// the given ID, and rewrites the whole file. The ownership check runs before
// fn so an unowned session is never touched.
func (s *FileStore) mutate(id, asCoach string, fn func(*Session) error) error {
	lock, err := flatfile.AcquireLock(s.path, s.logger)
	if err != nil {
		return err
	}
	defer lock.Release()

	sessions, err := s.loadAll()
	if err != nil {
		return err
	}

	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		if asCoach != "" && sessions[i].Coach != asCoach {
			return errors.NewScheduleError("owned by another coach", errors.ErrNotSessionOwner).WithSessionID(id)
		}
		if err := fn(&sessions[i]); err != nil {
			return err
		}
		return s.saveAll(sessions)
	}

	return errors.NewScheduleError("no such session", errors.ErrSessionNotFound).WithSessionID(id)
}

// requireRole checks that username exists in the credential store with the
// given role.
func (s *FileStore) requireRole(username string, role credential.Role) error {
	user, ok, err := s.creds.FindByUsername(username)
	if err != nil {
		return err
	}
	if !ok || user.Role != role {
		return fmt.Errorf("%w: no %s named %q", errors.ErrUnknownUser, role, username)
	}
	return nil
}

// validateWhen checks the date and time strings against the store formats.
// It does not reject past dates: historical records must keep loading and
// round-tripping; the interactive forms handle past-time rejection.
func validateWhen(date, timeOfDay string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must match %s", errors.ErrInvalidInput, DateLayout)
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return fmt.Errorf("%w: time must match %s (24-hour)", errors.ErrInvalidInput, TimeLayout)
	}
	return nil
}
