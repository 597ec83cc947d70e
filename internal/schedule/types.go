// Package schedule holds the session model, the status lifecycle, and the
// flat-file session store.
package schedule

import (
	"fmt"

	"github.com/Iron-Ham/fitsched/internal/errors"
)

// Status is the lifecycle state of a session.
//
// The machine is small: scheduled is the only initial state, canceled and
// completed are terminal, and there are no transitions out of a terminal
// state. Sessions are never deleted, only marked canceled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCanceled, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unrecognized status %q", errors.ErrInvalidInput, s)
	}
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// CanTransition reports whether the lifecycle permits moving to the given
// status. Only scheduled sessions move anywhere.
func (s Status) CanTransition(to Status) bool {
	if s != StatusScheduled {
		return false
	}
	return to == StatusCanceled || to == StatusCompleted
}

// sessionFieldCount is the fixed field count of a session record:
// id,coach,client,date,time,link,status,notes
const sessionFieldCount = 8

// Session is one scheduled appointment between a coach and a client.
// Date and Time stay strings ("2006-01-02" and "15:04") because the store
// format is shared with existing files that hold them verbatim.
type Session struct {
	ID     string
	Coach  string
	Client string
	Date   string
	Time   string
	Link   string
	Status Status
	Notes  string
}

// EditFields carries the editable session fields. An empty field means
// "keep the current value".
type EditFields struct {
	Client string
	Date   string
	Time   string
}

// record serializes the session into its store line fields.
func (s Session) record() []string {
	return []string{s.ID, s.Coach, s.Client, s.Date, s.Time, s.Link, string(s.Status), s.Notes}
}

// sessionFromRecord parses store line fields into a Session. The coach field
// is username-typed; legacy records with other values still parse and simply
// never match a real coach.
func sessionFromRecord(fields []string) (Session, error) {
	if len(fields) != sessionFieldCount {
		return Session{}, fmt.Errorf("%w: expected %d fields, got %d", errors.ErrMalformedRecord, sessionFieldCount, len(fields))
	}
	status, err := ParseStatus(fields[6])
	if err != nil {
		return Session{}, fmt.Errorf("%w: unrecognized status %q", errors.ErrMalformedRecord, fields[6])
	}
	return Session{
		ID:     fields[0],
		Coach:  fields[1],
		Client: fields[2],
		Date:   fields[3],
		Time:   fields[4],
		Link:   fields[5],
		Status: status,
		Notes:  fields[7],
	}, nil
}
