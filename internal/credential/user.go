// Package credential holds the user model and the flat-file credential store.
//
// Passwords are stored and compared in plain text. This mirrors the existing
// store files and is a documented weakness: hashing would change the on-disk
// format and break every record already written. The Store interface is the
// seam where a hashed scheme would slot in without touching callers.
package credential

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/fitsched/internal/errors"
)

// Role distinguishes coaches (who own and mutate sessions) from clients
// (who view and join them).
type Role string

const (
	RoleCoach  Role = "coach"
	RoleClient Role = "client"
)

// ParseRole converts a string to a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleCoach):
		return RoleCoach, nil
	case string(RoleClient):
		return RoleClient, nil
	default:
		return "", fmt.Errorf("%w: role must be %q or %q", errors.ErrInvalidInput, RoleCoach, RoleClient)
	}
}

// userFieldCount is the fixed field count of a credential record:
// username,password,role,email
const userFieldCount = 4

// User is one credential record. Records are immutable after registration.
type User struct {
	Username string
	Password string
	Role     Role
	Email    string
}

// Validate checks the invariants a record must satisfy before it may be
// written. Commas are rejected because they would corrupt the delimited
// store format.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username must not be empty", errors.ErrInvalidInput)
	}
	if strings.Contains(u.Username, ",") {
		return fmt.Errorf("%w: username must not contain commas", errors.ErrInvalidInput)
	}
	if u.Password == "" {
		return fmt.Errorf("%w: password must not be empty", errors.ErrInvalidInput)
	}
	if strings.Contains(u.Password, ",") {
		return fmt.Errorf("%w: password must not contain commas", errors.ErrInvalidInput)
	}
	if u.Role != RoleCoach && u.Role != RoleClient {
		return fmt.Errorf("%w: role must be %q or %q", errors.ErrInvalidInput, RoleCoach, RoleClient)
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email must not be empty", errors.ErrInvalidInput)
	}
	if strings.Contains(u.Email, ",") {
		return fmt.Errorf("%w: email must not contain commas", errors.ErrInvalidInput)
	}
	return nil
}

// record serializes the user into its store line fields.
func (u User) record() []string {
	return []string{u.Username, u.Password, string(u.Role), u.Email}
}

// userFromRecord parses store line fields into a User. Records with the wrong
// field count are malformed; an unknown role string is malformed too, since
// nothing downstream could reason about it.
func userFromRecord(fields []string) (User, error) {
	if len(fields) != userFieldCount {
		return User{}, fmt.Errorf("%w: expected %d fields, got %d", errors.ErrMalformedRecord, userFieldCount, len(fields))
	}
	role, err := ParseRole(fields[2])
	if err != nil {
		return User{}, fmt.Errorf("%w: unrecognized role %q", errors.ErrMalformedRecord, fields[2])
	}
	return User{
		Username: fields[0],
		Password: fields[1],
		Role:     role,
		Email:    fields[3],
	}, nil
}
