package credential

import (
	"fmt"

	"github.com/Iron-Ham/fitsched/internal/errors"
	"github.com/Iron-Ham/fitsched/internal/flatfile"
	"github.com/Iron-Ham/fitsched/internal/logging"
)

// Store is the credential persistence interface. FileStore is the flat-file
// implementation; a hashed or database-backed scheme would implement the same
// interface without callers changing.
type Store interface {
	// Register appends a new user. Fails with ErrDuplicateUser if the
	// username is taken; the store is unchanged on failure.
	Register(user User) error

	// Authenticate returns the user on an exact username/password match,
	// ErrInvalidCredentials otherwise.
	Authenticate(username, password string) (User, error)

	// FindByUsername returns the user and true when present.
	FindByUsername(username string) (User, bool, error)

	// List returns every user in store order.
	List() ([]User, error)

	// ListByRole returns every user with the given role, in store order.
	ListByRole(role Role) ([]User, error)
}

// FileStore keeps credentials in a comma-delimited flat file. Every operation
// re-reads the file; nothing is cached between calls.
type FileStore struct {
	path   string
	logger *logging.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore over the file at path. The file does not
// need to exist yet. The logger may be nil.
func NewFileStore(path string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &FileStore{path: path, logger: logger.WithStore(path)}
}

// loadAll parses every well-formed user record. Malformed lines are skipped
// with a warning so hand-edited files never take the store down.
func (s *FileStore) loadAll() ([]User, error) {
	records, err := flatfile.ReadAll(s.path)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(records))
	for i, record := range records {
		user, err := userFromRecord(record)
		if err != nil {
			s.logger.Warn("skipping malformed credential record", "record", i+1, "reason", err.Error())
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// saveAll rewrites the whole store.
func (s *FileStore) saveAll(users []User) error {
	records := make([][]string, 0, len(users))
	for _, u := range users {
		records = append(records, u.record())
	}
	return flatfile.WriteAll(s.path, records)
}

// Register validates the user, re-reads the store, rejects duplicates, and
// persists immediately. The rewrite is guarded by a scoped lock file.
func (s *FileStore) Register(user User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	lock, err := flatfile.AcquireLock(s.path, s.logger)
	if err != nil {
		return err
	}
	defer lock.Release()

	users, err := s.loadAll()
	if err != nil {
		return err
	}

	for _, existing := range users {
		if existing.Username == user.Username {
			return fmt.Errorf("%w: %q", errors.ErrDuplicateUser, user.Username)
		}
	}

	users = append(users, user)
	if err := s.saveAll(users); err != nil {
		return err
	}

	s.logger.Info("user registered", "username", user.Username, "role", string(user.Role))
	return nil
}

// Authenticate compares the password in plain text, exactly as stored.
func (s *FileStore) Authenticate(username, password string) (User, error) {
	users, err := s.loadAll()
	if err != nil {
		return User{}, err
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return User{}, errors.ErrInvalidCredentials
}

// FindByUsername returns the user and true when present.
func (s *FileStore) FindByUsername(username string) (User, bool, error) {
	users, err := s.loadAll()
	if err != nil {
		return User{}, false, err
	}

	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// List returns every user in store order.
func (s *FileStore) List() ([]User, error) {
	return s.loadAll()
}

// ListByRole returns every user with the given role, in store order.
func (s *FileStore) ListByRole(role Role) ([]User, error) {
	users, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}
