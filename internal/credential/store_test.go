package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/fitsched/internal/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.txt"), nil)
}

func TestRegisterThenFind(t *testing.T) {
	store := newTestStore(t)
	user := User{Username: "john", Password: "456", Role: RoleClient, Email: "john@gmail.com"}

	if err := store.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok, err := store.FindByUsername("john")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if !ok {
		t.Fatal("FindByUsername() ok = false, want true")
	}
	if got != user {
		t.Errorf("FindByUsername() = %+v, want %+v", got, user)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := newTestStore(t)
	user := User{Username: "john", Password: "456", Role: RoleClient, Email: "john@gmail.com"}

	if err := store.Register(user); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	before, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatal(err)
	}

	dup := User{Username: "john", Password: "other", Role: RoleCoach, Email: "j2@gmail.com"}
	if err := store.Register(dup); !errors.Is(err, errors.ErrDuplicateUser) {
		t.Errorf("second Register() error = %v, want ErrDuplicateUser", err)
	}

	after, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("store content changed by failed Register")
	}
}

func TestRegisterInvalidUserLeavesStoreAbsent(t *testing.T) {
	store := newTestStore(t)

	err := store.Register(User{Username: "", Password: "x", Role: RoleClient, Email: "a@b.c"})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("Register() error = %v, want ErrInvalidInput", err)
	}
	if _, statErr := os.Stat(store.path); !os.IsNotExist(statErr) {
		t.Error("store file created by failed Register")
	}
}

func TestAuthenticate(t *testing.T) {
	store := newTestStore(t)
	if err := store.Register(User{Username: "john", Password: "456", Role: RoleClient, Email: "john@gmail.com"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Authenticate("john", "456")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.Username != "john" || got.Role != RoleClient {
		t.Errorf("Authenticate() = %+v", got)
	}

	if _, err := store.Authenticate("john", "wrong"); !errors.Is(err, errors.ErrInvalidCredentials) {
		t.Errorf("Authenticate(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate("ghost", "456"); !errors.Is(err, errors.ErrInvalidCredentials) {
		t.Errorf("Authenticate(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestListByRole(t *testing.T) {
	store := newTestStore(t)
	seed := []User{
		{Username: "huda", Password: "pw", Role: RoleCoach, Email: "huda@gym.io"},
		{Username: "john", Password: "456", Role: RoleClient, Email: "john@gmail.com"},
		{Username: "mary", Password: "pw2", Role: RoleClient, Email: "mary@gmail.com"},
	}
	for _, u := range seed {
		if err := store.Register(u); err != nil {
			t.Fatal(err)
		}
	}

	clients, err := store.ListByRole(RoleClient)
	if err != nil {
		t.Fatalf("ListByRole() error = %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("len(clients) = %d, want 2", len(clients))
	}
	if clients[0].Username != "john" || clients[1].Username != "mary" {
		t.Errorf("ListByRole() order = %q, %q", clients[0].Username, clients[1].Username)
	}

	coaches, err := store.ListByRole(RoleCoach)
	if err != nil {
		t.Fatalf("ListByRole() error = %v", err)
	}
	if len(coaches) != 1 || coaches[0].Username != "huda" {
		t.Errorf("ListByRole(coach) = %+v", coaches)
	}
}

func TestMalformedLinesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.txt")
	content := "john,456,client,john@gmail.com\nnot-enough-fields\nhuda,pw,coach,huda@gym.io\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path, nil)
	users, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2 (malformed line skipped)", len(users))
	}
	if users[0].Username != "john" || users[1].Username != "huda" {
		t.Errorf("users = %q, %q", users[0].Username, users[1].Username)
	}
}

func TestFileFormatMatchesExistingData(t *testing.T) {
	store := newTestStore(t)
	if err := store.Register(User{Username: "john", Password: "456", Role: RoleClient, Email: "john@gmail.com"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "john,456,client,john@gmail.com\n"; got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}
