package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Paths.UsersFile != "users.txt" {
		t.Errorf("Paths.UsersFile = %q, want %q", cfg.Paths.UsersFile, "users.txt")
	}
	if cfg.Paths.SessionsFile != "sessions.txt" {
		t.Errorf("Paths.SessionsFile = %q, want %q", cfg.Paths.SessionsFile, "sessions.txt")
	}
	if cfg.Paths.DataDir == "" {
		t.Error("Paths.DataDir should not be empty by default")
	}

	if cfg.Link.BaseURL != "https://meet.jit.si/" {
		t.Errorf("Link.BaseURL = %q, want %q", cfg.Link.BaseURL, "https://meet.jit.si/")
	}
	if cfg.Link.RoomPrefix != "FitnessSession_" {
		t.Errorf("Link.RoomPrefix = %q, want %q", cfg.Link.RoomPrefix, "FitnessSession_")
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "INFO")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty users file",
			mutate:  func(c *Config) { c.Paths.UsersFile = "" },
			wantErr: "users_file",
		},
		{
			name:    "empty sessions file",
			mutate:  func(c *Config) { c.Paths.SessionsFile = "" },
			wantErr: "sessions_file",
		},
		{
			name: "same store file",
			mutate: func(c *Config) {
				c.Paths.UsersFile = "data.txt"
				c.Paths.SessionsFile = "data.txt"
			},
			wantErr: "must differ",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.Link.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "base url without trailing slash",
			mutate:  func(c *Config) { c.Link.BaseURL = "https://meet.jit.si" },
			wantErr: "trailing slash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("paths.sessions_file", "other.txt")
	if got := Get().Paths.SessionsFile; got != "other.txt" {
		t.Errorf("Get().Paths.SessionsFile = %q, want %q", got, "other.txt")
	}

	// Make validation fail: both stores pointed at the same file.
	viper.Set("paths.users_file", "other.txt")
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation failure")
	}
	if got := Get().Paths.UsersFile; got != "users.txt" {
		t.Errorf("Get().Paths.UsersFile = %q, want default", got)
	}
}

func TestStorePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/data/fitsched"

	if got := cfg.UsersPath(); got != "/data/fitsched/users.txt" {
		t.Errorf("UsersPath() = %q, want %q", got, "/data/fitsched/users.txt")
	}
	if got := cfg.SessionsPath(); got != "/data/fitsched/sessions.txt" {
		t.Errorf("SessionsPath() = %q, want %q", got, "/data/fitsched/sessions.txt")
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	if got := ConfigDir(); got != "/xdg/config/fitsched" {
		t.Errorf("ConfigDir() = %q, want %q", got, "/xdg/config/fitsched")
	}
}
