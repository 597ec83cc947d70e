package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete fitsched configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Link    LinkConfig    `mapstructure:"link"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig controls where the flat-file stores live
type PathsConfig struct {
	// DataDir is the directory holding the store files and debug.log
	// (default: ~/.local/share/fitsched)
	DataDir string `mapstructure:"data_dir"`
	// UsersFile is the credential store file name within DataDir
	UsersFile string `mapstructure:"users_file"`
	// SessionsFile is the session store file name within DataDir
	SessionsFile string `mapstructure:"sessions_file"`
}

// LinkConfig controls how meeting links are built
type LinkConfig struct {
	// BaseURL is the meeting service base (default: "https://meet.jit.si/")
	BaseURL string `mapstructure:"base_url"`
	// RoomPrefix is the human-readable room label (default: "FitnessSession_")
	RoomPrefix string `mapstructure:"room_prefix"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:      defaultDataDir(),
			UsersFile:    "users.txt",
			SessionsFile: "sessions.txt",
		},
		Link: LinkConfig{
			BaseURL:    "https://meet.jit.si/",
			RoomPrefix: "FitnessSession_",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// SetDefaults registers all defaults with viper so they apply even
// when no config file exists
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)
	viper.SetDefault("paths.users_file", defaults.Paths.UsersFile)
	viper.SetDefault("paths.sessions_file", defaults.Paths.SessionsFile)

	viper.SetDefault("link.base_url", defaults.Link.BaseURL)
	viper.SetDefault("link.room_prefix", defaults.Link.RoomPrefix)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load unmarshals the current viper state into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks the configuration for values that would break the stores
// or the link generator.
func (c *Config) Validate() error {
	if c.Paths.UsersFile == "" {
		return fmt.Errorf("paths.users_file must not be empty")
	}
	if c.Paths.SessionsFile == "" {
		return fmt.Errorf("paths.sessions_file must not be empty")
	}
	if c.Paths.UsersFile == c.Paths.SessionsFile {
		return fmt.Errorf("paths.users_file and paths.sessions_file must differ")
	}
	if c.Link.BaseURL == "" {
		return fmt.Errorf("link.base_url must not be empty")
	}
	if _, err := url.Parse(c.Link.BaseURL); err != nil {
		return fmt.Errorf("link.base_url is not a valid URL: %w", err)
	}
	if !strings.HasSuffix(c.Link.BaseURL, "/") {
		return fmt.Errorf("link.base_url must end with a trailing slash")
	}
	return nil
}

// UsersPath returns the absolute path of the credential store file
func (c *Config) UsersPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.UsersFile)
}

// SessionsPath returns the absolute path of the session store file
func (c *Config) SessionsPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.SessionsFile)
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fitsched")
	}
	// Fall back to ~/.config/fitsched
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitsched"
	}
	return filepath.Join(home, ".config", "fitsched")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultDataDir resolves the default store location, honoring XDG_DATA_HOME.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fitsched")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitsched"
	}
	return filepath.Join(home, ".local", "share", "fitsched")
}
