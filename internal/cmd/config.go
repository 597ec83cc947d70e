package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fitsched/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View fitsched configuration",
	Long: `View the resolved fitsched configuration.

Values come from the config file, FITSCHED_* environment variables, and
built-in defaults, in that order of precedence.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Falls back to defaults when the config file fails validation, so the
	// command stays usable for debugging a broken config.
	cfg := config.Get()

	fmt.Println("Configuration:")
	fmt.Printf("  config file:         %s\n", config.ConfigFile())
	fmt.Println("  paths:")
	fmt.Printf("    data_dir:          %s\n", cfg.Paths.DataDir)
	fmt.Printf("    users_file:        %s\n", cfg.Paths.UsersFile)
	fmt.Printf("    sessions_file:     %s\n", cfg.Paths.SessionsFile)
	fmt.Println("  link:")
	fmt.Printf("    base_url:          %s\n", cfg.Link.BaseURL)
	fmt.Printf("    room_prefix:       %s\n", cfg.Link.RoomPrefix)
	fmt.Println("  logging:")
	fmt.Printf("    level:             %s\n", cfg.Logging.Level)
	return nil
}
