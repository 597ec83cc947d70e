package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/logging"
	"github.com/Iron-Ham/fitsched/internal/schedule"
	"github.com/Iron-Ham/fitsched/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "fitsched",
	Short: "Terminal scheduler for fitness coaching sessions",
	Long: `Fitsched is an interactive terminal scheduler for fitness coaching.
Coaches schedule, edit, and cancel sessions with their clients; clients view
their sessions and join them through generated meeting links. All data lives
in two flat files under the data directory.`,
	RunE: runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/fitsched/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/fitsched")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FITSCHED")
	// Replace dots with underscores for nested keys in env vars
	// e.g., FITSCHED_PATHS_DATA_DIR for paths.data_dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// runRoot launches the interactive menu program.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Paths.DataDir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	creds, sessions := newStores(cfg, logger)
	return tui.Run(cfg, creds, sessions, logger)
}

// newStores wires the two flat-file stores from the configuration.
func newStores(cfg *config.Config, logger *logging.Logger) (credential.Store, schedule.Store) {
	creds := credential.NewFileStore(cfg.UsersPath(), logger)
	sessions := schedule.NewFileStore(cfg.SessionsPath(), creds, cfg.Link, logger)
	return creds, sessions
}
