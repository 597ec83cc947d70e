package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/logging"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a user without entering the interactive menu",
	Long: `Register a coach or client directly from the command line.

Examples:
  fitsched register --username huda --password pw --role coach --email huda@gym.io
  fitsched register --username john --password 456 --role client --email john@gmail.com`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().String("username", "", "unique username")
	registerCmd.Flags().String("password", "", "password (stored in plain text)")
	registerCmd.Flags().String("role", "", "\"coach\" or \"client\"")
	registerCmd.Flags().String("email", "", "contact email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("role")
	_ = registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Paths.DataDir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	roleStr, _ := cmd.Flags().GetString("role")
	email, _ := cmd.Flags().GetString("email")

	role, err := credential.ParseRole(roleStr)
	if err != nil {
		return err
	}

	creds := credential.NewFileStore(cfg.UsersPath(), logger)
	user := credential.User{Username: username, Password: password, Role: role, Email: email}
	if err := creds.Register(user); err != nil {
		return err
	}

	fmt.Printf("User %q registered as %s\n", username, role)
	return nil
}
