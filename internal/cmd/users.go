package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fitsched/internal/config"
	"github.com/Iron-Ham/fitsched/internal/credential"
	"github.com/Iron-Ham/fitsched/internal/logging"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect the user store",
	Long:  `Commands for listing registered users without entering the interactive menu.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Long: `List every registered user, optionally filtered by role.

Examples:
  fitsched users list
  fitsched users list --role client`,
	RunE: runUsersList,
}

func init() {
	usersListCmd.Flags().String("role", "", "filter by role: \"coach\" or \"client\"")

	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Paths.DataDir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	creds, _ := newStores(cfg, logger)

	var list []credential.User
	roleStr, _ := cmd.Flags().GetString("role")
	if roleStr == "" {
		list, err = creds.List()
	} else {
		var role credential.Role
		role, err = credential.ParseRole(roleStr)
		if err != nil {
			return err
		}
		list, err = creds.ListByRole(role)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tEMAIL")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.Role, u.Email)
	}
	return w.Flush()
}
