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

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect the session store",
	Long:  `Commands for listing sessions without entering the interactive menu.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sessions of a user",
	Long: `List every session where the given user appears in the field matching
their role: the coach field for coaches, the client field for clients.

Examples:
  fitsched sessions list --user huda --role coach
  fitsched sessions list --user john --role client`,
	RunE: runSessionsList,
}

func init() {
	sessionsListCmd.Flags().String("user", "", "username to list sessions for")
	sessionsListCmd.Flags().String("role", "", "\"coach\" or \"client\"")
	_ = sessionsListCmd.MarkFlagRequired("user")
	_ = sessionsListCmd.MarkFlagRequired("role")

	sessionsCmd.AddCommand(sessionsListCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Paths.DataDir, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Close()

	username, _ := cmd.Flags().GetString("user")
	roleStr, _ := cmd.Flags().GetString("role")

	role, err := credential.ParseRole(roleStr)
	if err != nil {
		return err
	}

	_, sessions := newStores(cfg, logger)
	list, err := sessions.ListFor(username, role)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOACH\tCLIENT\tDATE\tTIME\tSTATUS\tLINK")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Coach, s.Client, s.Date, s.Time, s.Status, s.Link)
	}
	return w.Flush()
}
