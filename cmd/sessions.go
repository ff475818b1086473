package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aircher/ion/internal/transcript"
	"github.com/aircher/ion/internal/ui"
)

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		styles := ui.NewStyles(os.Stdout)
		if len(sessions) == 0 {
			fmt.Println(styles.Muted.Render("no sessions"))
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  %s\n",
				styles.Bold.Render(fmt.Sprintf("%4d", s.ID)),
				s.UpdatedAt.Local().Format("2006-01-02 15:04"),
				ui.Truncate(s.Title, 60))
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		msgs, err := store.Messages(cmd.Context(), id)
		if err != nil {
			return err
		}
		styles := ui.NewStyles(os.Stdout)
		for _, m := range msgs {
			fmt.Printf("%s %s\n\n", styles.Bold.Render(m.Role+":"), m.Content)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteSession(cmd.Context(), id)
	},
}

func openStore() (transcript.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return transcript.OpenSQLite(cfg.Transcript.Path)
}
