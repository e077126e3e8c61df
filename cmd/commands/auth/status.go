package auth

import (
	"fmt"
	"os"

	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which credentials are stored",
		Long: `Show which backend credentials are present in the keychain.

Example:
  staffctl auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			// Use TUI in interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			statuses := auth.CheckCredentials(store)
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No credentials registered.")
				return nil
			}
			for _, st := range statuses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", st.Key, st.Provider, st.Describe())
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
