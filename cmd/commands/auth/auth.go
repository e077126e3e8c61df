package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage roster backend credentials",
		Long: `Manage roster backend credentials.

Use this command group to store, inspect and remove the API keys staffctl
sends to the roster backend. Keys are kept in the OS keychain.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}
