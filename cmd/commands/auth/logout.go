package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffctl/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout [provider]",
		Short: "Remove stored credentials from the keychain",
		Long: `Remove every stored credential for a provider.

The provider defaults to the configured default-provider.

Example:
  staffctl auth logout sheet`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runLogout,
		SilenceUsage: true,
	}

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	provider, err := resolveProvider(args)
	if err != nil {
		return err
	}

	creds := auth.LookupCredentials(provider)
	if len(creds) == 0 {
		return fmt.Errorf("provider %q has no credentials to remove", provider)
	}

	store := auth.DefaultStore()
	removed := 0
	for _, c := range creds {
		err := store.DeleteToken(c.Key)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, auth.ErrTokenNotFound):
		default:
			return fmt.Errorf("failed to remove %s: %w", c.Key, err)
		}
	}

	if removed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored credentials for provider %s\n", provider)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed credentials for provider %s\n", provider)
	return nil
}
