package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/staff/providers"
	"nathanbeddoewebdev/staffctl/internal/tui"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage staffctl configuration",
		Long: "View and modify persistent staffctl settings.\n\n" +
			"Configuration is stored at ~/.config/staffctl/config.json.\n" +
			"STAFFCTL_API_BASE_URL, STAFFCTL_WEBHOOK_BASE_URL and STAFFCTL_PROVIDER\n" +
			"override the stored values and may be set in a .env file.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}

// validators returns the checks a KeySpec cannot perform by itself.
// Keys not present in the map have no extra validation.
func validators() map[string]tui.ValidatorFunc {
	return map[string]tui.ValidatorFunc{
		"default-provider": validateProvider,
	}
}

// validateProvider checks that the given name is a registered provider.
func validateProvider(name string) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	known := providers.List()
	for _, p := range known {
		if p == normalized {
			return nil
		}
	}
	return fmt.Errorf("unknown provider %q (registered: %s)", name, strings.Join(known, ", "))
}
