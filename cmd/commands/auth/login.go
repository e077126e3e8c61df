package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [provider]",
		Short: "Store backend credentials in the keychain",
		Long: `Store the credentials a roster provider needs using the local keychain.

The provider defaults to the configured default-provider.

Examples:
  staffctl auth login
  staffctl auth login sheet --api-key "$SHEET_API_KEY"`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("api-key", "", "API key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	provider, err := resolveProvider(args)
	if err != nil {
		return err
	}

	creds := auth.LookupCredentials(provider)
	if len(creds) == 0 {
		return fmt.Errorf("provider %q has no credentials to store", provider)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" && len(creds) > 1 {
		return fmt.Errorf("--api-key is ambiguous: provider %q needs %d credentials", provider, len(creds))
	}

	store := auth.DefaultStore()
	in := bufio.NewReader(cmd.InOrStdin())
	for _, c := range creds {
		value := apiKey
		if value == "" {
			value, err = readSecret(cmd, in, c.Prompt)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", c.Prompt, err)
			}
		}
		if value == "" {
			return fmt.Errorf("%s cannot be empty", c.Prompt)
		}

		if err := store.SetToken(c.Key, value); err != nil {
			return fmt.Errorf("failed to store %s: %w", c.Key, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved credentials for provider %s\n", provider)
	return nil
}

// resolveProvider returns the provider named in args, falling back to the
// configured default.
func resolveProvider(args []string) (string, error) {
	if len(args) == 1 {
		if p := strings.ToLower(strings.TrimSpace(args[0])); p != "" {
			return p, nil
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return strings.ToLower(cfg.Provider()), nil
}

// readSecret prompts without echo on a terminal and reads a plain line
// otherwise, so keys can be piped in.
func readSecret(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "Enter %s: ", prompt)

	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := in.ReadString('\n')
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
