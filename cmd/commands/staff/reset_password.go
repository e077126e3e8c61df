package staff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ResetPasswordCommand returns the "staff reset-password" subcommand.
func ResetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password <id>",
		Short: "Set a new password for a staff member",
		Long: `Set a new password for a staff member. The password is bcrypt-hashed
before it is sent.

Without --password the new password is prompted for twice (no echo) in a
terminal, or read from the first line of stdin otherwise.

Examples:
  staffctl staff reset-password BK-101
  echo 'n3wpassword' | staffctl staff reset-password BK-101`,
		Args:         cobra.ExactArgs(1),
		RunE:         runResetPassword,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("password", "p", "", "New password (optional, overrides prompt)")

	return auditable(cmd)
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		password, err = promptPassword(cmd)
		if err != nil {
			return err
		}
	}

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	recordTarget(cmd, []string{id}, "")

	if err := svc.ResetPassword(cmd.Context(), id, password); err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s\n", id)
	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	fmt.Fprint(cmd.ErrOrStderr(), "New password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
