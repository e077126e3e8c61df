package staff

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	stafftui "nathanbeddoewebdev/staffctl/internal/staff/tui"

	"github.com/spf13/cobra"
)

// AddCommand returns the "staff add" subcommand.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member",
		Long: `Add a staff member to the roster.

The password is bcrypt-hashed before it is sent. When required flags are
missing and a terminal is attached, an interactive form collects them.

Examples:
  staffctl staff add
  staffctl staff add --id BK-101 --name "John Doe" --username john \
    --password 's3cretpass' --role Manager --salary 42000`,
		Args:         cobra.NoArgs,
		RunE:         runAdd,
		SilenceUsage: true,
	}

	cmd.Flags().String("id", "", "Staff ID (required)")
	cmd.Flags().String("name", "", "Full name (required)")
	cmd.Flags().String("mobile", "", "Mobile number")
	cmd.Flags().String("username", "", "Login username (required)")
	cmd.Flags().StringP("password", "p", "", "Initial password (required)")
	cmd.Flags().String("role", "", "Role (defaults to the default-role config key, then Staff)")
	cmd.Flags().String("salary", "", "Monthly salary")
	cmd.Flags().String("status", "", "Active or Inactive (default Active)")

	return auditable(cmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	opts, err := addOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	if missing := missingAddFields(opts); len(missing) > 0 {
		if !interactive() {
			return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
		}
		if opts.Role == "" {
			opts.Role = svc.DefaultRole()
		}
		filled, err := stafftui.AddStaffForm(opts)
		if err != nil {
			if errors.Is(err, stafftui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Add cancelled.")
				return nil
			}
			return err
		}
		opts = *filled
	}

	recordTarget(cmd, []string{opts.ID}, opts.Name)

	added, err := svc.AddStaff(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("adding staff: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) as %s, %s\n", added.ID, added.Name, added.Role, added.Status)
	return nil
}

func addOptsFromFlags(cmd *cobra.Command) (domain.AddStaffOpts, error) {
	var opts domain.AddStaffOpts
	opts.ID, _ = cmd.Flags().GetString("id")
	opts.Name, _ = cmd.Flags().GetString("name")
	opts.Mobile, _ = cmd.Flags().GetString("mobile")
	opts.Username, _ = cmd.Flags().GetString("username")
	opts.Password, _ = cmd.Flags().GetString("password")
	opts.Role, _ = cmd.Flags().GetString("role")
	opts.Status, _ = cmd.Flags().GetString("status")

	salary, _ := cmd.Flags().GetString("salary")
	amount, err := stafftui.ParseSalary(salary)
	if err != nil {
		return opts, err
	}
	opts.Salary = amount
	return opts, nil
}

func missingAddFields(opts domain.AddStaffOpts) []string {
	var missing []string
	if strings.TrimSpace(opts.ID) == "" {
		missing = append(missing, "--id")
	}
	if strings.TrimSpace(opts.Name) == "" {
		missing = append(missing, "--name")
	}
	if strings.TrimSpace(opts.Username) == "" {
		missing = append(missing, "--username")
	}
	if opts.Password == "" {
		missing = append(missing, "--password")
	}
	return missing
}
