package staff

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// StatusCommand returns the "staff status" subcommand.
func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Toggle or set a staff member's status",
		Long: `Toggle a staff member between Active and Inactive, or set the status
explicitly with --set.

Examples:
  staffctl staff status BK-101
  staffctl staff status BK-101 --set Inactive`,
		Args:         cobra.ExactArgs(1),
		RunE:         runStatus,
		SilenceUsage: true,
	}

	cmd.Flags().String("set", "", "Status to set (Active or Inactive) instead of toggling")

	return auditable(cmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	set, _ := cmd.Flags().GetString("set")

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	recordTarget(cmd, []string{id}, "")

	var status string
	if strings.TrimSpace(set) != "" {
		status, err = svc.SetStatus(cmd.Context(), id, set)
	} else {
		status, err = svc.ToggleStatus(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("changing status: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", id, status)
	return nil
}
