package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/services"
	stafftui "nathanbeddoewebdev/staffctl/internal/staff/tui"

	"github.com/spf13/cobra"
)

// DeleteCommand returns the "staff delete" subcommand.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete one or more staff members",
		Long: `Delete staff members from the roster.

With no IDs in a terminal, a picker lists the roster. Deletions run
concurrently; each ID is attempted once and reported separately.
Without --yes a confirmation is required, so non-interactive use must
pass --yes.

Examples:
  staffctl staff delete
  staffctl staff delete BK-101
  staffctl staff delete BK-101 BK-102 --yes`,
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Int("concurrency", services.DefaultDeleteConcurrency, "Maximum deletions in flight")

	return auditable(cmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	limit, _ := cmd.Flags().GetInt("concurrency")
	if limit <= 0 {
		return fmt.Errorf("--concurrency must be greater than 0")
	}

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		if !interactive() {
			return fmt.Errorf("at least one staff ID is required when not running in a terminal")
		}
		ids, err = stafftui.SelectStaffForm("Select staff to delete", svc.ListStaff)
		if err != nil {
			if errors.Is(err, stafftui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Delete cancelled.")
				return nil
			}
			return err
		}
	}

	if !yes {
		if !interactive() {
			return fmt.Errorf("refusing to delete without --yes when not running in a terminal")
		}
		confirmed, err := stafftui.ConfirmDelete(lookupStaff(cmd.Context(), svc, ids))
		if err != nil && !errors.Is(err, stafftui.ErrAborted) {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Delete cancelled.")
			return nil
		}
	}

	recordTarget(cmd, ids, "")

	var results []services.DeleteResult
	run := func(ctx context.Context) error {
		var err error
		results, err = svc.DeleteMany(ctx, ids, limit)
		return err
	}
	if interactive() {
		err = stafftui.RunWithSpinner("Deleting staff...", run)
	} else {
		err = run(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("deleting staff: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Error deleting %s: %v\n", r.ID, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", r.ID)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletions failed", failed, len(results))
	}
	return nil
}

// lookupStaff resolves ids to roster entries for the confirmation summary.
// IDs that cannot be found are shown with just their ID.
func lookupStaff(ctx context.Context, svc *services.Service, ids []string) []domain.Staff {
	roster, err := svc.ListStaff(ctx)
	if err != nil {
		roster = nil
	}

	out := make([]domain.Staff, 0, len(ids))
	for _, id := range ids {
		found := domain.Staff{ID: strings.TrimSpace(id)}
		for _, s := range roster {
			if strings.EqualFold(s.ID, found.ID) {
				found = s
				break
			}
		}
		out = append(out, found)
	}
	return out
}
