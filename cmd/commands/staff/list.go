package staff

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/staffctl/internal/auditlog"
	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/filter"
	stafftui "nathanbeddoewebdev/staffctl/internal/staff/tui"

	"github.com/spf13/cobra"
)

// ListCommand returns the "staff list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff",
		Long: `List the staff roster, optionally filtered.

In a terminal this opens the interactive roster. Use / to search, f to cycle
the role filter, s to toggle status, d to delete and enter for details.

Examples:
  staffctl staff list
  staffctl staff list --search john --role Manager
  staffctl staff list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().String("search", "", "Case-insensitive match on name, ID, mobile or username")
	cmd.Flags().String("role", "", "Only show staff with this exact role")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func criteriaFromFlags(cmd *cobra.Command) filter.Criteria {
	search, _ := cmd.Flags().GetString("search")
	role, _ := cmd.Flags().GetString("role")
	return filter.Criteria{Search: search, Role: role}
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}
	criteria := criteriaFromFlags(cmd)

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	if output == "table" && interactive() {
		providerName := cmd.Flag("provider").Value.String()
		if _, err := stafftui.RunStaffApp(svc, criteria, tuiAuditor(cmd, providerName)); err != nil {
			return fmt.Errorf("running roster TUI: %w", err)
		}
		return nil
	}

	staff, err := svc.Search(cmd.Context(), criteria)
	if err != nil {
		return fmt.Errorf("listing staff: %w", err)
	}

	if output == "json" {
		return printJSON(cmd.OutOrStdout(), staff)
	}

	if len(staff) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No staff found.")
		return nil
	}
	printStaffTable(cmd.OutOrStdout(), staff)
	return nil
}

// tuiAuditor records mutations made from inside the roster TUI, which runs
// under the non-audited list command.
func tuiAuditor(cmd *cobra.Command, providerName string) stafftui.MutationFunc {
	command := cmd.CommandPath()
	return func(action, staffID string) {
		auditlog.Write(&auditlog.AuditEntry{
			Timestamp:    time.Now().UTC(),
			Command:      command + " (" + action + ")",
			Provider:     providerName,
			ResourceType: auditlog.ResourceStaff,
			ResourceID:   staffID,
			Outcome:      auditlog.OutcomeSuccess,
		})
	}
}

func printStaffTable(w io.Writer, staff []domain.Staff) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMOBILE\tUSERNAME\tROLE\tSTATUS\tSALARY\tJOINED")
	fmt.Fprintln(tw, "--\t----\t------\t--------\t----\t------\t------\t------")
	for _, s := range staff {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Name,
			dash(s.Mobile),
			dash(s.Username),
			dash(s.Role),
			s.DisplayStatus(),
			dash(s.Salary),
			dash(s.JoinDate),
		)
	}
	tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
