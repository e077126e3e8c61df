package staff

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ShowCommand returns the "staff show" subcommand.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one staff member",
		Long: `Show every column stored for one staff member.

Examples:
  staffctl staff show BK-101
  staffctl staff show bk-101 -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	s, err := svc.GetStaff(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(cmd.OutOrStdout(), s)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", s.ID)
	fmt.Fprintf(w, "Name:\t%s\n", s.Name)
	fmt.Fprintf(w, "Mobile:\t%s\n", dash(s.Mobile))
	fmt.Fprintf(w, "Username:\t%s\n", dash(s.Username))
	fmt.Fprintf(w, "Role:\t%s\n", dash(s.Role))
	fmt.Fprintf(w, "Status:\t%s\n", s.DisplayStatus())
	fmt.Fprintf(w, "Salary:\t%s\n", dash(s.Salary))
	fmt.Fprintf(w, "Joined:\t%s\n", dash(s.JoinDate))
	for _, key := range s.ExtraFields() {
		fmt.Fprintf(w, "%s:\t%s\n", key, dash(s.Fields[key]))
	}
	return w.Flush()
}
