package staff

import (
	"fmt"
	"path/filepath"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/export"

	"github.com/spf13/cobra"
)

// ExportCommand returns the "staff export" subcommand.
func ExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roster to an Excel workbook",
		Long: `Write the roster, optionally filtered, to an .xlsx workbook.

Examples:
  staffctl staff export --file roster.xlsx
  staffctl staff export --file managers.xlsx --role Manager`,
		Args:         cobra.NoArgs,
		RunE:         runExport,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("file", "f", "roster.xlsx", "Destination .xlsx path")
	cmd.Flags().String("search", "", "Case-insensitive match on name, ID, mobile or username")
	cmd.Flags().String("role", "", "Only export staff with this exact role")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("--file is required")
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("--file must end in .xlsx, got %q", path)
	}

	svc, err := newStaffService(cmd)
	if err != nil {
		return err
	}

	staff, err := svc.Search(cmd.Context(), criteriaFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("listing staff: %w", err)
	}

	if err := export.SaveXLSX(path, staff); err != nil {
		return fmt.Errorf("exporting roster: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d staff to %s\n", len(staff), path)
	return nil
}
