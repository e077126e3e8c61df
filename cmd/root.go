package cmd

import (
	"os"
	"time"

	"nathanbeddoewebdev/staffctl/cmd/commands/audit"
	"nathanbeddoewebdev/staffctl/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/staffctl/cmd/commands/config"
	"nathanbeddoewebdev/staffctl/cmd/commands/staff"
	"nathanbeddoewebdev/staffctl/internal/auditlog"
	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/logging"
	"nathanbeddoewebdev/staffctl/internal/staff/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "staffctl",
		Short: "A CLI tool for managing a sheet-backed staff roster",
		Long: `staffctl is a command-line tool for the staff roster kept in a remote
sheet. It reads the roster from the sheet API and applies changes through
webhooks, with interactive TUIs for browsing and guided forms for edits.

Quick start:
  staffctl config set api-base-url https://sheets.example.com
  staffctl auth login               # Store the API key, if the backend needs one
  staffctl staff list               # Browse, search and filter the roster
  staffctl staff add                # Interactive staff creation
  staffctl staff delete             # Pick and delete staff`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if err := logging.Setup(level); err != nil {
				return err
			}
			return config.LoadDotEnv("")
		},
	}

	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default warn, or $"+logging.LevelEnv+")")

	cmd.AddCommand(staff.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Group-level PersistentPreRunE hooks (provider resolution) must not
	// replace the root hook that configures logging.
	cobra.EnableTraverseRunHooks = true

	providers.RegisterSheet()

	var root = rootCmd()
	start := time.Now()
	executed, err := root.ExecuteC()
	if executed != nil && executed.Annotations[auditlog.Annotation] == "true" {
		auditlog.Write(auditlog.NewEntry(executed.Context(), executed.CommandPath(), os.Args[1:], start, err))
	}
	if err != nil {
		os.Exit(1)
	}
}
