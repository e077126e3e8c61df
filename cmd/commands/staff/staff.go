package staff

import (
	"fmt"
	"os"

	"nathanbeddoewebdev/staffctl/internal/auditlog"
	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/staff/providers"
	"nathanbeddoewebdev/staffctl/internal/staff/services"
	"nathanbeddoewebdev/staffctl/internal/swrcache"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the top-level "staff" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage the staff roster",
		Long: `List, search, add, update and delete staff in the remote roster.

Reads go to the sheet API; every change is posted to a webhook.`,
		PersistentPreRunE: resolveProvider,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(ResetPasswordCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(ExportCommand())

	cmd.PersistentFlags().String("provider", "", "Roster backend to use (overrides default)")

	return cmd
}

// resolveProvider ensures the --provider flag has a value, falling back to
// STAFFCTL_PROVIDER, the default-provider config key and finally "sheet".
func resolveProvider(cmd *cobra.Command, args []string) error {
	if cmd.Flag("provider").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cmd.Flag("provider").Value.Set(cfg.Provider()); err != nil {
		return fmt.Errorf("failed to set provider flag: %w", err)
	}
	return nil
}

func newStaffService(cmd *cobra.Command) (*services.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	providerName := cmd.Flag("provider").Value.String()
	provider, err := providers.Get(providerName, auth.DefaultStore(), cfg.Endpoints())
	if err != nil {
		return nil, err
	}

	opts := []services.Option{services.WithDefaultRole(cfg.DefaultRole)}
	if cache := swrcache.NewDefault(); cache != nil {
		opts = append(opts, services.WithCache(cache))
	}
	return services.New(provider, opts...), nil
}

// auditable marks cmd so the root command records each run.
func auditable(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[auditlog.Annotation] = "true"
	return cmd
}

// recordTarget attaches the affected staff to the command's audit entry.
func recordTarget(cmd *cobra.Command, ids []string, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(),
		auditlog.StaffTarget(cmd.Flag("provider").Value.String(), ids, name)))
}

// interactive reports whether both ends of the session are a terminal.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
