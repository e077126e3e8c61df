package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// Accessible reports whether forms should run in accessible (plain prompt)
// mode.
func Accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// AddStaffForm runs an interactive wizard that collects the fields for a new
// staff member. Fields already set in prefill are offered as defaults.
func AddStaffForm(prefill domain.AddStaffOpts) (*domain.AddStaffOpts, error) {
	accessible := Accessible()
	opts := prefill

	salary := ""
	if prefill.Salary > 0 {
		salary = strconv.FormatFloat(prefill.Salary, 'f', -1, 64)
	}
	if opts.Role == "" {
		opts.Role = domain.RoleStaff
	}
	if opts.Status == "" {
		opts.Status = domain.StatusActive
	}

	// --- Form 1: Identity ---

	idField := huh.NewInput().
		Title("Staff ID").
		Placeholder("BK-101").
		Value(&opts.ID).
		Validate(required("staff ID"))

	nameField := huh.NewInput().
		Title("Full name").
		Value(&opts.Name).
		Validate(required("name"))

	mobileField := huh.NewInput().
		Title("Mobile").
		Description("Optional. Digits with an optional leading +").
		Value(&opts.Mobile).
		Validate(func(value string) error {
			value = util.NormalizeMobile(value)
			if value == "" {
				return nil
			}
			return util.ValidateMobile(value)
		})

	// --- Form 2: Login ---

	usernameField := huh.NewInput().
		Title("Username").
		Value(&opts.Username).
		Validate(func(value string) error {
			return util.ValidateUsername(util.NormalizeKey(value))
		})

	passwordField := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&opts.Password).
		Validate(util.ValidatePassword)

	confirmPassword := ""
	confirmField := huh.NewInput().
		Title("Confirm password").
		EchoMode(huh.EchoModePassword).
		Value(&confirmPassword).
		Validate(func(value string) error {
			if value != opts.Password {
				return errors.New("passwords do not match")
			}
			return nil
		})

	// --- Form 3: Employment ---

	roleField := huh.NewSelect[string]().
		Title("Role").
		Options(buildRoleOptions(domain.KnownRoles, opts.Role)...).
		Value(&opts.Role)

	salaryField := huh.NewInput().
		Title("Monthly salary").
		Placeholder("0").
		Value(&salary).
		Validate(func(value string) error {
			_, err := ParseSalary(value)
			return err
		})

	statusField := huh.NewSelect[string]().
		Title("Status").
		Options(
			huh.NewOption(domain.StatusActive, domain.StatusActive),
			huh.NewOption(domain.StatusInactive, domain.StatusInactive),
		).
		Value(&opts.Status)

	if err := runForm(accessible,
		huh.NewGroup(idField, nameField, mobileField),
		huh.NewGroup(usernameField, passwordField, confirmField),
		huh.NewGroup(roleField, salaryField, statusField),
	); err != nil {
		return nil, err
	}

	amount, err := ParseSalary(salary)
	if err != nil {
		return nil, err
	}
	opts.Salary = amount

	// --- Summary + Confirm ---

	confirm := true
	if err := runForm(accessible, huh.NewGroup(
		huh.NewNote().
			Title("Review").
			Description(BuildAddSummary(opts)),
		huh.NewConfirm().
			Title("Add this staff member?").
			Affirmative("Add").
			Negative("Cancel").
			Value(&confirm),
	)); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrAborted
	}

	return &opts, nil
}

// SelectStaffForm fetches the roster behind a spinner and lets the user pick
// one or more staff members. It returns the selected IDs.
func SelectStaffForm(title string, list func(ctx context.Context) ([]domain.Staff, error)) ([]string, error) {
	accessible := Accessible()

	var staff []domain.Staff
	fetchErr := spinner.New().
		Title("Fetching staff...").
		Accessible(accessible).
		Output(os.Stderr).
		ActionWithErr(func(ctx context.Context) error {
			var err error
			staff, err = list(ctx)
			return err
		}).
		Run()
	if fetchErr != nil {
		if errors.Is(fetchErr, huh.ErrUserAborted) || errors.Is(fetchErr, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, fetchErr
	}

	if len(staff) == 0 {
		return nil, fmt.Errorf("no staff found")
	}

	var selected []string
	options := BuildStaffOptions(staff)
	field := huh.NewMultiSelect[string]().
		Title(title).
		Options(options...).
		Value(&selected).
		Height(selectHeight(len(options)+2, 14)).
		Validate(func(ids []string) error {
			if len(ids) == 0 {
				return errors.New("select at least one staff member")
			}
			return nil
		})

	if err := runForm(accessible, huh.NewGroup(field)); err != nil {
		return nil, err
	}
	return selected, nil
}

// ConfirmDelete asks the user to confirm deleting the given staff.
func ConfirmDelete(staff []domain.Staff) (bool, error) {
	confirm := false
	title := fmt.Sprintf("Delete %d staff member(s)? This action cannot be undone.", len(staff))
	if len(staff) == 1 {
		title = fmt.Sprintf("Delete %s? This action cannot be undone.", staffOptionLabel(staff[0]))
	}

	err := runForm(Accessible(), huh.NewGroup(
		huh.NewNote().
			Title("Staff to delete").
			Description(BuildDeleteSummary(staff)),
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes, delete").
			Negative("Cancel").
			Value(&confirm),
	))
	if err != nil {
		return false, err
	}
	return confirm, nil
}

// RunWithSpinner runs action behind a huh spinner on stderr.
func RunWithSpinner(title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(Accessible()).
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// ParseSalary parses a salary entered by a user. Blank input is zero;
// thousands separators are accepted; negative values are rejected.
func ParseSalary(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("salary must be a number, got %q", value)
	}
	if amount < 0 {
		return 0, errors.New("salary must not be negative")
	}
	return amount, nil
}

// BuildStaffOptions builds huh select options from the roster.
func BuildStaffOptions(staff []domain.Staff) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(staff))
	for _, s := range staff {
		options = append(options, huh.NewOption(staffOptionLabel(s), s.ID))
	}
	return options
}

func staffOptionLabel(s domain.Staff) string {
	parts := []string{s.ID}
	if s.Name != "" {
		parts = append(parts, s.Name)
	}
	if s.Role != "" {
		parts = append(parts, s.Role)
	}
	parts = append(parts, s.DisplayStatus())
	return strings.Join(parts, " - ")
}

// BuildAddSummary formats new-staff options for the review step. The
// password is never shown.
func BuildAddSummary(opts domain.AddStaffOpts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s\n", strings.TrimSpace(opts.ID))
	fmt.Fprintf(&b, "Name: %s\n", strings.TrimSpace(opts.Name))
	if m := util.NormalizeMobile(opts.Mobile); m != "" {
		fmt.Fprintf(&b, "Mobile: %s\n", m)
	}
	fmt.Fprintf(&b, "Username: %s\n", util.NormalizeKey(opts.Username))
	fmt.Fprintf(&b, "Role: %s\n", opts.Role)
	fmt.Fprintf(&b, "Salary: %s\n", strconv.FormatFloat(opts.Salary, 'f', -1, 64))
	fmt.Fprintf(&b, "Status: %s\n", opts.Status)

	return strings.TrimSpace(b.String())
}

// BuildDeleteSummary lists the staff about to be deleted, one per line.
func BuildDeleteSummary(staff []domain.Staff) string {
	lines := make([]string, 0, len(staff))
	for _, s := range staff {
		lines = append(lines, staffOptionLabel(s))
	}
	return strings.Join(lines, "\n")
}

// buildRoleOptions returns the known roles plus current when it is a custom
// role not in the list.
func buildRoleOptions(known []string, current string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(known)+1)
	found := false
	for _, r := range known {
		if r == current {
			found = true
		}
		options = append(options, huh.NewOption(r, r))
	}
	if current != "" && !found {
		options = append(options, huh.NewOption("Custom: "+current, current))
	}
	return options
}

func required(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
