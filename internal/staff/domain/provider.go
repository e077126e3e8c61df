package domain

import "context"

// Provider is the interface that roster backends must implement.
// Reads come from the sheet API; every mutation is a single webhook call.
type Provider interface {
	// GetDisplayName returns the human-readable backend name.
	GetDisplayName() string

	// ListStaff returns the full roster in sheet order.
	ListStaff(ctx context.Context) ([]Staff, error)

	// AddStaff creates a staff member. opts.PasswordHash is already set.
	AddStaff(ctx context.Context, opts AddStaffOpts) error

	// ChangeStatus sets the status of a staff member.
	ChangeStatus(ctx context.Context, id string, status string) error

	// ResetPassword replaces the password hash of a staff member.
	ResetPassword(ctx context.Context, opts ResetPasswordOpts) error

	// DeleteStaff removes a staff member.
	DeleteStaff(ctx context.Context, id string) error
}
