package domain

// AddStaffOpts holds the parameters for creating a staff member.
type AddStaffOpts struct {
	// ID is the roster identifier (e.g. "BK-101"). Required.
	ID string

	// Name is the display name. Required.
	Name string

	// Mobile is the contact number, digits with an optional leading "+".
	Mobile string

	// Username is the login name. Required; stored lower-case.
	Username string

	// Password is the plaintext password. The service layer hashes it
	// before it reaches a provider; providers only ever see PasswordHash.
	Password string

	// PasswordHash is the bcrypt hash sent to the backend.
	PasswordHash string

	// Role defaults to RoleStaff when empty.
	Role string

	// Salary is the monthly salary.
	Salary float64

	// Status defaults to StatusActive when empty.
	Status string
}

// ResetPasswordOpts holds the parameters for a password reset. It carries
// only the bcrypt hash; plaintext never leaves the service layer.
type ResetPasswordOpts struct {
	ID           string
	PasswordHash string
}
