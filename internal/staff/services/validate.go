package services

import (
	"fmt"
	"math"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/util"
)

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// normalizeStatus maps any casing of a known status onto its canonical
// spelling. An empty status is returned unchanged.
func normalizeStatus(status string) (string, error) {
	status = strings.TrimSpace(status)
	switch {
	case status == "":
		return "", nil
	case strings.EqualFold(status, domain.StatusActive):
		return domain.StatusActive, nil
	case strings.EqualFold(status, domain.StatusInactive):
		return domain.StatusInactive, nil
	}
	return "", fmt.Errorf("unsupported status %q (want %s or %s)", status, domain.StatusActive, domain.StatusInactive)
}

// normalizeRole maps a known role onto its canonical spelling and keeps any
// other role text as entered.
func normalizeRole(role string) string {
	role = strings.TrimSpace(role)
	for _, known := range domain.KnownRoles {
		if strings.EqualFold(role, known) {
			return known
		}
	}
	return role
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password is required")
	}
	return util.ValidatePassword(password)
}

// prepareAdd normalises opts, applies defaults and validates every field.
func (s *Service) prepareAdd(opts domain.AddStaffOpts) (domain.AddStaffOpts, error) {
	opts.ID = normalizeID(opts.ID)
	if opts.ID == "" {
		return opts, fmt.Errorf("staff ID is required")
	}

	opts.Name = strings.TrimSpace(opts.Name)
	if opts.Name == "" {
		return opts, fmt.Errorf("name is required")
	}

	opts.Mobile = util.NormalizeMobile(opts.Mobile)
	if opts.Mobile != "" {
		if err := util.ValidateMobile(opts.Mobile); err != nil {
			return opts, err
		}
	}

	opts.Username = util.NormalizeKey(opts.Username)
	if err := util.ValidateUsername(opts.Username); err != nil {
		return opts, err
	}

	if err := validatePassword(opts.Password); err != nil {
		return opts, err
	}

	if math.IsNaN(opts.Salary) || math.IsInf(opts.Salary, 0) || opts.Salary < 0 {
		return opts, fmt.Errorf("salary must be a non-negative number")
	}

	opts.Role = normalizeRole(opts.Role)
	if opts.Role == "" {
		opts.Role = s.defaultRole
	}

	status, err := normalizeStatus(opts.Status)
	if err != nil {
		return opts, err
	}
	if status == "" {
		status = domain.StatusActive
	}
	opts.Status = status

	return opts, nil
}
