// Package filter implements the roster's client-side search and role filter.
package filter

import (
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
)

// Criteria is the active search term and role selection. The zero value
// matches every staff member.
type Criteria struct {
	// Search is matched case-insensitively as a substring of the name,
	// staff ID, mobile number, or username.
	Search string

	// Role must equal the staff member's role exactly. Empty means any role.
	Role string
}

// IsZero reports whether the criteria match everything.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && c.Role == ""
}

// Apply returns the staff members of source that satisfy both the search
// term and the role filter, in source order. Callers always pass the full
// unfiltered roster so that clearing a criterion restores hidden rows.
func Apply(source []domain.Staff, c Criteria) []domain.Staff {
	term := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]domain.Staff, 0, len(source))
	for _, s := range source {
		if c.Role != "" && s.Role != c.Role {
			continue
		}
		if term != "" && !matchesSearch(s, term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesSearch expects term to be lower-cased already.
func matchesSearch(s domain.Staff, term string) bool {
	for _, field := range []string{s.Name, s.ID, s.Mobile, s.Username} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Roles returns the distinct non-empty roles of source in first-seen order.
func Roles(source []domain.Staff) []string {
	seen := make(map[string]struct{})
	var roles []string
	for _, s := range source {
		if s.Role == "" {
			continue
		}
		if _, ok := seen[s.Role]; ok {
			continue
		}
		seen[s.Role] = struct{}{}
		roles = append(roles, s.Role)
	}
	return roles
}
