package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/table"
)

// Normalized column names of the Staff_Master sheet.
const (
	FieldID       = "Staff_ID"
	FieldName     = "Name"
	FieldMobile   = "Mobile"
	FieldUsername = "Username"
	FieldRole     = "Role"
	FieldStatus   = "Status"
	FieldSalary   = "Salary"
	FieldJoinDate = "Joining_Date"

	// FieldPassword holds the stored bcrypt hash. It is never displayed.
	FieldPassword = "Password"
)

// Status values understood by the change-status webhook.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Well-known roles. The sheet accepts any role text; these feed form
// options and the default for new staff.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
)

// KnownRoles lists the roles offered by interactive forms.
var KnownRoles = []string{RoleAdmin, RoleManager, RoleStaff}

// Staff is a typed view over one normalized roster row.
type Staff struct {
	ID       string `json:"staff_id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	// Salary is the raw cell text. Use SalaryAmount for the number.
	Salary string `json:"salary"`

	JoinDate string `json:"joining_date,omitempty"`

	// Fields holds every column of the source row, including ones this
	// struct does not model.
	Fields table.Record `json:"fields,omitempty"`
}

// MarshalJSON encodes the staff member with the password column removed
// from Fields.
func (s Staff) MarshalJSON() ([]byte, error) {
	type plain Staff
	out := plain(s)
	if _, ok := s.Fields[FieldPassword]; ok {
		out.Fields = make(table.Record, len(s.Fields)-1)
		for k, v := range s.Fields {
			if k != FieldPassword {
				out.Fields[k] = v
			}
		}
	}
	return json.Marshal(out)
}

// FromRecord builds a Staff from a normalized roster record.
func FromRecord(rec table.Record) Staff {
	return Staff{
		ID:       strings.TrimSpace(rec.Get(FieldID)),
		Name:     rec.Get(FieldName),
		Mobile:   rec.Get(FieldMobile),
		Username: rec.Get(FieldUsername),
		Role:     rec.Get(FieldRole),
		Status:   rec.Get(FieldStatus),
		Salary:   rec.Get(FieldSalary),
		JoinDate: rec.Get(FieldJoinDate),
		Fields:   rec,
	}
}

// FromRecords converts every record, preserving order.
func FromRecords(records []table.Record) []Staff {
	out := make([]Staff, 0, len(records))
	for _, rec := range records {
		out = append(out, FromRecord(rec))
	}
	return out
}

// SalaryAmount parses the salary cell. Thousands separators and a leading
// currency symbol are tolerated. ok is false when the cell is empty or not
// numeric.
func (s Staff) SalaryAmount() (float64, bool) {
	raw := strings.TrimSpace(s.Salary)
	raw = strings.TrimLeft(raw, "₹$€£ ")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsActive reports whether the staff member is active. Rows with an empty
// status are treated as active, matching how the sheet seeds new rows.
func (s Staff) IsActive() bool {
	status := strings.TrimSpace(s.Status)
	return status == "" || strings.EqualFold(status, StatusActive)
}

// NextStatus returns the status a toggle moves to.
func (s Staff) NextStatus() string {
	if s.IsActive() {
		return StatusInactive
	}
	return StatusActive
}

// DisplayStatus returns the status with the implicit default filled in.
func (s Staff) DisplayStatus() string {
	if strings.TrimSpace(s.Status) == "" {
		return StatusActive
	}
	return s.Status
}

var modelledFields = map[string]bool{
	FieldID:       true,
	FieldName:     true,
	FieldMobile:   true,
	FieldUsername: true,
	FieldRole:     true,
	FieldStatus:   true,
	FieldSalary:   true,
	FieldJoinDate: true,
	FieldPassword: true,
}

// ExtraFields returns, sorted, the names of source columns that have no
// typed field. The password column is always excluded.
func (s Staff) ExtraFields() []string {
	var keys []string
	for k := range s.Fields {
		if k != "" && !modelledFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
