package auditlog

import (
	"strings"
	"time"
)

// Outcome values stored with each entry.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// ResourceStaff is the resource type of roster mutations.
const ResourceStaff = "staff"

// AuditEntry represents a persisted audit event.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// StaffIDs splits ResourceID into the staff IDs the entry touched.
func (e AuditEntry) StaffIDs() []string {
	if e.ResourceID == "" {
		return nil
	}
	parts := strings.Split(e.ResourceID, ",")
	ids := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
