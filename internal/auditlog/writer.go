package auditlog

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Annotation marks a cobra command whose runs are recorded. Commands set
// Annotations[Annotation] = "true".
const Annotation = "auditlog"

// NewEntry builds an audit entry for a finished command. Resource details
// come from metadata attached to ctx; args are sanitized before storage.
func NewEntry(ctx context.Context, command string, args []string, start time.Time, err error) *AuditEntry {
	meta := MetadataFromContext(ctx)
	entry := &AuditEntry{
		Timestamp:    start.UTC(),
		Command:      command,
		Args:         strings.Join(SanitizeArgs(args), " "),
		Provider:     meta.Provider,
		ResourceType: meta.ResourceType,
		ResourceID:   meta.ResourceID,
		ResourceName: meta.ResourceName,
		DurationMs:   time.Since(start).Milliseconds(),
		Outcome:      OutcomeSuccess,
	}
	if err != nil {
		entry.Outcome = OutcomeError
		entry.Detail = err.Error()
	}
	return entry
}

// Write saves entry to the default audit database. It is best effort:
// failures are logged at debug and never surface to the user.
func Write(entry *AuditEntry) {
	repo, err := Open()
	if err != nil {
		slog.Debug("audit_write_failed", "stage", "open", "error", err)
		return
	}
	defer repo.Close()

	if err := repo.Save(entry); err != nil {
		slog.Debug("audit_write_failed", "stage", "save", "error", err)
	}
}
