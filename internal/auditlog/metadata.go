package auditlog

import (
	"context"
	"strings"
)

// Metadata describes what an audited command acted on.
type Metadata struct {
	Provider     string
	ResourceType string
	// ResourceID is a single staff ID, or a comma-separated list for bulk
	// operations.
	ResourceID   string
	ResourceName string
}

// StaffTarget returns metadata for a command acting on one or more staff
// members of the given provider's roster.
func StaffTarget(provider string, ids []string, name string) Metadata {
	return Metadata{
		Provider:     provider,
		ResourceType: ResourceStaff,
		ResourceID:   strings.Join(ids, ","),
		ResourceName: name,
	}
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Non-empty fields of
// meta replace those already attached; empty ones keep the earlier value.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Provider:     pick(meta.Provider, existing.Provider),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
