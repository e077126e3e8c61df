package auditlog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"nathanbeddoewebdev/staffctl/internal/database"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeArgs(t *testing.T) {
	got := SanitizeArgs([]string{"staff", "reset-password", "BK-1", "--password", "hunter22", "--api-key=abc", "-o", "json"})
	want := []string{"staff", "reset-password", "BK-1", "--password", "<redacted>", "--api-key=<redacted>", "-o", "json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SanitizeArgs mismatch (-want +got):\n%s", diff)
	}

	if got := SanitizeArgs([]string{"--password"}); !cmp.Equal(got, []string{"--password", "<redacted>"}) {
		t.Errorf("trailing flag not redacted: %v", got)
	}
}

func TestMetadata_Merges(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{Provider: "sheet", ResourceType: "staff"})
	ctx = WithMetadata(ctx, Metadata{ResourceID: "BK-1"})

	want := Metadata{Provider: "sheet", ResourceType: "staff", ResourceID: "BK-1"}
	if diff := cmp.Diff(want, MetadataFromContext(ctx)); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEntry(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{Provider: "sheet", ResourceType: "staff", ResourceID: "BK-1", ResourceName: "John"})
	start := time.Now().Add(-50 * time.Millisecond)

	entry := NewEntry(ctx, "staffctl staff add", []string{"--password", "s3cret"}, start, errors.New("conflict"))

	if entry.Outcome != OutcomeError || entry.Detail != "conflict" {
		t.Errorf("outcome/detail = %q/%q", entry.Outcome, entry.Detail)
	}
	if entry.Args != "--password <redacted>" {
		t.Errorf("Args = %q", entry.Args)
	}
	if entry.ResourceID != "BK-1" || entry.Provider != "sheet" {
		t.Errorf("metadata not copied: %+v", entry)
	}
	if entry.DurationMs < 50 {
		t.Errorf("DurationMs = %d, want >= 50", entry.DurationMs)
	}
}

func TestWrite_UsesDefaultPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffctl.db")
	database.SetPath(path)
	t.Cleanup(database.ResetPath)

	Write(NewEntry(context.Background(), "staffctl staff delete", nil, time.Now(), nil))

	repo, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Command != "staffctl staff delete" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
