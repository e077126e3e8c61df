package filter

import (
	"testing"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"

	"github.com/google/go-cmp/cmp"
)

func roster() []domain.Staff {
	return []domain.Staff{
		{ID: "BK-101", Name: "John Mathew", Mobile: "9876500001", Username: "john", Role: "Manager"},
		{ID: "BK-102", Name: "Asha Rao", Mobile: "9876500002", Username: "asha.r", Role: "Staff"},
		{ID: "BK-103", Name: "Johnny Dsouza", Mobile: "9123400003", Username: "jd", Role: "Staff"},
		{ID: "BK-104", Name: "Meera", Mobile: "9123400004", Username: "meera", Role: "Admin"},
	}
}

func ids(list []domain.Staff) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestApply_ZeroCriteriaReturnsAll(t *testing.T) {
	got := Apply(roster(), Criteria{})
	if diff := cmp.Diff([]string{"BK-101", "BK-102", "BK-103", "BK-104"}, ids(got)); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(roster(), Criteria{Search: "JOHN"})
	if diff := cmp.Diff([]string{"BK-101", "BK-103"}, ids(got)); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_SearchCoversDesignatedFields(t *testing.T) {
	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"by id", "bk-104", []string{"BK-104"}},
		{"by mobile", "91234", []string{"BK-103", "BK-104"}},
		{"by username", "asha.r", []string{"BK-102"}},
		{"by name", "rao", []string{"BK-102"}},
		{"role is not searched", "manager", []string{}},
		{"surrounding space ignored", "  meera ", []string{"BK-104"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Apply(roster(), Criteria{Search: c.search})
			if diff := cmp.Diff(c.want, ids(got)); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_RoleIsExactMatch(t *testing.T) {
	if got := Apply(roster(), Criteria{Role: "Staff"}); len(got) != 2 {
		t.Errorf("expected 2 Staff, got %d", len(got))
	}
	if got := Apply(roster(), Criteria{Role: "staff"}); len(got) != 0 {
		t.Errorf("expected role match to be case-sensitive, got %d", len(got))
	}
}

func TestApply_RoleAndSearchCombine(t *testing.T) {
	got := Apply(roster(), Criteria{Search: "john", Role: "Staff"})
	if diff := cmp.Diff([]string{"BK-103"}, ids(got)); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_RecomputesFromSource(t *testing.T) {
	source := roster()

	narrowed := Apply(source, Criteria{Search: "meera"})
	if len(narrowed) != 1 {
		t.Fatalf("expected 1 match, got %d", len(narrowed))
	}

	widened := Apply(source, Criteria{Search: "bk"})
	if len(widened) != len(source) {
		t.Errorf("expected all %d rows after widening, got %d", len(source), len(widened))
	}
	if len(source) != 4 {
		t.Errorf("source was modified: len=%d", len(source))
	}
}

func TestRoles(t *testing.T) {
	got := Roles(append(roster(), domain.Staff{ID: "BK-105"}))
	if diff := cmp.Diff([]string{"Manager", "Staff", "Admin"}, got); diff != "" {
		t.Errorf("Roles mismatch (-want +got):\n%s", diff)
	}
}

func TestCriteriaIsZero(t *testing.T) {
	if !(Criteria{Search: "   "}).IsZero() {
		t.Error("expected blank search to be zero")
	}
	if (Criteria{Role: "Admin"}).IsZero() {
		t.Error("expected role filter to be non-zero")
	}
}
