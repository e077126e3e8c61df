package tui

import (
	"errors"
	"strings"
	"testing"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/filter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func testRoster() []domain.Staff {
	return []domain.Staff{
		{ID: "BK-101", Name: "John Carter", Mobile: "9876543210", Username: "john", Role: "Manager", Status: "Active"},
		{ID: "BK-102", Name: "Asha Rao", Mobile: "9123456780", Username: "asha", Role: "Staff", Status: "Inactive"},
		{ID: "BK-103", Name: "Ravi Kumar", Mobile: "9000000001", Username: "ravi", Role: "Staff"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedList(t *testing.T, initial filter.Criteria) staffListModel {
	t.Helper()
	m := newStaffListModel(nil, "Sheet", initial, 120, 40)
	updated, _ := m.Update(staffLoadedMsg{staff: testRoster()})
	return updated.(staffListModel)
}

func ids(staff []domain.Staff) []string {
	out := make([]string, 0, len(staff))
	for _, s := range staff {
		out = append(out, s.ID)
	}
	return out
}

func send(m staffListModel, msgs ...tea.Msg) (staffListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(staffListModel)
	}
	return m, cmd
}

func TestStaffList_LoadedAppliesInitialFilter(t *testing.T) {
	m := loadedList(t, filter.Criteria{Role: "Staff"})

	if diff := cmp.Diff([]string{"BK-102", "BK-103"}, ids(m.filtered)); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
	if m.loading {
		t.Error("expected loading to be false after load")
	}
	if m.status != "3 staff" {
		t.Errorf("status = %q, want %q", m.status, "3 staff")
	}
}

func TestStaffList_RoleCycle(t *testing.T) {
	m := loadedList(t, filter.Criteria{})

	if diff := cmp.Diff([]string{"", "Manager", "Staff"}, m.roleTypes); diff != "" {
		t.Fatalf("roleTypes mismatch (-want +got):\n%s", diff)
	}

	m, _ = send(m, keyRunes("f"))
	if m.role != "Manager" || len(m.filtered) != 1 {
		t.Errorf("after first cycle role=%q filtered=%v", m.role, ids(m.filtered))
	}

	m, _ = send(m, keyRunes("f"), keyRunes("f"))
	if m.role != "" || len(m.filtered) != 3 {
		t.Errorf("expected wrap to all roles, got role=%q filtered=%v", m.role, ids(m.filtered))
	}
}

func TestStaffList_SearchIsLiveAndRecomputedFromSource(t *testing.T) {
	m := loadedList(t, filter.Criteria{})

	m, _ = send(m, keyRunes("/"))
	if !m.searching {
		t.Fatal("expected search mode after /")
	}

	m, _ = send(m, keyRunes("a"), keyRunes("s"), keyRunes("h"))
	if diff := cmp.Diff([]string{"BK-102"}, ids(m.filtered)); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}

	// Shortening the query widens the result again.
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if diff := cmp.Diff([]string{"BK-101", "BK-102", "BK-103"}, ids(m.filtered)); diff != "" {
		t.Errorf("after backspace (-want +got):\n%s", diff)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Error("expected enter to leave search mode")
	}
	if m.search.Value() != "a" {
		t.Errorf("search = %q, want %q", m.search.Value(), "a")
	}

	// esc outside search mode clears the query before quitting.
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.search.Value() != "" || cmd != nil {
		t.Errorf("expected esc to clear search without navigation, search=%q", m.search.Value())
	}
}

func TestStaffList_SearchMatchesMobile(t *testing.T) {
	m := loadedList(t, filter.Criteria{Search: "900000"})
	if diff := cmp.Diff([]string{"BK-103"}, ids(m.filtered)); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
}

func TestStaffList_ActionKeysEmitMessages(t *testing.T) {
	m := loadedList(t, filter.Criteria{})
	m, _ = send(m, keyRunes("j"))

	_, cmd := send(m, keyRunes("s"))
	if cmd == nil {
		t.Fatal("expected command for toggle")
	}
	toggle, ok := cmd().(staffToggleConfirmedMsg)
	if !ok || toggle.staff.ID != "BK-102" {
		t.Errorf("toggle msg = %#v, want staff BK-102", toggle)
	}

	_, cmd = send(m, keyRunes("d"))
	if del, ok := cmd().(staffNavigateToDeleteMsg); !ok || del.staff.ID != "BK-102" {
		t.Errorf("delete msg = %#v, want staff BK-102", del)
	}

	_, cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if show, ok := cmd().(staffNavigateToShowMsg); !ok || show.staff.ID != "BK-102" {
		t.Errorf("show msg = %#v, want staff BK-102", show)
	}
}

func TestStaffList_CursorClampedWhenFilterShrinks(t *testing.T) {
	m := loadedList(t, filter.Criteria{})
	m, _ = send(m, keyRunes("G"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	m, _ = send(m, keyRunes("f")) // Manager: one row
	if m.cursor != 0 {
		t.Errorf("cursor = %d after filter, want 0", m.cursor)
	}
}

func TestStaffList_ErrorShownInStatus(t *testing.T) {
	m := newStaffListModel(nil, "Sheet", filter.Criteria{}, 120, 40)
	m, _ = send(m, staffErrorMsg{err: errors.New("sheet api returned 500")})

	if !m.statusIsError || m.err == nil {
		t.Fatal("expected error state")
	}
	if !strings.Contains(m.View(), "sheet api returned 500") {
		t.Error("expected error in rendered view")
	}
}

func TestStaffDelete_DefaultsToCancel(t *testing.T) {
	m := newStaffDeleteModel(testRoster()[0], "Sheet", 80, 24)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(staffNavigateBackMsg); !ok {
		t.Fatal("expected enter on default selection to cancel")
	}

	m = updated.(staffDeleteModel)
	updated, _ = m.Update(keyRunes("h"))
	_, cmd = updated.(staffDeleteModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := cmd().(staffDeleteConfirmedMsg); !ok || msg.staff.ID != "BK-101" {
		t.Errorf("expected delete confirmation for BK-101, got %#v", msg)
	}
}

func TestDetailFields_IncludesExtraColumns(t *testing.T) {
	s := domain.Staff{
		ID:   "BK-1",
		Name: "A",
		Fields: map[string]string{
			domain.FieldID:   "BK-1",
			domain.FieldName: "A",
			"Branch":         "Pune",
			"Aadhaar_No":     "",
		},
	}

	fields := detailFields(s)
	last := fields[len(fields)-2:]
	want := []detailField{{"Aadhaar_No", "—"}, {"Branch", "Pune"}}
	if diff := cmp.Diff(want, last, cmp.AllowUnexported(detailField{})); diff != "" {
		t.Errorf("extra fields mismatch (-want +got):\n%s", diff)
	}
}

func TestStaffApp_ActionErrorThenDismiss(t *testing.T) {
	m := newStaffAppModel(nil, "Sheet", filter.Criteria{}, nil)
	m.width, m.height = 100, 30

	updated, _ := m.Update(staffDeleteResultMsg{staff: testRoster()[0], err: domain.ErrNotFound})
	m = updated.(staffAppModel)
	if !m.actionIsError || !strings.Contains(m.actionStatus, "not found") {
		t.Fatalf("expected action error, got %q", m.actionStatus)
	}

	m.view = staffAppViewAction
	updated, _ = m.Update(keyRunes("x"))
	if updated.(staffAppModel).view != staffAppViewList {
		t.Error("expected key press to dismiss the failed action")
	}
}

func TestStaffApp_SuccessNotifiesAndReloads(t *testing.T) {
	var got []string
	m := newStaffAppModel(nil, "Sheet", filter.Criteria{}, func(action, id string) {
		got = append(got, action+":"+id)
	})

	updated, cmd := m.Update(staffToggleResultMsg{staff: testRoster()[0], status: domain.StatusInactive})
	m = updated.(staffAppModel)

	if diff := cmp.Diff([]string{"status:BK-101"}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if cmd == nil || !m.list.loading {
		t.Error("expected list reload after success")
	}
	if m.list.persistentStatus != "BK-101 is now Inactive" {
		t.Errorf("persistentStatus = %q", m.list.persistentStatus)
	}
}
