package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/staff/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// --- Test helpers ---

// capturedRequest records what the test server received.
type capturedRequest struct {
	Method  string
	Path    string
	Body    map[string]any
	Headers http.Header
}

// newCaptureServer responds with status and body, and records each request.
func newCaptureServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := capturedRequest{Method: r.Method, Path: r.URL.Path, Headers: r.Header.Clone()}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &c.Body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		captured = append(captured, c)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func newTestSheetProvider(t *testing.T, serverURL string) *SheetProvider {
	t.Helper()
	return NewSheetProvider(serverURL, serverURL, "")
}

const rosterJSON = `{
	"success": true,
	"data": [
		["Staff ID", "Name", "Mobile", "Username", "Role", "Status", "Salary"],
		["BK-101", "John", "9876500001", "john", "Manager", "Active", "25000"],
		["BK-102", "Asha", "9876500002", "asha", "Staff"]
	]
}`

// --- ListStaff tests ---

func TestListStaff_HappyPath(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, rosterJSON)
	p := newTestSheetProvider(t, srv.URL)

	staff, err := p.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []domain.Staff{
		{ID: "BK-101", Name: "John", Mobile: "9876500001", Username: "john", Role: "Manager", Status: "Active", Salary: "25000"},
		{ID: "BK-102", Name: "Asha", Mobile: "9876500002", Username: "asha", Role: "Staff", Status: "", Salary: ""},
	}
	if diff := cmp.Diff(want, staff, cmpopts.IgnoreFields(domain.Staff{}, "Fields")); diff != "" {
		t.Errorf("ListStaff mismatch (-want +got):\n%s", diff)
	}

	req := (*captured)[0]
	if req.Method != http.MethodGet || req.Path != "/api/read/Staff_Master" {
		t.Errorf("request = %s %s, want GET /api/read/Staff_Master", req.Method, req.Path)
	}
	if req.Headers.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestListStaff_EmptyData(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `{"success":true,"data":[]}`)
	p := newTestSheetProvider(t, srv.URL)

	staff, err := p.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(staff) != 0 {
		t.Errorf("expected 0 staff, got %d", len(staff))
	}
}

func TestListStaff_MissingDataIsEmpty(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `{"success":true}`)
	p := newTestSheetProvider(t, srv.URL)

	staff, err := p.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(staff) != 0 {
		t.Errorf("expected 0 staff, got %d", len(staff))
	}
}

func TestListStaff_ReportedFailure(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `{"success":false,"message":"sheet Staff_Master not found"}`)
	p := newTestSheetProvider(t, srv.URL)

	_, err := p.ListStaff(context.Background())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "Staff_Master not found") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestListStaff_ReportedFailureWithoutMessage(t *testing.T) {
	for _, body := range []string{
		`{"success":false}`,
		`{"success":false,"data":[["Staff_ID","Name"],["BK-101","John Doe"]]}`,
	} {
		t.Run(body, func(t *testing.T) {
			srv, _ := newCaptureServer(t, http.StatusOK, body)
			p := newTestSheetProvider(t, srv.URL)

			staff, err := p.ListStaff(context.Background())
			if !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
			if staff != nil {
				t.Errorf("expected no staff on failure, got %d", len(staff))
			}
		})
	}
}

func TestListStaff_InvalidJSON(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `<html>oops</html>`)
	p := newTestSheetProvider(t, srv.URL)

	if _, err := p.ListStaff(context.Background()); err == nil {
		t.Fatal("expected error for non-JSON body, got nil")
	}
}

func TestListStaff_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrUnauthorized},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusInternalServerError, domain.ErrUpstream},
		{http.StatusBadGateway, domain.ErrUpstream},
	}

	for _, c := range cases {
		t.Run(http.StatusText(c.status), func(t *testing.T) {
			srv, _ := newCaptureServer(t, c.status, `{"error":"nope"}`)
			p := newTestSheetProvider(t, srv.URL)

			_, err := p.ListStaff(context.Background())
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}
}

// --- Webhook tests ---

func TestAddStaff_PostsPayload(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, ``)
	p := newTestSheetProvider(t, srv.URL)

	err := p.AddStaff(context.Background(), domain.AddStaffOpts{
		ID:           "BK-105",
		Name:         "Ravi",
		Mobile:       "9000000005",
		Username:     "ravi",
		Password:     "plaintext-must-not-leak",
		PasswordHash: "$2a$12$hash",
		Role:         "Staff",
		Salary:       18000,
		Status:       "Active",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := (*captured)[0]
	if req.Method != http.MethodPost || req.Path != "/webhook/add-staff" {
		t.Errorf("request = %s %s, want POST /webhook/add-staff", req.Method, req.Path)
	}
	if ct := req.Headers.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	want := map[string]any{
		"staff_id": "BK-105",
		"name":     "Ravi",
		"mobile":   "9000000005",
		"username": "ravi",
		"password": "$2a$12$hash",
		"role":     "Staff",
		"salary":   float64(18000),
		"status":   "Active",
	}
	if diff := cmp.Diff(want, req.Body); diff != "" {
		t.Errorf("add-staff body mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeStatus_PostsPayload(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, `{"ok":true}`)
	p := newTestSheetProvider(t, srv.URL)

	if err := p.ChangeStatus(context.Background(), "BK-101", "Inactive"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := (*captured)[0]
	if req.Path != "/webhook/change-status" {
		t.Errorf("path = %q, want /webhook/change-status", req.Path)
	}
	want := map[string]any{"staff_id": "BK-101", "status": "Inactive"}
	if diff := cmp.Diff(want, req.Body); diff != "" {
		t.Errorf("change-status body mismatch (-want +got):\n%s", diff)
	}
}

func TestResetPassword_SendsHashOnly(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, ``)
	p := newTestSheetProvider(t, srv.URL)

	err := p.ResetPassword(context.Background(), domain.ResetPasswordOpts{
		ID:           "BK-101",
		PasswordHash: "$2a$12$hash",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := map[string]any{"staff_id": "BK-101", "password": "$2a$12$hash"}
	if diff := cmp.Diff(want, (*captured)[0].Body); diff != "" {
		t.Errorf("reset-password body mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteStaff_PostsPayload(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusNoContent, ``)
	p := newTestSheetProvider(t, srv.URL)

	if err := p.DeleteStaff(context.Background(), "BK-101"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := (*captured)[0]
	if req.Path != "/webhook/delete-staff" {
		t.Errorf("path = %q, want /webhook/delete-staff", req.Path)
	}
	if diff := cmp.Diff(map[string]any{"staff_id": "BK-101"}, req.Body); diff != "" {
		t.Errorf("delete-staff body mismatch (-want +got):\n%s", diff)
	}
}

func TestWebhook_ErrorIncludesBody(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusConflict, `{"message":"username already exists"}`)
	p := newTestSheetProvider(t, srv.URL)

	err := p.AddStaff(context.Background(), domain.AddStaffOpts{ID: "BK-101"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "username already exists") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestWebhook_SendsAPIKey(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK, ``)
	p := NewSheetProvider(srv.URL, srv.URL, "k-123")

	if err := p.DeleteStaff(context.Background(), "BK-101"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := (*captured)[0].Headers.Get("X-Api-Key"); got != "k-123" {
		t.Errorf("X-Api-Key = %q, want %q", got, "k-123")
	}
}

func TestWebhook_UsesSeparateBaseURL(t *testing.T) {
	readSrv, readCaptured := newCaptureServer(t, http.StatusOK, rosterJSON)
	hookSrv, hookCaptured := newCaptureServer(t, http.StatusOK, ``)
	p := NewSheetProvider(readSrv.URL+"/", hookSrv.URL, "")

	if _, err := p.ListStaff(context.Background()); err != nil {
		t.Fatalf("ListStaff error: %v", err)
	}
	if err := p.DeleteStaff(context.Background(), "BK-101"); err != nil {
		t.Fatalf("DeleteStaff error: %v", err)
	}
	if len(*readCaptured) != 1 || len(*hookCaptured) != 1 {
		t.Errorf("expected one request per server, got read=%d hook=%d", len(*readCaptured), len(*hookCaptured))
	}
}

// --- Registry tests ---

func TestRegisterSheet_RequiresAPIBaseURL(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterSheet()

	_, err := Get("sheet", auth.NewMockStore(), config.Endpoints{})
	if err == nil {
		t.Fatal("expected error when api base URL is missing, got nil")
	}
}

func TestRegisterSheet_DefaultsWebhookToAPIBase(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterSheet()

	store := auth.NewMockStore()
	_ = store.SetToken("sheet-apikey", "k-1")

	p, err := Get("SHEET", store, config.Endpoints{APIBaseURL: "https://example.test"})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	sp := p.(*SheetProvider)
	if sp.webhookBaseURL != "https://example.test" {
		t.Errorf("webhookBaseURL = %q, want api base", sp.webhookBaseURL)
	}
	if sp.apiKey != "k-1" {
		t.Errorf("apiKey = %q, want %q", sp.apiKey, "k-1")
	}
}

func TestGet_UnknownProvider(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, err := Get("nope", auth.NewMockStore(), config.Endpoints{}); err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterSheet()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	RegisterSheet()
}
