package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/staffctl/internal/config"
	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/table"

	"github.com/google/uuid"
)

const (
	// SheetProviderName is the registry name of the built-in backend.
	SheetProviderName = "sheet"

	sheetTimeout     = 30 * time.Second
	sheetAPIKeyStore = "sheet-apikey"

	readPath = "/api/read/Staff_Master"

	addStaffPath      = "/webhook/add-staff"
	changeStatusPath  = "/webhook/change-status"
	resetPasswordPath = "/webhook/reset-password"
	deleteStaffPath   = "/webhook/delete-staff"

	// maxErrorBody bounds how much of a failed response is kept for the
	// error message.
	maxErrorBody = 4 << 10
)

// Compile-time check that SheetProvider satisfies domain.Provider.
var _ domain.Provider = (*SheetProvider)(nil)

// SheetProvider reads the roster from the sheet API and mutates it through
// webhook endpoints.
type SheetProvider struct {
	apiBaseURL     string
	webhookBaseURL string
	apiKey         string
	client         *http.Client
}

// NewSheetProvider creates a SheetProvider. apiKey may be empty when the
// backend does not require one.
func NewSheetProvider(apiBaseURL, webhookBaseURL, apiKey string) *SheetProvider {
	return &SheetProvider{
		apiBaseURL:     strings.TrimRight(apiBaseURL, "/"),
		webhookBaseURL: strings.TrimRight(webhookBaseURL, "/"),
		apiKey:         apiKey,
		client:         &http.Client{Timeout: sheetTimeout},
	}
}

// RegisterSheet registers the sheet provider factory. The API key is read
// from the sheet-apikey keychain entry and is optional.
func RegisterSheet() {
	Register(SheetProviderName, func(store auth.Store, endpoints config.Endpoints) (domain.Provider, error) {
		if endpoints.APIBaseURL == "" {
			return nil, fmt.Errorf("sheet: api base URL is not configured (run 'staffctl config set api-base-url <url>')")
		}
		webhookBase := endpoints.WebhookBaseURL
		if webhookBase == "" {
			webhookBase = endpoints.APIBaseURL
		}

		apiKey, err := store.GetToken(sheetAPIKeyStore)
		if err != nil && !errors.Is(err, auth.ErrTokenNotFound) {
			return nil, fmt.Errorf("sheet auth: %w", err)
		}
		return NewSheetProvider(endpoints.APIBaseURL, webhookBase, apiKey), nil
	})
}

// GetDisplayName returns the human-readable provider name.
func (p *SheetProvider) GetDisplayName() string {
	return "Sheet"
}

// --- Webhook request bodies ---

type addStaffRequest struct {
	StaffID  string  `json:"staff_id"`
	Name     string  `json:"name"`
	Mobile   string  `json:"mobile"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Salary   float64 `json:"salary"`
	Status   string  `json:"status"`
}

type changeStatusRequest struct {
	StaffID string `json:"staff_id"`
	Status  string `json:"status"`
}

type resetPasswordRequest struct {
	StaffID  string `json:"staff_id"`
	Password string `json:"password"`
}

type deleteStaffRequest struct {
	StaffID string `json:"staff_id"`
}

// --- HTTP helpers ---

// do sends the request and returns the response body for 2xx statuses.
// Any other status is classified into a domain sentinel.
func (p *SheetProvider) do(req *http.Request) ([]byte, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-Api-Key", p.apiKey)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		slog.Debug("sheet request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("sheet: request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("sheet request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet: failed to read response: %w", err)
	}
	return body, nil
}

// post sends a JSON webhook call. The response body carries no contract
// and is discarded.
func (p *SheetProvider) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("sheet: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookBaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("sheet: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = p.do(req)
	return err
}

// statusError converts a non-2xx status into a domain sentinel, keeping a
// short excerpt of the response for context.
func statusError(status int, body []byte) error {
	var sentinel error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = domain.ErrUnauthorized
	case status == http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case status == http.StatusConflict:
		sentinel = domain.ErrConflict
	case status == http.StatusTooManyRequests:
		sentinel = domain.ErrRateLimited
	default:
		sentinel = domain.ErrUpstream
	}

	detail := table.Message(body)
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	if detail == "" {
		return fmt.Errorf("%w: HTTP %d", sentinel, status)
	}
	return fmt.Errorf("%w: HTTP %d: %s", sentinel, status, detail)
}

// --- Provider implementation ---

// ListStaff fetches and normalizes the Staff_Master sheet.
func (p *SheetProvider) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+readPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: sheet: failed to build request: %w", err)
	}

	body, err := p.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	raw, err := table.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	if table.ReportedFailure(body) {
		if msg := table.Message(body); msg != "" {
			return nil, fmt.Errorf("failed to list staff: %w: %s", domain.ErrUpstream, msg)
		}
		return nil, fmt.Errorf("failed to list staff: %w", domain.ErrUpstream)
	}

	return domain.FromRecords(table.Normalize(raw)), nil
}

// AddStaff calls the add-staff webhook.
func (p *SheetProvider) AddStaff(ctx context.Context, opts domain.AddStaffOpts) error {
	body := addStaffRequest{
		StaffID:  opts.ID,
		Name:     opts.Name,
		Mobile:   opts.Mobile,
		Username: opts.Username,
		Password: opts.PasswordHash,
		Role:     opts.Role,
		Salary:   opts.Salary,
		Status:   opts.Status,
	}
	if err := p.post(ctx, addStaffPath, body); err != nil {
		return fmt.Errorf("failed to add staff %q: %w", opts.ID, err)
	}
	return nil
}

// ChangeStatus calls the change-status webhook.
func (p *SheetProvider) ChangeStatus(ctx context.Context, id string, status string) error {
	if err := p.post(ctx, changeStatusPath, changeStatusRequest{StaffID: id, Status: status}); err != nil {
		return fmt.Errorf("failed to change status of %q: %w", id, err)
	}
	return nil
}

// ResetPassword calls the reset-password webhook.
func (p *SheetProvider) ResetPassword(ctx context.Context, opts domain.ResetPasswordOpts) error {
	if err := p.post(ctx, resetPasswordPath, resetPasswordRequest{StaffID: opts.ID, Password: opts.PasswordHash}); err != nil {
		return fmt.Errorf("failed to reset password of %q: %w", opts.ID, err)
	}
	return nil
}

// DeleteStaff calls the delete-staff webhook.
func (p *SheetProvider) DeleteStaff(ctx context.Context, id string) error {
	if err := p.post(ctx, deleteStaffPath, deleteStaffRequest{StaffID: id}); err != nil {
		return fmt.Errorf("failed to delete staff %q: %w", id, err)
	}
	return nil
}
