// Package services provides the staff roster service layer.
//
// The Service type wraps a domain.Provider and adds input normalisation,
// validation, password hashing and default value application before
// delegating to the provider. CLI commands and TUIs construct a Service
// from a resolved provider and call service methods rather than calling the
// provider directly.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/filter"
	"nathanbeddoewebdev/staffctl/internal/swrcache"
	"nathanbeddoewebdev/staffctl/internal/util"
)

// DefaultDeleteConcurrency bounds DeleteMany when the caller passes no limit.
const DefaultDeleteConcurrency = 4

// Service is the roster business logic layer.
type Service struct {
	provider    domain.Provider
	cache       *swrcache.Cache
	hash        HashFunc
	defaultRole string
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for roster reads.
func WithCache(cache *swrcache.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithHasher replaces the bcrypt password hasher.
func WithHasher(fn HashFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.hash = fn
		}
	}
}

// WithDefaultRole sets the role applied to new staff without one.
func WithDefaultRole(role string) Option {
	return func(s *Service) {
		if role = strings.TrimSpace(role); role != "" {
			s.defaultRole = role
		}
	}
}

// New returns a Service backed by the given provider.
func New(provider domain.Provider, opts ...Option) *Service {
	svc := &Service{
		provider:    provider,
		hash:        HashPassword,
		defaultRole: domain.RoleStaff,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ProviderName returns the display name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.GetDisplayName()
}

// DefaultRole returns the role applied to new staff without one.
func (s *Service) DefaultRole() string {
	return s.defaultRole
}

// ListStaff returns the full roster in sheet order.
func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	if s.cache == nil {
		return s.provider.ListStaff(ctx)
	}
	return swrcache.GetOrFetch(s.cache, ctx, s.rosterKey(), s.provider.ListStaff)
}

// Refresh drops any cached roster and reads it again.
func (s *Service) Refresh(ctx context.Context) ([]domain.Staff, error) {
	s.invalidate()
	return s.ListStaff(ctx)
}

// Search lists the roster and applies the filter criteria to it.
func (s *Service) Search(ctx context.Context, c filter.Criteria) ([]domain.Staff, error) {
	all, err := s.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, c), nil
}

// GetStaff returns the staff member with the given ID. IDs compare
// case-insensitively after trimming.
func (s *Service) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	id = normalizeID(id)
	if id == "" {
		return nil, fmt.Errorf("staff ID is required")
	}

	all, err := s.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	return findStaff(all, id)
}

func findStaff(all []domain.Staff, id string) (*domain.Staff, error) {
	for i := range all {
		if util.SameKey(all[i].ID, id) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("staff %q: %w", id, domain.ErrNotFound)
}

// AddStaff validates opts, hashes the password and creates the staff member.
// It returns the opts as sent, with defaults applied and the plaintext
// password cleared.
func (s *Service) AddStaff(ctx context.Context, opts domain.AddStaffOpts) (domain.AddStaffOpts, error) {
	opts, err := s.prepareAdd(opts)
	if err != nil {
		return domain.AddStaffOpts{}, err
	}

	hash, err := s.hash(opts.Password)
	if err != nil {
		return domain.AddStaffOpts{}, fmt.Errorf("failed to hash password: %w", err)
	}
	opts.Password = ""
	opts.PasswordHash = hash

	if err := s.provider.AddStaff(ctx, opts); err != nil {
		return domain.AddStaffOpts{}, err
	}
	slog.Info("staff_mutation", "event", "add", "staff_id", opts.ID, "role", opts.Role)
	s.invalidate()
	return opts, nil
}

// SetStatus sets the status of a staff member to Active or Inactive.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (string, error) {
	id = normalizeID(id)
	if id == "" {
		return "", fmt.Errorf("staff ID is required")
	}
	status, err := normalizeStatus(status)
	if err != nil {
		return "", err
	}
	if status == "" {
		return "", fmt.Errorf("status is required")
	}

	if err := s.provider.ChangeStatus(ctx, id, status); err != nil {
		return "", err
	}
	slog.Info("staff_mutation", "event", "change_status", "staff_id", id, "status", status)
	s.invalidate()
	return status, nil
}

// ToggleStatus flips a staff member between Active and Inactive based on
// the status currently in the roster. The roster is read from the provider,
// never from the cache, so the flip is computed from live data. It returns
// the new status.
func (s *Service) ToggleStatus(ctx context.Context, id string) (string, error) {
	id = normalizeID(id)
	if id == "" {
		return "", fmt.Errorf("staff ID is required")
	}

	all, err := s.provider.ListStaff(ctx)
	if err != nil {
		return "", err
	}
	member, err := findStaff(all, id)
	if err != nil {
		return "", err
	}
	return s.SetStatus(ctx, member.ID, member.NextStatus())
}

// ResetPassword validates and hashes a new password for a staff member.
func (s *Service) ResetPassword(ctx context.Context, id string, password string) error {
	id = normalizeID(id)
	if id == "" {
		return fmt.Errorf("staff ID is required")
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := s.hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.provider.ResetPassword(ctx, domain.ResetPasswordOpts{ID: id, PasswordHash: hash}); err != nil {
		return err
	}
	slog.Info("staff_mutation", "event", "reset_password", "staff_id", id)
	s.invalidate()
	return nil
}

// DeleteStaff removes a single staff member.
func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	id = normalizeID(id)
	if id == "" {
		return fmt.Errorf("staff ID is required")
	}
	if err := s.provider.DeleteStaff(ctx, id); err != nil {
		return err
	}
	slog.Info("staff_mutation", "event", "delete", "staff_id", id)
	s.invalidate()
	return nil
}

// DeleteResult is the outcome of deleting one ID in DeleteMany.
type DeleteResult struct {
	ID  string
	Err error
}

// DeleteMany deletes the given IDs concurrently with at most limit requests
// in flight. Duplicate IDs (after normalisation) are collapsed so no record
// is targeted twice. Every ID is attempted; per-ID failures are reported in
// the results, which follow the order of first appearance.
func (s *Service) DeleteMany(ctx context.Context, ids []string, limit int) ([]DeleteResult, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, fmt.Errorf("at least one staff ID is required")
	}
	if limit <= 0 {
		limit = DefaultDeleteConcurrency
	}

	results := make([]DeleteResult, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range unique {
		results[i].ID = id
		g.Go(func() error {
			results[i].Err = s.provider.DeleteStaff(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	deleted := 0
	for _, r := range results {
		if r.Err == nil {
			deleted++
		}
	}
	slog.Info("staff_mutation", "event", "delete_many", "requested", len(unique), "deleted", deleted)
	if deleted > 0 {
		s.invalidate()
	}
	return results, nil
}

func (s *Service) rosterKey() string {
	return cacheKey(s.provider.GetDisplayName(), "staff")
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(s.rosterKey())
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = normalizeID(id)
		if id == "" {
			continue
		}
		key := util.NormalizeKey(id)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, id)
	}
	return out
}
