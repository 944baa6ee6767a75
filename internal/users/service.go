package users

import (
	"context"
	"errors"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// Backend identifies which store served a request.
type Backend int

const (
	BackendPrimary Backend = iota
	BackendFallback
)

func (b Backend) String() string {
	switch b {
	case BackendPrimary:
		return "primary"
	case BackendFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var errNotConfigured = errors.New("users service not configured")

// Service resolves and persists users across the primary store and the
// flat-file fallback. Primary failures are absorbed by switching to the
// fallback; fallback failures are returned as *StorageError.
type Service struct {
	Primary  Repo
	Fallback Repo
}

// NewService wires the two backends. primary may be nil when no database is configured.
func NewService(primary, fallback Repo) *Service {
	return &Service{Primary: primary, Fallback: fallback}
}

// ResolveOrCreate returns the stored user for p.Email, creating and persisting
// a new one with an empty history when none exists. The returned Backend must
// be passed to Persist for subsequent writes of the same record.
func (s *Service) ResolveOrCreate(ctx context.Context, p Profile) (User, Backend, error) {
	if s == nil || s.Fallback == nil {
		return User{}, BackendFallback, errNotConfigured
	}
	p.Email = NormalizeEmail(p.Email)

	if s.Primary != nil {
		user, err := findOrCreate(ctx, s.Primary, p)
		if err == nil {
			return user, BackendPrimary, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return User{}, BackendPrimary, ctxErr
		}
		degrade("resolve", p.Email, err)
	}

	user, err := findOrCreate(ctx, s.Fallback, p)
	if err != nil {
		return User{}, BackendFallback, err
	}
	return user, BackendFallback, nil
}

// Persist writes user back to backend. A failing primary write is retried
// against the fallback so the caller never sees a primary-store error.
func (s *Service) Persist(ctx context.Context, user User, backend Backend) (User, error) {
	if s == nil || s.Fallback == nil {
		return User{}, errNotConfigured
	}
	user.Email = NormalizeEmail(user.Email)

	if backend == BackendPrimary && s.Primary != nil {
		saved, err := s.Primary.Upsert(ctx, user)
		if err == nil {
			return saved, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return User{}, ctxErr
		}
		degrade("persist", user.Email, err)
	}
	return s.Fallback.Upsert(ctx, user)
}

func findOrCreate(ctx context.Context, repo Repo, p Profile) (User, error) {
	user, err := repo.FindByEmail(ctx, p.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return repo.Upsert(ctx, NewUser(p))
}

func degrade(op, email string, err error) {
	metrics.IncStoreFallback()
	telemetry.Warn("users.primary_unavailable", map[string]any{
		"op":    op,
		"email": email,
		"error": err.Error(),
	})
}
