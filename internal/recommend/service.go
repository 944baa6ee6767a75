package recommend

import (
	"context"
	"errors"
	"time"

	"career-backend/internal/careers"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// UserStore is the part of users.Service the pipeline needs.
type UserStore interface {
	ResolveOrCreate(ctx context.Context, p users.Profile) (users.User, users.Backend, error)
	Persist(ctx context.Context, user users.User, backend users.Backend) (users.User, error)
}

// Generator produces a recommendation for a profile.
type Generator interface {
	Generate(ctx context.Context, in careers.Input) (Result, error)
}

var errNotConfigured = errors.New("recommend service not configured")

// Service runs resolve, generate, append and persist for one request.
type Service struct {
	Users     UserStore
	Generator Generator
	now       func() time.Time
}

func NewService(store UserStore, gen Generator) *Service {
	return &Service{Users: store, Generator: gen, now: time.Now}
}

// Recommend returns a fresh recommendation for p and appends it to the
// user's stored history. Nothing is persisted if ctx is done before the write.
func (s *Service) Recommend(ctx context.Context, p users.Profile) (careers.Recommendation, error) {
	if s == nil || s.Users == nil || s.Generator == nil {
		return careers.Recommendation{}, errNotConfigured
	}
	start := s.clock()
	metrics.IncRecommendRequest()

	rec, err := s.recommend(ctx, p)
	metrics.ObserveRecommendDurationMs(float64(s.clock().Sub(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncRecommendFailed()
		return careers.Recommendation{}, err
	}
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, p users.Profile) (careers.Recommendation, error) {
	user, backend, err := s.Users.ResolveOrCreate(ctx, p)
	if err != nil {
		return careers.Recommendation{}, err
	}

	result, err := s.Generator.Generate(ctx, p.Input())
	if err != nil {
		return careers.Recommendation{}, err
	}
	metrics.IncRecommendSource(result.Source)
	telemetry.Debug("recommend.generated", map[string]any{
		"email":    user.Email,
		"source":   result.Source,
		"attempts": len(result.Attempts),
		"paths":    len(result.Recommendation.CareerPaths),
	})

	if err := ctx.Err(); err != nil {
		return careers.Recommendation{}, err
	}
	user.Recommendations = append(user.Recommendations, result.Recommendation)
	if _, err := s.Users.Persist(ctx, user, backend); err != nil {
		return careers.Recommendation{}, err
	}
	return result.Recommendation, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
