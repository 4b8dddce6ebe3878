package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"quilthub/internal/logging"
	"quilthub/internal/model"
	"quilthub/internal/repository"
	"quilthub/internal/resolver"
	"quilthub/internal/slug"
)

var (
	// ErrNotFound means no directory row matches the slug.
	ErrNotFound = errors.New("profile not found")
	// ErrUnavailable means the directory document could not be fetched or parsed.
	// Callers present it exactly like ErrNotFound.
	ErrUnavailable = errors.New("directory unavailable")
)

const (
	defaultLimit  = 10
	maxLimit      = 100
	recordTimeout = 2 * time.Second
)

// RecordResolver is implemented by *resolver.Resolver.
type RecordResolver interface {
	Resolve(ctx context.Context, slug string) (*model.Record, error)
}

// LookupStatsResult is the service-level DTO for paginated lookup counters.
type LookupStatsResult struct {
	Items []model.LookupStat `json:"data"`
	Total int                `json:"total"`
}

// ProfileService defines the use cases behind the share pages.
type ProfileService interface {
	// Lookup returns the record for slug, ErrNotFound, or ErrUnavailable.
	Lookup(ctx context.Context, slug string) (*model.Record, error)

	// Stats returns recorded lookup counters using limit/offset.
	Stats(ctx context.Context, limit, offset int) (*LookupStatsResult, error)
}

// profileService is a concrete implementation of ProfileService.
type profileService struct {
	resolver RecordResolver
	repo     repository.LookupRepository
	log      *zap.Logger
	lookups  *prometheus.CounterVec
	now      func() time.Time
}

// NewProfileService constructs a ProfileService. reg may be nil, in which
// case the lookup counter is kept but not exported.
func NewProfileService(res RecordResolver, repo repository.LookupRepository, log *zap.Logger, reg prometheus.Registerer) (ProfileService, error) {
	if repo == nil {
		repo = repository.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	lookups, err := newLookupCounter(reg)
	if err != nil {
		return nil, err
	}
	return &profileService{
		resolver: res,
		repo:     repo,
		log:      log,
		lookups:  lookups,
		now:      time.Now,
	}, nil
}

func newLookupCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_lookups_total",
			Help: "Total number of profile lookups by outcome.",
		},
		[]string{"outcome"},
	)
	for _, o := range model.Outcomes {
		c.WithLabelValues(string(o))
	}
	if reg == nil {
		return c, nil
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (s *profileService) Lookup(ctx context.Context, target string) (*model.Record, error) {
	key := slug.Slugify(target)
	log := logging.For(ctx, s.log).With(zap.String("slug", key))

	rec, err := s.resolver.Resolve(ctx, target)
	outcome := resolver.Classify(err)
	s.lookups.WithLabelValues(string(outcome)).Inc()

	switch outcome {
	case model.OutcomeResolved:
		log.Debug("profile_resolved", zap.String("name", rec.Name))
	case model.OutcomeFetchFailed:
		log.Error("profile_lookup_fetch_failed", zap.Error(err))
	case model.OutcomeParseFailed:
		log.Warn("profile_lookup_parse_failed", zap.Error(err))
	default:
		log.Info("profile_not_found")
	}

	if key != "" {
		s.record(ctx, log, key, outcome)
	}

	switch outcome {
	case model.OutcomeResolved:
		return rec, nil
	case model.OutcomeFetchFailed, model.OutcomeParseFailed:
		return nil, errors.Join(ErrUnavailable, err)
	default:
		return nil, ErrNotFound
	}
}

// record stores the outcome best-effort; failures are only logged.
func (s *profileService) record(ctx context.Context, log *zap.Logger, key string, outcome model.Outcome) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := s.repo.Record(ctx, key, outcome, s.now().UTC()); err != nil {
		log.Warn("profile_lookup_record_failed", zap.String("outcome", string(outcome)), zap.Error(err))
	}
}

// Stats returns paginated lookup counters without exposing repository types.
func (s *profileService) Stats(ctx context.Context, limit, offset int) (*LookupStatsResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &LookupStatsResult{Items: res.Items, Total: res.Total}, nil
}
