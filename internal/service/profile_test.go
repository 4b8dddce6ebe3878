package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quilthub/internal/logging"
	"quilthub/internal/model"
	"quilthub/internal/repository"
	repoMocks "quilthub/internal/repository/mocks"
	resolverMocks "quilthub/internal/resolver/mocks"
	"quilthub/internal/resolver"
	"quilthub/internal/sheet"
	"quilthub/internal/source"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, res RecordResolver, repo repository.LookupRepository) (*profileService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	svc, err := NewProfileService(res, repo, zap.New(core), prometheus.NewRegistry())
	require.NoError(t, err)
	ps := svc.(*profileService)
	ps.now = func() time.Time { return fixedNow }
	return ps, logs
}

func TestProfileService_Lookup(t *testing.T) {
	ctx := context.Background()
	jane := &model.Record{Name: "Jane's Quilts"}

	tests := []struct {
		name        string
		slug        string
		resolveRec  *model.Record
		resolveErr  error
		wantOutcome model.Outcome
		wantErr     error
		wantLevel   zapcore.Level
		wantMsg     string
	}{
		{
			name:        "resolved",
			slug:        "janes-quilts",
			resolveRec:  jane,
			wantOutcome: model.OutcomeResolved,
			wantLevel:   zapcore.DebugLevel,
			wantMsg:     "profile_resolved",
		},
		{
			name:        "not found",
			slug:        "nonexistent",
			resolveErr:  resolver.ErrNotFound,
			wantOutcome: model.OutcomeNotFound,
			wantErr:     ErrNotFound,
			wantLevel:   zapcore.InfoLevel,
			wantMsg:     "profile_not_found",
		},
		{
			name:        "fetch failure",
			slug:        "janes-quilts",
			resolveErr:  fmt.Errorf("%w: unexpected status 503", source.ErrFetch),
			wantOutcome: model.OutcomeFetchFailed,
			wantErr:     ErrUnavailable,
			wantLevel:   zapcore.ErrorLevel,
			wantMsg:     "profile_lookup_fetch_failed",
		},
		{
			name:        "parse failure",
			slug:        "janes-quilts",
			resolveErr:  fmt.Errorf("%w: bare quote", sheet.ErrMalformed),
			wantOutcome: model.OutcomeParseFailed,
			wantErr:     ErrUnavailable,
			wantLevel:   zapcore.WarnLevel,
			wantMsg:     "profile_lookup_parse_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRes := new(resolverMocks.MockResolver)
			mRepo := new(repoMocks.MockLookupRepository)
			svc, logs := newTestService(t, mRes, mRepo)

			mRes.On("Resolve", ctx, tt.slug).Return(tt.resolveRec, tt.resolveErr).Once()
			mRepo.On("Record", mock.Anything, tt.slug, tt.wantOutcome, fixedNow).Return(nil).Once()

			rec, err := svc.Lookup(ctx, tt.slug)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.resolveRec, rec)
			}

			entries := logs.FilterMessage(tt.wantMsg).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, tt.slug, entries[0].ContextMap()["slug"])

			assert.Equal(t, float64(1), testutil.ToFloat64(svc.lookups.WithLabelValues(string(tt.wantOutcome))))

			mRes.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_Lookup_UnavailableKeepsCause(t *testing.T) {
	ctx := context.Background()
	mRes := new(resolverMocks.MockResolver)
	svc, _ := newTestService(t, mRes, repository.Noop{})

	mRes.On("Resolve", ctx, "janes-quilts").Return(nil, fmt.Errorf("%w: dial tcp", source.ErrFetch))

	_, err := svc.Lookup(ctx, "janes-quilts")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, source.ErrFetch)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestProfileService_Lookup_RecordsNormalizedSlug(t *testing.T) {
	ctx := logging.WithRequestID(context.Background(), "req-42")
	mRes := new(resolverMocks.MockResolver)
	mRepo := new(repoMocks.MockLookupRepository)
	svc, logs := newTestService(t, mRes, mRepo)

	mRes.On("Resolve", ctx, "Jane's Quilts").Return(&model.Record{Name: "Jane's Quilts"}, nil)
	mRepo.On("Record", mock.Anything, "janes-quilts", model.OutcomeResolved, fixedNow).Return(nil)

	_, err := svc.Lookup(ctx, "Jane's Quilts")
	require.NoError(t, err)
	mRepo.AssertExpectations(t)

	entries := logs.FilterMessage("profile_resolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestProfileService_Lookup_BlankSlugNotRecorded(t *testing.T) {
	ctx := context.Background()
	mRes := new(resolverMocks.MockResolver)
	mRepo := new(repoMocks.MockLookupRepository)
	svc, _ := newTestService(t, mRes, mRepo)

	mRes.On("Resolve", ctx, "!!!").Return(nil, resolver.ErrNotFound)

	_, err := svc.Lookup(ctx, "!!!")
	assert.ErrorIs(t, err, ErrNotFound)
	mRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_Lookup_RecordFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	mRes := new(resolverMocks.MockResolver)
	mRepo := new(repoMocks.MockLookupRepository)
	svc, logs := newTestService(t, mRes, mRepo)

	mRes.On("Resolve", ctx, "janes-quilts").Return(&model.Record{Name: "Jane's Quilts"}, nil)
	mRepo.On("Record", mock.Anything, "janes-quilts", model.OutcomeResolved, fixedNow).Return(errors.New("db down"))

	rec, err := svc.Lookup(ctx, "janes-quilts")
	require.NoError(t, err)
	assert.Equal(t, "Jane's Quilts", rec.Name)
	assert.Equal(t, 1, logs.FilterMessage("profile_lookup_record_failed").Len())
}

func TestProfileService_WithResolver(t *testing.T) {
	ctx := context.Background()
	doc := "Resource/Business Name:\n\"Jane's Quilts\"\n"
	svc, _ := newTestService(t, resolver.New(source.Static(doc)), nil)

	rec, err := svc.Lookup(ctx, "janes-quilts")
	require.NoError(t, err)
	assert.Equal(t, "Jane's Quilts", rec.Name)

	_, err = svc.Lookup(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_Stats(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantQuery  repository.PageQuery
		repoErr    error
		wantErrMsg string
	}{
		{name: "defaults", limit: 0, offset: -5, wantQuery: repository.PageQuery{Limit: 10, Offset: 0}},
		{name: "clamped", limit: 1000, offset: 20, wantQuery: repository.PageQuery{Limit: 100, Offset: 20}},
		{name: "repo error", limit: 5, wantQuery: repository.PageQuery{Limit: 5}, repoErr: errors.New("boom"), wantErrMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockLookupRepository)
			svc, _ := newTestService(t, new(resolverMocks.MockResolver), mRepo)

			if tt.repoErr != nil {
				mRepo.On("List", ctx, tt.wantQuery).Return(nil, tt.repoErr)
			} else {
				mRepo.On("List", ctx, tt.wantQuery).Return(&repository.PageResult[model.LookupStat]{
					Items: []model.LookupStat{{Slug: "janes-quilts", Outcome: model.OutcomeResolved, Count: 3}},
					Total: 1,
				}, nil)
			}

			res, err := svc.Stats(ctx, tt.limit, tt.offset)
			if tt.wantErrMsg != "" {
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Total)
				assert.Len(t, res.Items, 1)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestNewProfileService_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewProfileService(new(resolverMocks.MockResolver), nil, nil, reg)
	require.NoError(t, err)
	b, err := NewProfileService(new(resolverMocks.MockResolver), nil, nil, reg)
	require.NoError(t, err)

	assert.Same(t, a.(*profileService).lookups, b.(*profileService).lookups)
}
