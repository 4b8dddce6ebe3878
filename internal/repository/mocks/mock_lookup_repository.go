package mocks

import (
	"context"
	"time"

	"quilthub/internal/model"
	"quilthub/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Record(ctx context.Context, slug string, outcome model.Outcome, at time.Time) error {
	args := m.Called(ctx, slug, outcome, at)
	return args.Error(0)
}

func (m *MockLookupRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.LookupStat], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.LookupStat]), args.Error(1)
}
