package mocks

import (
	"context"

	"quilthub/internal/model"
	"quilthub/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Lookup(ctx context.Context, slug string) (*model.Record, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockProfileService) Stats(ctx context.Context, limit, offset int) (*service.LookupStatsResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LookupStatsResult), args.Error(1)
}
