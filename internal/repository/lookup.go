package repository

import (
	"context"
	"time"

	"quilthub/internal/model"
)

// LookupRepository stores per-slug lookup outcome counters.
// No business logic here, strictly persistence operations.
type LookupRepository interface {
	// Record increments the counter for (slug, outcome) and sets its last seen time.
	Record(ctx context.Context, slug string, outcome model.Outcome, at time.Time) error

	// List returns a page of counters, most recently seen first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.LookupStat], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// Noop is a LookupRepository used when no database is configured.
type Noop struct{}

var _ LookupRepository = Noop{}

// Record discards the lookup.
func (Noop) Record(context.Context, string, model.Outcome, time.Time) error { return nil }

// List always returns an empty page.
func (Noop) List(context.Context, PageQuery) (*PageResult[model.LookupStat], error) {
	return &PageResult[model.LookupStat]{Items: []model.LookupStat{}}, nil
}
