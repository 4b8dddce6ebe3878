package postgres

import (
	"context"
	"database/sql"
	"time"

	"quilthub/internal/model"
	"quilthub/internal/repository"
)

// LookupPostgres is a PostgreSQL implementation of repository.LookupRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type LookupPostgres struct {
	db *sql.DB
}

// NewLookupPostgres creates a new LookupPostgres repository.
func NewLookupPostgres(db *sql.DB) *LookupPostgres {
	return &LookupPostgres{db: db}
}

var _ repository.LookupRepository = (*LookupPostgres)(nil)

// Record upserts the (slug, outcome) counter.
func (r *LookupPostgres) Record(ctx context.Context, slug string, outcome model.Outcome, at time.Time) error {
	const q = `
		INSERT INTO profile_lookups (slug, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (slug, outcome)
		DO UPDATE SET count = profile_lookups.count + 1, last_seen_at = EXCLUDED.last_seen_at
	`
	_, err := r.db.ExecContext(ctx, q, slug, string(outcome), at)
	return err
}

// List returns counters using LIMIT/OFFSET pagination and a total count.
func (r *LookupPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.LookupStat], error) {
	const qCount = `SELECT COUNT(*) FROM profile_lookups`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT slug, outcome, count, last_seen_at
		FROM profile_lookups
		ORDER BY last_seen_at DESC, slug ASC, outcome ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LookupStat, 0)
	for rows.Next() {
		var (
			s       model.LookupStat
			outcome string
		)
		if err := rows.Scan(&s.Slug, &outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		s.Outcome = model.Outcome(outcome)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.LookupStat]{
		Items: items,
		Total: total,
	}, nil
}
