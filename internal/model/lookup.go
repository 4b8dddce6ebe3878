package model

import "time"

// Outcome classifies a single profile lookup.
type Outcome string

const (
	OutcomeResolved    Outcome = "resolved"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeParseFailed Outcome = "parse_failed"
)

// Outcomes lists every outcome in a stable order.
var Outcomes = []Outcome{OutcomeResolved, OutcomeNotFound, OutcomeFetchFailed, OutcomeParseFailed}

// LookupStat is the per-slug hit count for one outcome.
type LookupStat struct {
	Slug       string    `json:"slug"`
	Outcome    Outcome   `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
