// Package resolver finds a directory record by slug.
package resolver

import (
	"context"
	"errors"
	"strings"

	"quilthub/internal/model"
	"quilthub/internal/sheet"
	"quilthub/internal/slug"
	"quilthub/internal/source"
)

// ErrNotFound is returned when no row matches the requested slug.
var ErrNotFound = errors.New("record not found")

// Find parses document and returns the first row, in document order, whose
// slugified name equals the slugified target. Blank slugs never match.
// Parse failures are returned as-is and wrap sheet.ErrMalformed.
func Find(document, target string) (*model.Record, error) {
	want := slug.Slugify(target)
	if want == "" {
		return nil, ErrNotFound
	}

	records, err := sheet.Parse(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	for i := range records {
		if slug.Equal(records[i].Name, want) {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// Resolver looks records up in a freshly fetched document on every call.
type Resolver struct {
	src source.Source
}

// New returns a Resolver reading from src.
func New(src source.Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve fetches the document and runs Find. A fetch failure wraps
// source.ErrFetch and is distinct from ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, target string) (*model.Record, error) {
	if slug.Slugify(target) == "" {
		return nil, ErrNotFound
	}
	doc, err := r.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Find(doc, target)
}

// Classify maps a Resolve/Find result error to its lookup outcome.
func Classify(err error) model.Outcome {
	switch {
	case err == nil:
		return model.OutcomeResolved
	case errors.Is(err, source.ErrFetch):
		return model.OutcomeFetchFailed
	case errors.Is(err, sheet.ErrMalformed):
		return model.OutcomeParseFailed
	default:
		return model.OutcomeNotFound
	}
}
