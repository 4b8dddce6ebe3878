// Package source fetches the raw directory document.
//
// Every Fetch reads the whole document afresh; nothing is cached between calls.
package source

import (
	"context"
	"errors"
)

// ErrFetch is wrapped by every failure to obtain the document.
var ErrFetch = errors.New("fetch directory document")

// Source returns the current CSV text of the directory.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Static serves a fixed in-memory document.
type Static string

// Fetch returns the document, or ErrFetch when ctx is already done.
func (s Static) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Join(ErrFetch, err)
	}
	return string(s), nil
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) (string, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) (string, error) { return f(ctx) }
