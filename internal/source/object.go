package source

import (
	"context"
	"fmt"
	"io"

	"quilthub/internal/storage"
)

// Object reads a directory snapshot from object storage.
type Object struct {
	store    storage.Storage
	key      string
	maxBytes int64
}

// NewObject builds a source that reads key from store.
func NewObject(store storage.Storage, key string, maxBytes int64) *Object {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Object{store: store, key: key, maxBytes: maxBytes}
}

// Fetch reads the snapshot. Storage errors wrap ErrFetch.
func (o *Object) Fetch(ctx context.Context) (string, error) {
	rc, _, err := o.store.Get(ctx, o.key)
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %w", ErrFetch, o.key, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, o.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrFetch, o.key, err)
	}
	if int64(len(body)) > o.maxBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, o.key, o.maxBytes)
	}
	return string(body), nil
}
