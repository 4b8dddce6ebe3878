// Package snapshot copies the published directory document into object
// storage so the web server can serve share pages from the object backend.
package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quilthub/internal/sheet"
	"quilthub/internal/source"
	"quilthub/internal/storage"
)

const contentType = "text/csv; charset=utf-8"

// Result describes a stored snapshot.
type Result struct {
	Object  storage.ObjectInfo
	Records int
}

// Run fetches the document from src, checks that it parses, and stores it
// under key. A document that does not parse is never uploaded, so a bad
// publish cannot replace the last good snapshot.
func Run(ctx context.Context, src source.Source, store storage.Storage, key string, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	records, err := sheet.ParseString(doc)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	info, err := store.Put(ctx, key, strings.NewReader(doc), storage.PutObjectOptions{
		Size:        int64(len(doc)),
		ContentType: contentType,
		Metadata:    map[string]string{"records": strconv.Itoa(len(records))},
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	log.Info("snapshot_stored",
		zap.String("key", info.Key),
		zap.Int64("size", info.Size),
		zap.Int("records", len(records)),
	)
	return &Result{Object: info, Records: len(records)}, nil
}
