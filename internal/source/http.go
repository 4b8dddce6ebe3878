package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 << 20
)

// HTTPOptions configures an HTTP source.
type HTTPOptions struct {
	// URL is the published CSV export of the spreadsheet.
	URL string
	// Timeout bounds a single fetch, including reading the body.
	Timeout time.Duration
	// MaxBytes caps the accepted document size.
	MaxBytes int64
	// Client overrides the default otelhttp-instrumented client.
	Client *http.Client
}

// HTTP fetches the document with one uncached GET per call.
type HTTP struct {
	url      string
	timeout  time.Duration
	maxBytes int64
	client   *http.Client
}

// NewHTTP builds an HTTP source. Zero options fall back to defaults.
func NewHTTP(opts HTTPOptions) (*HTTP, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("source url is required")
	}
	h := &HTTP{
		url:      opts.URL,
		timeout:  opts.Timeout,
		maxBytes: opts.MaxBytes,
		client:   opts.Client,
	}
	if h.timeout <= 0 {
		h.timeout = defaultTimeout
	}
	if h.maxBytes <= 0 {
		h.maxBytes = defaultMaxBytes
	}
	if h.client == nil {
		h.client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return h, nil
}

// URL returns the configured document URL.
func (h *HTTP) URL() string { return h.url }

// Fetch downloads the document. Transport errors, non-2xx responses and
// oversized bodies all return an error wrapping ErrFetch.
func (h *HTTP) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if int64(len(body)) > h.maxBytes {
		return "", fmt.Errorf("%w: document exceeds %d bytes", ErrFetch, h.maxBytes)
	}
	return string(body), nil
}
