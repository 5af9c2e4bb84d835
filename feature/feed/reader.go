package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Reader downloads and parses the feed.
type Reader struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewReader creates a feed reader for the configured URL.
func NewReader(cfg Config, logger *zap.Logger) *Reader {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Reader{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
	}
}

// Fetch downloads the feed and parses it.
func (r *Reader) Fetch(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("failed to fetch feed: status %d: %s", resp.StatusCode, body)
	}

	catalog, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	if len(catalog.Skipped) > 0 {
		r.logger.Warn("Offers without external code skipped",
			zap.Int("count", len(catalog.Skipped)),
			zap.Strings("offer_ids", catalog.Skipped),
		)
	}
	if catalog.Duplicates > 0 {
		r.logger.Warn("Duplicate external codes in feed", zap.Int("count", catalog.Duplicates))
	}

	return catalog, nil
}
