package scraper

import (
	"context"
	"time"
)

// Fetcher retrieves the raw markup behind a URL. A non-nil error covers
// network failures, timeouts, and non-2xx responses alike.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options contains per-run tuning for the scraper
type Options struct {
	Delay    time.Duration // sleep between detail-page fetches, 0 disables
	MaxSites int           // cap on result entries, 0 means unlimited
}
