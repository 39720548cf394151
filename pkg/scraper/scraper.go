package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sitesift/sitesift/internal/models"
	"github.com/sitesift/sitesift/pkg/extractor"
)

// Scraper walks listing pages, discovers detail-page URLs, and visits each
// one at most once to extract its Visit Site link. Execution is strictly
// sequential; the only accumulator is the ResultSet it returns.
type Scraper struct {
	fetcher         Fetcher
	extractor       *extractor.Extractor
	listingTemplate string
	delay           time.Duration
	maxSites        int
	logger          *log.Logger
}

// New creates a Scraper. listingTemplate must contain a %d placeholder for
// the page number.
func New(fetcher Fetcher, ex *extractor.Extractor, listingTemplate string, opts Options, logger *log.Logger) *Scraper {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scraper{
		fetcher:         fetcher,
		extractor:       ex,
		listingTemplate: listingTemplate,
		delay:           opts.Delay,
		maxSites:        opts.MaxSites,
		logger:          logger,
	}
}

// ValidatePageRange rejects ranges that cannot describe at least one
// listing page.
func ValidatePageRange(start, end int) error {
	if start < 1 {
		return fmt.Errorf("start page must be at least 1, got %d", start)
	}
	if end < start {
		return fmt.Errorf("end page %d is before start page %d", end, start)
	}
	return nil
}

// PageRange expands an inclusive [start, end] range into page numbers.
func PageRange(start, end int) []int {
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Scrape processes the given listing pages in order and returns the
// accumulated URL-to-link mapping.
//
// A listing-page fetch failure aborts the whole run: without its links no
// meaningful page-level progress is possible, and skipping it silently would
// return an incomplete result with no signal. A detail-page failure is
// recorded as a FetchFailed entry and the run continues. After each detail
// fetch (successful or not) the configured delay is slept and the max-sites
// cap is checked; hitting the cap returns immediately, mid-page.
func (s *Scraper) Scrape(ctx context.Context, pages []int) (*models.ResultSet, error) {
	results := models.NewResultSet()
	for _, page := range pages {
		listingURL := fmt.Sprintf(s.listingTemplate, page)
		markup, err := s.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}
		links, err := s.extractor.SiteLinks(markup)
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}
		s.logger.Printf("Listing page %d: %d site links", page, len(links))

		for _, siteURL := range links {
			if results.Has(siteURL) {
				continue
			}
			results.Set(siteURL, s.visit(ctx, siteURL))
			if s.delay > 0 {
				time.Sleep(s.delay)
			}
			if s.maxSites > 0 && results.Len() >= s.maxSites {
				s.logger.Printf("Reached max sites (%d), stopping", s.maxSites)
				return results, nil
			}
		}
	}
	return results, nil
}

func (s *Scraper) visit(ctx context.Context, siteURL string) models.VisitResult {
	markup, err := s.fetcher.Fetch(ctx, siteURL)
	if err != nil {
		s.logger.Printf("Fetch failed for %s: %v", siteURL, err)
		return models.VisitResult{Status: models.StatusFetchFailed}
	}
	href, found, err := s.extractor.VisitSite(markup)
	if err != nil || !found {
		return models.VisitResult{Status: models.StatusNotFound}
	}
	return models.VisitResult{Link: href, Status: models.StatusFound}
}
