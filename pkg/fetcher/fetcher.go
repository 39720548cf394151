package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"github.com/sitesift/sitesift/internal/config"
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Fetcher retrieves raw HTML over HTTP with browser-mimicking headers, a
// uniform per-request deadline, and optional rate limiting and robots.txt
// gating.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	limiter     *rate.Limiter
	checkRobots bool
	logger      *log.Logger
}

// New creates a Fetcher from HTTP configuration.
func New(cfg config.HTTPConfig, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     30 * time.Second,
	}
	f := &Fetcher{
		client:      &http.Client{Transport: transport, Timeout: cfg.Timeout},
		userAgent:   cfg.UserAgent,
		checkRobots: cfg.FollowRobotsTxt,
		logger:      logger,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return f
}

// Fetch retrieves the body behind rawURL. It fails on network errors,
// timeouts, and non-2xx statuses.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait for %s: %w", rawURL, err)
		}
	}
	if f.checkRobots && !f.allowedByRobots(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	f.logger.Printf("Fetched %s (%d bytes)", rawURL, len(body))
	return string(body), nil
}

// allowedByRobots is permissive: any failure to obtain or parse robots.txt
// allows the fetch.
func (f *Fetcher) allowedByRobots(ctx context.Context, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return true
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return true
	}

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return true
	}
	allowed := robots.TestAgent(u.Path, f.userAgent)
	if !allowed {
		f.logger.Printf("Blocked by robots.txt: %s", pageURL)
	}
	return allowed
}
