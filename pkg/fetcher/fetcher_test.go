package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesift/sitesift/internal/config"
)

func testConfig() config.HTTPConfig {
	return config.HTTPConfig{
		UserAgent: "sitesift-test-agent",
		Timeout:   5 * time.Second,
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	f := New(testConfig(), nil)
	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html></html>", body)
	assert.Equal(t, "sitesift-test-agent", gotAgent)
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetchNonOKStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantOK bool
	}{
		{name: "200", status: http.StatusOK, wantOK: true},
		{name: "204", status: http.StatusNoContent, wantOK: true},
		{name: "404", status: http.StatusNotFound, wantOK: false},
		{name: "500", status: http.StatusInternalServerError, wantOK: false},
		{name: "418", status: http.StatusTeapot, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			f := New(testConfig(), nil)
			_, err := f.Fetch(context.Background(), server.URL)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.status, statusErr.StatusCode)
				assert.Equal(t, server.URL, statusErr.URL)
			}
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	f := New(testConfig(), nil)
	_, err := f.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	f := New(cfg, nil)
	_, err := f.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchRespectsRobotsTxt(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	})

	cfg := testConfig()
	cfg.FollowRobotsTxt = true
	f := New(cfg, nil)

	_, err := f.Fetch(context.Background(), server.URL+"/public/page")
	assert.NoError(t, err)

	_, err = f.Fetch(context.Background(), server.URL+"/private/page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt")
}

func TestFetchRobotsUnavailableIsPermissive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.FollowRobotsTxt = true
	f := New(cfg, nil)

	_, err := f.Fetch(context.Background(), server.URL+"/anything")
	assert.NoError(t, err)
}

func TestFetchRateLimiting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RequestsPerSecond = 10 // one token per 100ms
	f := New(cfg, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	// First request is immediate, the next two wait for tokens.
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
}
