package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/nedextract/internal/model"
)

type recordingLimiter struct {
	mu     sync.Mutex
	urls   []string
	delays []time.Duration
}

func (l *recordingLimiter) WaitWithDelay(_ context.Context, rawURL string, delay time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.urls = append(l.urls, rawURL)
	l.delays = append(l.delays, delay)
	return nil
}

func testConfig(robots bool) model.FetchConfig {
	return model.FetchConfig{
		Timeout:       5 * time.Second,
		MaxBytes:      1 << 20,
		UserAgent:     "nedextract-test/1.0",
		RespectRobots: robots,
	}
}

func reportServer(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			if robots == "" {
				http.NotFound(w, r)
				return
			}
			_, _ = fmt.Fprint(w, robots)
		case "/jaarverslag":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = fmt.Fprint(w, "%PDF-1.4 fake")
		case "/private/jaarverslag.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = fmt.Fprint(w, "%PDF-1.4 secret")
		case "/groot.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = fmt.Fprint(w, strings.Repeat("a", 2048))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	server := reportServer(t, "")
	limiter := &recordingLimiter{}
	logger, _ := test.NewNullLogger()
	d := NewDownloader(testConfig(true), limiter, logger)

	dir := t.TempDir()
	res, err := d.Download(context.Background(), server.URL+"/jaarverslag", dir)
	require.NoError(t, err)

	assert.Equal(t, ".pdf", filepath.Ext(res.Path))
	assert.Equal(t, dir, filepath.Dir(res.Path))
	assert.Equal(t, int64(len("%PDF-1.4 fake")), res.Size)
	assert.Equal(t, "application/pdf", res.ContentType)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	assert.Equal(t, []string{server.URL + "/jaarverslag"}, limiter.urls)
}

func TestDownload_DisallowedByRobots(t *testing.T) {
	server := reportServer(t, "User-agent: *\nDisallow: /private/\n")
	d := NewDownloader(testConfig(true), nil, nil)

	_, err := d.Download(context.Background(), server.URL+"/private/jaarverslag.pdf", t.TempDir())
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("Expected ErrDisallowed, got %v", err)
	}

	// Robots are not consulted when disabled
	d = NewDownloader(testConfig(false), nil, nil)
	_, err = d.Download(context.Background(), server.URL+"/private/jaarverslag.pdf", t.TempDir())
	assert.NoError(t, err)
}

func TestDownload_TooLarge(t *testing.T) {
	server := reportServer(t, "")
	cfg := testConfig(false)
	cfg.MaxBytes = 1024
	d := NewDownloader(cfg, nil, nil)

	dir := t.TempDir()
	_, err := d.Download(context.Background(), server.URL+"/groot.html", dir)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Expected ErrTooLarge, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial download must be removed")
}

func TestDownload_Status(t *testing.T) {
	server := reportServer(t, "")
	d := NewDownloader(testConfig(false), nil, nil)

	_, err := d.Download(context.Background(), server.URL+"/bestaat-niet.pdf", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected 404 error, got %v", err)
	}
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := reportServer(t, "User-agent: nedextract\nCrawl-delay: 2\nDisallow: /private/\n\nUser-agent: *\nDisallow: /\n")
	r := NewRobotsChecker(server.Client(), "nedextract/0.3 (+https://example.org)", nil)

	allowed, delay, err := r.CanFetch(context.Background(), server.URL+"/jaarverslag")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2*time.Second, delay)

	allowed, _, err = r.CanFetch(context.Background(), server.URL+"/private/x.pdf")
	require.NoError(t, err)
	assert.False(t, allowed)

	_, _, err = r.CanFetch(context.Background(), "::not a url")
	assert.Error(t, err)
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"nedextract/0.3 (+https://example.org)", "nedextract"},
		{"Mozilla/5.0 (X11)", "Mozilla"},
		{"bot", "bot"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.ua); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		want        string
	}{
		{"https://example.nl/docs/jaarverslag-2023.pdf", "", "jaarverslag-2023.pdf"},
		{"https://example.nl/docs/jaarverslag", "application/pdf", "jaarverslag.pdf"},
		{"https://example.nl/over-ons", "text/html; charset=utf-8", "over-ons.html"},
		{"https://example.nl/", "text/plain", "report.txt"},
		{"https://example.nl/jaar%20verslag.PDF", "", "jaar verslag.PDF"},
	}
	for _, tt := range tests {
		if got := FileName(tt.url, tt.contentType); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.want)
		}
	}
}

func TestReadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.nl/a.pdf\n# comment\n\n   \nhttps://example.nl/b.pdf   \nhttps://example.nl/a.pdf\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := ReadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.nl/a.pdf", "https://example.nl/b.pdf"}, urls)

	_, err = ReadURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
