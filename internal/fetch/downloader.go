// Package fetch downloads remote annual reports politely: robots.txt is
// honored, each host is rate limited and bodies are size capped.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/model"
)

var (
	// ErrDisallowed is returned when robots.txt forbids a download
	ErrDisallowed = errors.New("disallowed by robots.txt")
	// ErrTooLarge is returned when a body exceeds the configured maximum
	ErrTooLarge = errors.New("response body too large")
)

// RateLimiter delays requests per host
type RateLimiter interface {
	WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error
}

// Downloader stores remote reports as local files
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    RateLimiter
	logger     logrus.FieldLogger
}

// Result describes one stored download
type Result struct {
	URL         string
	FinalURL    string
	Path        string
	ContentType string
	Size        int64
}

// NewDownloader creates a downloader from cfg. The limiter may be nil.
func NewDownloader(cfg model.FetchConfig, limiter RateLimiter, logger logrus.FieldLogger) *Downloader {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	d := &Downloader{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBytes,
		limiter:    limiter,
		logger:     logger,
	}
	if cfg.RespectRobots {
		d.robots = NewRobotsChecker(client, cfg.UserAgent, logger)
	}
	return d
}

// Download fetches rawURL into dir and returns where it was stored
func (d *Downloader) Download(ctx context.Context, rawURL, dir string) (*Result, error) {
	var delay time.Duration
	if d.robots != nil {
		allowed, crawlDelay, err := d.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		delay = crawlDelay
	}
	if d.limiter != nil {
		if err := d.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "application/pdf,text/html;q=0.9,text/plain;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", "nl-NL,nl;q=0.9,en;q=0.5")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if d.maxBytes > 0 {
		body = io.LimitReader(resp.Body, d.maxBytes+1)
	}

	finalURL := resp.Request.URL.String()
	contentType := resp.Header.Get("Content-Type")
	name := FileName(finalURL, contentType)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "*-"+name)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && d.maxBytes > 0 && n > d.maxBytes {
		err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, d.maxBytes)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("store %s: %w", rawURL, err)
	}

	d.logger.WithField("action", "download").
		WithField("url", finalURL).
		WithField("bytes", n).
		Debug("report downloaded")

	return &Result{
		URL:         rawURL,
		FinalURL:    finalURL,
		Path:        f.Name(),
		ContentType: contentType,
		Size:        n,
	}, nil
}

// FileName derives a local file name from the last URL path segment. The
// extension comes from the content type when the URL does not carry a
// supported one.
func FileName(rawURL, contentType string) string {
	base := "report"
	if u, err := url.Parse(rawURL); err == nil {
		if last := path.Base(u.Path); last != "." && last != "/" {
			if unescaped, err := url.PathUnescape(last); err == nil {
				last = unescaped
			}
			base = last
		}
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, base)

	switch strings.ToLower(filepath.Ext(base)) {
	case ".pdf", ".html", ".htm", ".txt":
		return base
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/pdf":
		return base + ".pdf"
	case "text/plain":
		return base + ".txt"
	default:
		return base + ".html"
	}
}
