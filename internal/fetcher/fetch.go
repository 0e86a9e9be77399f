// Package fetcher loads raw playlist text from a URL or a local file. Every
// failure is wrapped in ErrLoad so callers can tell it apart from parse outcomes.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ErrLoad wraps every read or fetch failure.
var ErrLoad = errors.New("load playlist")

// Options configure remote fetches.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// IsURL reports whether location is an absolute http or https URL.
func IsURL(location string) bool {
	u, err := url.ParseRequestURI(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads location as a URL when IsURL says so, otherwise as a file path.
func Load(ctx context.Context, location string, opts Options) (string, error) {
	if IsURL(location) {
		return Fetch(ctx, location, opts)
	}
	return ReadFile(location)
}

// Fetch downloads the playlist at rawURL and returns its body as text.
// Any non-2xx response is a load failure.
func Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: NewRequest: %w", ErrLoad, err)
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: Do: %w", ErrLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d", ErrLoad, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: ReadAll: %w", ErrLoad, err)
	}
	return string(body), nil
}

// ReadFile returns the contents of a local playlist file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return string(data), nil
}
