package table

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// IsURL reports whether src names an http(s) resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// LoadSource loads src, which is either a local path or an http(s) URL. A URL
// is downloaded to a temporary file carrying the same extension, so the
// usual loader selection applies.
func LoadSource(ctx context.Context, src string, opt LoadOptions, timeout time.Duration) (Dataset, error) {
	if !IsURL(src) {
		return LoadFile(ctx, src, opt)
	}
	tmp, err := fetch(ctx, src, timeout)
	if err != nil {
		return Dataset{}, err
	}
	defer os.Remove(tmp)
	return LoadFile(ctx, tmp, opt)
}

func fetch(ctx context.Context, src string, timeout time.Duration) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".csv"
	}
	f, err := os.CreateTemp("", "wordloom-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return f.Name(), nil
}
