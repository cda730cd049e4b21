package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPFetcher issues plain GET requests. Pages that render client side come
// back without their content; use the browser for those.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(opts.Retries)
	client.SetHeaders(map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
	})
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(req.URL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", req.URL, err)
	}
	if res.IsError() {
		return "", &StatusError{URL: req.URL, Code: res.StatusCode(), Status: res.Status()}
	}
	return res.String(), nil
}

func (f *HTTPFetcher) Close() error {
	return nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s: %s", e.Code, e.URL, e.Status)
}
