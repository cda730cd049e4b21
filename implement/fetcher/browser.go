package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// blockedResources are never needed to read a docs page.
var blockedResources = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg",
	"*.woff", "*.woff2", "*.ttf", "*.eot",
}

// BrowserFetcher drives one headless Chrome tab. Pages are loaded one after
// another in the same tab; it must not be used from several goroutines.
type BrowserFetcher struct {
	tabCtx      context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
	settle      time.Duration
}

func NewBrowserFetcher(ctx context.Context, opts Options) (*BrowserFetcher, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1280, 800),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run starts the browser.
	if err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetBlockedURLS(blockedResources),
	); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BrowserFetcher{
		tabCtx:      tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		timeout:     timeout,
		settle:      opts.Settle,
	}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	waitFor := req.WaitFor
	if waitFor == "" {
		waitFor = "body"
	}

	runCtx, cancel := context.WithTimeout(f.tabCtx, f.timeout)
	defer cancel()

	// Stop the run when the caller gives up, without closing the tab.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(req.URL),
		chromedp.WaitReady(waitFor, chromedp.ByQuery),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to load %s: %w", req.URL, err)
	}
	return html, nil
}

func (f *BrowserFetcher) Close() error {
	f.cancelTab()
	f.cancelAlloc()
	return nil
}
