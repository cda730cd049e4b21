package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Request names the page to load. WaitFor is a CSS selector the page must
// contain before it counts as loaded; browsers wait for it, plain HTTP
// fetches leave the check to the caller.
type Request struct {
	URL     string
	WaitFor string
}

// Fetcher loads the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (string, error)
	Close() error
}

// Mode selects how pages are loaded.
type Mode string

const (
	ModeHTTP    Mode = "http"
	ModeBrowser Mode = "browser"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHTTP, ModeBrowser:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown fetch mode %q", s)
	}
}

type Options struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	// Settle is how long a browser waits after the page is ready, for
	// client-side rendering to finish.
	Settle time.Duration
}

// New builds the fetcher for mode.
func New(ctx context.Context, mode Mode, opts Options) (Fetcher, error) {
	switch mode {
	case ModeHTTP:
		return NewHTTPFetcher(opts), nil
	case ModeBrowser:
		return NewBrowserFetcher(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
}

// Paced waits a fixed delay after each fetch before the next one starts,
// so the target site does not rate limit the crawl. Fetches through the
// same Paced run one at a time.
type Paced struct {
	next  Fetcher
	limit rate.Limit

	mu      sync.Mutex
	limiter *rate.Limiter
}

func NewPaced(next Fetcher, delay time.Duration) *Paced {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Paced{
		next:    next,
		limit:   limit,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (p *Paced) Fetch(ctx context.Context, req Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	defer p.restart()
	return p.next.Fetch(ctx, req)
}

// restart empties the limiter at the end of a fetch, so the next token is
// one full delay away from now.
func (p *Paced) restart() {
	p.limiter = rate.NewLimiter(p.limit, 1)
	p.limiter.AllowN(time.Now(), 1)
}

func (p *Paced) Close() error {
	return p.next.Close()
}
