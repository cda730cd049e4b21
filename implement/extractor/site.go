package extractor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

var (
	ErrUnknownSite    = errors.New("unknown site")
	ErrMissingContent = errors.New("page has no content container")
	ErrNoContent      = errors.New("no content extracted")
	ErrWrongKind      = errors.New("site does not produce this kind of document")
)

// Defaults are the fetch settings a site was tuned with.
type Defaults struct {
	Mode    fetcher.Mode
	Delay   time.Duration
	WaitFor string
	// Settle is the extra time a browser gives client-side rendering.
	Settle time.Duration
}

// Site is a documentation website and the pages crawled from it.
type Site interface {
	Name() string
	BaseURL() string
	Targets() []models.Target
	Defaults() Defaults
	URL(target models.Target) string
	// Retarget replaces the base URL and target list. Empty values keep
	// the built-in ones.
	Retarget(baseURL string, targets []models.Target)
}

// ComponentSite documents UI components; its pages are collected into one
// guide.
type ComponentSite interface {
	Site
	Guide() models.Guide
	Extract(doc *goquery.Document, target models.Target, url string) *models.ComponentDoc
}

// PageSite publishes articles; each page becomes its own Markdown file.
type PageSite interface {
	Site
	Extract(doc *goquery.Document, target models.Target, url string, conv markdown.Converter) (*models.DocPage, error)
}

type siteInfo struct {
	name     string
	baseURL  string
	targets  []models.Target
	defaults Defaults
}

func (s *siteInfo) Name() string { return s.name }

func (s *siteInfo) BaseURL() string { return s.baseURL }

func (s *siteInfo) Targets() []models.Target { return s.targets }

func (s *siteInfo) Defaults() Defaults { return s.defaults }

func (s *siteInfo) URL(target models.Target) string {
	if strings.HasPrefix(target.Path, "http://") || strings.HasPrefix(target.Path, "https://") {
		return target.Path
	}
	return strings.TrimSuffix(s.baseURL, "/") + "/" + strings.TrimPrefix(target.Path, "/")
}

func (s *siteInfo) Retarget(baseURL string, targets []models.Target) {
	if baseURL != "" {
		s.baseURL = baseURL
	}
	if len(targets) > 0 {
		s.targets = targets
	}
}

var registry = map[string]func() Site{
	"headlessui":    func() Site { return NewHeadlessUI() },
	"headlessui-v1": func() Site { return NewHeadlessUIV1() },
	"radix-vue":     func() Site { return NewRadixVue() },
	"claude-docs":   func() Site { return NewClaudeDocs() },
}

// Lookup returns a fresh instance of the named site.
func Lookup(name string) (Site, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownSite, name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the registered sites.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func load(ctx context.Context, f fetcher.Fetcher, site Site, target models.Target) (*goquery.Document, string, error) {
	url := site.URL(target)
	waitFor := site.Defaults().WaitFor

	html, err := f.Fetch(ctx, fetcher.Request{URL: url, WaitFor: waitFor})
	if err != nil {
		return nil, url, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, url, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if waitFor != "" && doc.Find(waitFor).Length() == 0 {
		return nil, url, fmt.Errorf("%w: %q not found in %s", ErrMissingContent, waitFor, url)
	}
	return doc, url, nil
}

// ExtractComponent loads one component page and extracts it.
func ExtractComponent(ctx context.Context, f fetcher.Fetcher, site ComponentSite, target models.Target) (*models.ComponentDoc, error) {
	doc, url, err := load(ctx, f, site, target)
	if err != nil {
		return nil, err
	}
	return site.Extract(doc, target, url), nil
}

// ExtractPage loads one article page and converts it.
func ExtractPage(ctx context.Context, f fetcher.Fetcher, conv markdown.Converter, site PageSite, target models.Target) (*models.DocPage, error) {
	doc, url, err := load(ctx, f, site, target)
	if err != nil {
		return nil, err
	}
	return site.Extract(doc, target, url, conv)
}
