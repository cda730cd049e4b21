package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

// ClaudeDocs converts whole Claude Code documentation articles.
type ClaudeDocs struct {
	siteInfo
}

func NewClaudeDocs() *ClaudeDocs {
	slugs := []string{"skills", "hooks", "sub-agents", "plugins", "settings", "commands", "permissions"}
	targets := make([]models.Target, len(slugs))
	for i, slug := range slugs {
		targets[i] = models.Target{Name: slug, Path: slug}
	}

	return &ClaudeDocs{siteInfo{
		name:    "claude-docs",
		baseURL: "https://code.claude.com/docs/zh-CN",
		targets: targets,
		defaults: Defaults{
			Mode:  fetcher.ModeHTTP,
			Delay: 500 * time.Millisecond,
		},
	}}
}

// mainContent picks the article body: main, then article, then the whole
// body.
func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"main", "article", "body"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

func pageTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return markdown.CleanText(h1, 0)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func (s *ClaudeDocs) Extract(doc *goquery.Document, target models.Target, url string, conv markdown.Converter) (*models.DocPage, error) {
	content := mainContent(doc)
	content.Find(strings.Join(noiseSelectors, ", ")).Remove()

	html, err := content.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML content: %w", err)
	}

	md, err := conv.Convert(html)
	if err != nil {
		return nil, err
	}
	md = markdown.Clean(md)
	if md == "" {
		return nil, fmt.Errorf("%w from %s", ErrNoContent, url)
	}

	title := pageTitle(doc)
	if title == "" {
		title = target.Name
	}

	return &models.DocPage{
		Slug:            markdown.Anchor(target.Name),
		Title:           title,
		SourceURL:       url,
		ContentMarkdown: md,
	}, nil
}

// noiseSelectors are page chrome that sometimes sits inside main.
var noiseSelectors = []string{"script", "style", "nav", "header", "footer", "aside", "input", "button"}
