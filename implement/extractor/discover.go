package extractor

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

// Discover lists the links on an index page whose href contains pattern,
// in document order. Links back to the index page itself are skipped and
// each href is kept once. Hrefs are returned as written on the page, so
// they can be used as target paths directly.
func Discover(doc *goquery.Document, indexURL, pattern string) []models.Target {
	index, _ := url.Parse(indexURL)
	seen := map[string]bool{}
	targets := []models.Target{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || !strings.Contains(href, pattern) || seen[href] {
			return
		}
		if isIndexLink(index, href, pattern) {
			return
		}
		seen[href] = true

		name := strings.Join(strings.Fields(a.Text()), " ")
		if name == "" {
			name = path.Base(strings.TrimSuffix(href, "/"))
		}
		targets = append(targets, models.Target{Name: name, Path: href})
	})

	return targets
}

func isIndexLink(index *url.URL, href, pattern string) bool {
	trimmed := strings.TrimSuffix(href, "/")
	if trimmed == strings.TrimSuffix(pattern, "/") {
		return true
	}
	if index == nil {
		return false
	}
	link, err := index.Parse(href)
	if err != nil {
		return false
	}
	return strings.TrimSuffix(link.String(), "/") == strings.TrimSuffix(index.String(), "/")
}

// Structure is what an index or component page offers to an extractor.
type Structure struct {
	Title          string
	HasH1          bool
	HasDescription bool
	CodeBlocks     int
	Tables         int
	HasEvents      bool
}

// Inspect summarises a component page so selectors can be tuned for a new
// site or a redesign.
func Inspect(doc *goquery.Document) Structure {
	s := Structure{
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		HasH1:      doc.Find("h1").Length() > 0,
		CodeBlocks: doc.Find("pre code, pre[class*='language']").Length(),
		Tables:     doc.Find("table").Length(),
	}

	doc.Find("main p, article p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		s.HasDescription = markdown.RuneLen(markdown.CleanText(p.Text(), 0)) > 20
		return !s.HasDescription
	})

	doc.Find("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(h.Text(), "Events") {
			s.HasEvents = true
			return false
		}
		return true
	})

	return s
}
