// Package indexer embeds generated documentation and stores it in qdrant,
// one point per document and one per "## " section.
package indexer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"text/template"

	"github.com/aiocean/docsync/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

var documentTemplate = template.Must(template.New("docTemplate").Parse(`---
Source title: {{.Title}}
Source URL: {{.SourceURL}}
Sections:
{{range .Sections}}
  - [{{.Title}}]({{$.SourceURL}}{{.Anchor}})
{{end}}
---

{{.Content}}`))

var sectionTemplate = template.Must(template.New("sectionContent").Parse(`---
Source Title: {{.Doc.Title}} / {{.Section.Title}}
Source URL: {{.Doc.SourceURL}}{{.Section.Anchor}}
---

{{.Section.Content}}
`))

func completeDocContent(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func compileSectionContent(doc *Document, section Section) (string, error) {
	var buf bytes.Buffer
	err := sectionTemplate.Execute(&buf, struct {
		Doc     *Document
		Section Section
	}{doc, section})
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

type Indexer struct {
	Model  EmbeddingModel
	Store  Store
	Logger *zap.Logger
	// Concurrency bounds the sections embedded at once.
	Concurrency int

	ensureMu sync.Mutex
	ensured  bool
}

// ensureCollection creates the collection on first use. A failed attempt
// is retried by the next call.
func (ix *Indexer) ensureCollection(ctx context.Context) error {
	ix.ensureMu.Lock()
	defer ix.ensureMu.Unlock()
	if ix.ensured {
		return nil
	}
	if err := ix.Store.EnsureCollection(ctx, ix.Model.Dimensions()); err != nil {
		return err
	}
	ix.ensured = true
	return nil
}

// Index stores every section of doc, then the document itself. Sections
// are embedded concurrently; all of their failures are reported together
// and the document point is only written when every section succeeded.
// It returns the number of sections stored.
func (ix *Indexer) Index(ctx context.Context, doc *Document) (int, error) {
	log := logger.OrNop(ix.Logger).With(zap.String("source_url", doc.SourceURL))

	if err := ix.ensureCollection(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure collection: %w", err)
	}

	limit := ix.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var (
		mu     sync.Mutex
		errs   []error
		stored int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, section := range doc.Sections {
		g.Go(func() error {
			err := ix.indexSection(gctx, doc, section)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("section %q: %w", section.Title, err))
				return nil
			}
			stored++
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return stored, fmt.Errorf("failed to process sections: %w", errors.Join(errs...))
	}

	content, err := completeDocContent(doc)
	if err != nil {
		return stored, err
	}
	vector, err := ix.Model.EmbedContent(ctx, content)
	if err != nil {
		return stored, fmt.Errorf("failed to embed content: %w", err)
	}
	if err := ix.Store.Upsert(ctx, Point{
		ID:        PointID(doc.SourceURL),
		Vector:    vector,
		Content:   doc.Content,
		Title:     doc.Title,
		SourceURL: doc.SourceURL,
		Order:     -1,
	}); err != nil {
		return stored, err
	}

	log.Info("document indexed", zap.String("title", doc.Title), zap.Int("sections", stored))
	return stored, nil
}

func (ix *Indexer) indexSection(ctx context.Context, doc *Document, section Section) error {
	content, err := compileSectionContent(doc, section)
	if err != nil {
		return fmt.Errorf("failed to compile section content: %w", err)
	}

	vector, err := ix.Model.EmbedContent(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to embed content: %w", err)
	}

	url := doc.SectionURL(section)
	return ix.Store.Upsert(ctx, Point{
		ID:        PointID(url),
		Vector:    vector,
		Content:   section.Content,
		Title:     doc.Title + "/" + section.Title,
		SourceURL: url,
		Order:     section.Order,
	})
}
