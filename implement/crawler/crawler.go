// Package crawler walks the targets of a site one page at a time and writes
// the generated Markdown.
package crawler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aiocean/docsync/implement/extractor"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/implement/render"
	"github.com/aiocean/docsync/logger"
	"github.com/aiocean/docsync/models"
	"go.uber.org/zap"
)

const (
	frameworksDir = "frameworks"
	pagesDir      = "claude-code"
)

type Crawler struct {
	Fetcher   fetcher.Fetcher
	Converter markdown.Converter
	Logger    *zap.Logger
	OutputDir string
}

// GuidePath is where the guide of a component site is written.
func (c *Crawler) GuidePath(site string) string {
	return filepath.Join(c.OutputDir, frameworksDir, site+".md")
}

// PagesPath is the directory article pages are written to.
func (c *Crawler) PagesPath() string {
	return filepath.Join(c.OutputDir, pagesDir)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Components extracts every target of site and writes the guide. A page
// that fails is logged, recorded in the report and replaced by an empty
// section, so the guide always lists every target. targets overrides the
// site's own list when non-empty.
//
// When ctx is cancelled the loop stops and nothing is written; the partial
// report is returned with the context error.
func (c *Crawler) Components(ctx context.Context, site extractor.ComponentSite, targets []models.Target) (*models.Report, error) {
	log := logger.OrNop(c.Logger).With(zap.String("site", site.Name()))
	if len(targets) == 0 {
		targets = site.Targets()
	}

	start := time.Now()
	report := &models.Report{
		Site:   site.Name(),
		Output: c.GuidePath(site.Name()),
		Total:  len(targets),
	}
	defer func() { report.Duration = time.Since(start) }()

	docs := make([]*models.ComponentDoc, 0, len(targets))
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		url := site.URL(target)
		log.Info("fetching component",
			zap.Int("index", i+1),
			zap.Int("total", len(targets)),
			zap.String("name", target.Name),
			zap.String("url", url),
		)

		doc, err := extractor.ExtractComponent(ctx, c.Fetcher, site, target)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Warn("failed to extract component", zap.String("name", target.Name), zap.Error(err))
			report.Failed = append(report.Failed, target.Name)
			docs = append(docs, models.NewComponentDoc(target.Name, target.Path, url))
			continue
		}

		log.Debug("extracted component",
			zap.String("name", target.Name),
			zap.Int("examples", len(doc.Examples)),
			zap.Int("api", doc.API.Count()),
		)
		report.Succeeded = append(report.Succeeded, target.Name)
		report.AddComponent(doc)
		docs = append(docs, doc)
	}

	content, err := render.Guide(site.Guide(), docs)
	if err != nil {
		return report, err
	}
	if err := writeFile(report.Output, content); err != nil {
		return report, err
	}
	report.Bytes = len(content)

	log.Info("guide written", zap.String("path", report.Output), zap.Int("bytes", report.Bytes))
	return report, nil
}

// Pages converts every target of site and writes one file per page. Failed
// pages are logged and recorded; nothing is written for them.
func (c *Crawler) Pages(ctx context.Context, site extractor.PageSite, targets []models.Target) (*models.Report, error) {
	log := logger.OrNop(c.Logger).With(zap.String("site", site.Name()))
	if len(targets) == 0 {
		targets = site.Targets()
	}

	start := time.Now()
	report := &models.Report{
		Site:   site.Name(),
		Output: c.PagesPath(),
		Total:  len(targets),
	}
	defer func() { report.Duration = time.Since(start) }()

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		log.Info("fetching page",
			zap.Int("index", i+1),
			zap.Int("total", len(targets)),
			zap.String("name", target.Name),
			zap.String("url", site.URL(target)),
		)

		page, err := extractor.ExtractPage(ctx, c.Fetcher, c.Converter, site, target)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Warn("failed to extract page", zap.String("name", target.Name), zap.Error(err))
			report.Failed = append(report.Failed, target.Name)
			continue
		}

		content, err := render.Page(page)
		if err != nil {
			return report, err
		}
		path := filepath.Join(report.Output, page.Slug+".md")
		if err := writeFile(path, content); err != nil {
			return report, err
		}

		log.Info("page written", zap.String("path", path), zap.Int("bytes", len(content)))
		report.Succeeded = append(report.Succeeded, target.Name)
		report.Bytes += len(content)
	}

	return report, nil
}

// Run dispatches to Components or Pages depending on the kind of site.
func (c *Crawler) Run(ctx context.Context, site extractor.Site, targets []models.Target) (*models.Report, error) {
	switch site := site.(type) {
	case extractor.ComponentSite:
		return c.Components(ctx, site, targets)
	case extractor.PageSite:
		return c.Pages(ctx, site, targets)
	default:
		return nil, fmt.Errorf("%w: %s", extractor.ErrWrongKind, site.Name())
	}
}
