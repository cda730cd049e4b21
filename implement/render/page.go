package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/aiocean/docsync/models"
	"github.com/google/uuid"
)

var pageTemplate = template.Must(template.New("page").Parse(`---
title: {{.Title}}
source: {{.SourceURL}}
id: {{.ID}}
---

# {{.Title}}

{{.Content}}
`))

// PageID is the stable identifier of a page, derived from its source URL.
func PageID(sourceURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURL)).String()
}

// Page renders an article with its front matter.
func Page(page *models.DocPage) (string, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, map[string]string{
		"Title":     page.Title,
		"SourceURL": page.SourceURL,
		"ID":        PageID(page.SourceURL),
		"Content":   strings.TrimSpace(page.ContentMarkdown),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
