package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/models"
)

// TrailerHeading closes the component sections of a guide.
const TrailerHeading = "Best Practices"

var headerTemplate = template.Must(template.New("guideHeader").Parse(`# {{.Title}}

> Generated by docsync
> Homepage: {{.Homepage}}

## Overview

- **Framework**: {{.Framework}}
{{- if .Version}}
- **Version**: {{.Version}}
{{- end}}
- **Homepage**: {{.Homepage}}
- **Package**: ` + "`{{.Package}}`" + `
- **Stack**: {{.Stack}}
- **Highlights**: {{.Highlights}}

## Installation

` + "```bash" + `
{{.Install}}
` + "```" + `
{{if .Concepts}}
## Core Concepts

{{range .Concepts}}- {{.}}
{{end}}{{end}}
## Components

`))

// DisplayName is the heading a component gets in a guide.
func DisplayName(layout models.Layout, name string) string {
	if layout.TitleCaseNames {
		return markdown.TitleFromSlug(name)
	}
	return name
}

// Guide renders the whole guide for a site: header, component list, one
// section per component and the best practices trailer.
func Guide(guide models.Guide, docs []*models.ComponentDoc) (string, error) {
	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, guide); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	for _, doc := range docs {
		name := DisplayName(guide.Layout, doc.Name)
		fmt.Fprintf(&buf, "- [%s](#%s)\n", name, markdown.Anchor(name))
	}
	buf.WriteString("\n---\n\n")

	for _, doc := range docs {
		buf.WriteString(Component(guide.Layout, doc))
		buf.WriteString("---\n\n")
	}

	fmt.Fprintf(&buf, "## %s\n\n%s\n\n---\n\n%s\n", TrailerHeading, strings.TrimSpace(guide.BestPractices), guide.Footer)
	return buf.String(), nil
}

// Component renders one component section, without the trailing separator.
func Component(layout models.Layout, doc *models.ComponentDoc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", DisplayName(layout, doc.Name))

	if layout.LinkBeforeDescription {
		fmt.Fprintf(&b, "**Docs**: [%s](%s)\n\n", doc.URL, doc.URL)
	}
	if doc.Description != "" {
		b.WriteString(doc.Description + "\n\n")
	}
	if !layout.LinkBeforeDescription {
		fmt.Fprintf(&b, "📖 [Official docs](%s)\n\n", doc.URL)
	}

	if examples := limit(doc.Examples, layout.MaxExamples); len(examples) > 0 {
		b.WriteString("### Examples\n\n")
		for _, ex := range examples {
			lang := layout.ExampleLanguage
			if lang == "" {
				lang = ex.Language
			}
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", lang, ex.Code)
		}
	}

	if props := limit(doc.API.Props, layout.MaxProps); len(props) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", layout.PropsHeading)
		b.WriteString("| Property | Type | Description |\n")
		b.WriteString("|------|------|------|\n")
		for _, p := range props {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				span(cell(layout, p.Name, layout.PropNameWidth), layout.CodeSpanNames),
				span(cell(layout, p.Type, layout.PropTypeWidth), layout.CodeSpanTypes),
				cell(layout, p.Description, layout.PropDescWidth),
			)
		}
		b.WriteString("\n")
	}

	if events := limit(doc.API.Events, layout.MaxEvents); len(events) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", layout.EventsHeading)
		b.WriteString("| Name | Description |\n")
		b.WriteString("|------|------|\n")
		for _, e := range events {
			fmt.Fprintf(&b, "| %s | %s |\n",
				span(cell(layout, e.Name, layout.EventNameWidth), layout.CodeSpanNames),
				cell(layout, e.Description, layout.EventDescWidth),
			)
		}
		b.WriteString("\n")
	}

	if attrs := limit(doc.API.DataAttributes, layout.MaxDataAttributes); len(attrs) > 0 {
		b.WriteString("### Data Attributes / CSS Variables\n\n")
		b.WriteString("| Attribute | Description |\n")
		b.WriteString("|------|------|\n")
		for _, a := range attrs {
			fmt.Fprintf(&b, "| %s | %s |\n",
				span(cell(layout, a.Name, layout.DataAttrNameWidth), layout.CodeSpanNames),
				cell(layout, a.Description, layout.DataAttrDescWidth),
			)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// limit keeps the first n items. A zero n drops the group entirely.
func limit[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}
	return items
}

func cell(layout models.Layout, s string, width int) string {
	if layout.EscapeCells {
		return markdown.EscapeCell(s, width)
	}
	return markdown.Truncate(s, width)
}

func span(s string, on bool) string {
	if on {
		return "`" + s + "`"
	}
	return s
}
