// Package splitter breaks a generated guide into an index file and one file
// per component, so a single component can be loaded on its own.
package splitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/implement/render"
)

var (
	ErrNoSeparator  = errors.New("guide has no --- separator after its header")
	ErrNoComponents = errors.New("guide has no component sections")
)

type Options struct {
	// DescriptionWidth is how many runes of a description the index shows.
	DescriptionWidth int
	// Trailer is the heading that ends the component sections.
	Trailer string
}

func (o Options) withDefaults() Options {
	if o.DescriptionWidth <= 0 {
		o.DescriptionWidth = 60
	}
	if o.Trailer == "" {
		o.Trailer = render.TrailerHeading
	}
	return o
}

type Component struct {
	Name        string
	File        string
	Description string
	Content     string
}

type Result struct {
	// Meta is the guide header without its component list.
	Meta       string
	Components []Component

	descriptionWidth int
}

const usageGuide = `## Using this guide

### Finding a component
1. Find the component in the list above
2. Open its file for the full section

### Component file layout
Each component file contains:
- Description
- Usage examples
- Props / Attributes
- Data Attributes / CSS Variables

---

*Generated by docsync split*
`

// Split parses a guide produced by render.Guide.
func Split(guide string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	lines := strings.Split(strings.ReplaceAll(guide, "\r\n", "\n"), "\n")

	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, ErrNoSeparator
	}

	res := &Result{
		Meta:             meta(lines[:sep]),
		descriptionWidth: opts.DescriptionWidth,
	}

	var current *Component
	var body []string
	flush := func() {
		if current == nil {
			return
		}
		current.Content = trimSeparators(strings.Join(body, "\n"))
		current.Description = firstLine(current.Content)
		res.Components = append(res.Components, *current)
		current, body = nil, nil
	}

	inFence := false
	for _, line := range lines[sep+1:] {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(line, "## ") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			flush()
			if name == opts.Trailer {
				break
			}
			current = &Component{Name: name, File: markdown.Anchor(name) + ".md"}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	if len(res.Components) == 0 {
		return nil, ErrNoComponents
	}
	return res, nil
}

// meta drops the component list that render.Guide puts at the end of the
// header; the index rebuilds it with links to the split files.
func meta(header []string) string {
	for i, line := range header {
		if strings.TrimSpace(line) == "## Components" {
			header = header[:i]
			break
		}
	}
	return strings.TrimSpace(strings.Join(header, "\n"))
}

func trimSeparators(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, "---") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "---"))
	}
	return s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// Index renders index.md: the guide header, then one linked entry per
// component.
func (r *Result) Index() string {
	var b strings.Builder
	b.WriteString(r.Meta)
	b.WriteString("\n\n## Components\n\n")
	for _, c := range r.Components {
		fmt.Fprintf(&b, "- [%s](./components/%s) - %s...\n", c.Name, c.File, markdown.Truncate(c.Description, r.descriptionWidth))
	}
	b.WriteString("\n\n")
	b.WriteString(usageGuide)
	return b.String()
}

// Markdown renders the standalone file of one component.
func (c Component) Markdown() string {
	return fmt.Sprintf("# %s\n\n%s\n", c.Name, c.Content)
}

// AverageSize is the mean length in bytes of the component files.
func (r *Result) AverageSize() int {
	if len(r.Components) == 0 {
		return 0
	}
	total := 0
	for _, c := range r.Components {
		total += len(c.Markdown())
	}
	return total / len(r.Components)
}

// WriteDir writes index.md and components/<file> under dir.
func WriteDir(r *Result, dir string) error {
	componentsDir := filepath.Join(dir, "components")
	if err := os.MkdirAll(componentsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(r.Index()), 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	for _, c := range r.Components {
		if err := os.WriteFile(filepath.Join(componentsDir, c.File), []byte(c.Markdown()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.File, err)
		}
	}
	return nil
}
