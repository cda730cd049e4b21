package indexer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiocean/docsync/implement/markdown"
)

var ErrEmptyDocument = errors.New("document has no content")

type Section struct {
	Title string
	// Anchor is the URL fragment of the section, with its leading '#'.
	Anchor  string
	Order   int
	Content string
}

// Document is a generated Markdown file prepared for indexing.
type Document struct {
	Title     string
	SourceURL string
	Content   string
	Sections  []Section
}

// SectionURL is the address a section is stored under.
func (d *Document) SectionURL(s Section) string {
	return d.SourceURL + s.Anchor
}

// frontMatter reads the key: value block that render.Page writes. It
// returns the remaining body.
func frontMatter(content string) (map[string]string, string) {
	if !strings.HasPrefix(content, "---\n") {
		return nil, content
	}
	head, body, ok := strings.Cut(content[len("---\n"):], "\n---\n")
	if !ok {
		return nil, content
	}

	values := map[string]string{}
	for _, line := range strings.Split(head, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values, body
}

// ParseDocument reads a page written by the crawler or a component file
// written by the splitter. sourceURL is used when the file carries none.
func ParseDocument(content, sourceURL string) (*Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	meta, body := frontMatter(content)
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyDocument
	}

	doc := &Document{
		Title:     meta["title"],
		SourceURL: sourceURL,
		Content:   body,
	}
	if source := meta["source"]; source != "" {
		doc.SourceURL = source
	}

	var current *Section
	var lines []string
	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(strings.Join(lines, "\n"))
			doc.Sections = append(doc.Sections, *current)
		}
		current, lines = nil, nil
	}

	inFence := false
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		switch {
		case !inFence && doc.Title == "" && strings.HasPrefix(line, "# "):
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case !inFence && strings.HasPrefix(line, "## "):
			flush()
			title := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			current = &Section{
				Title:  title,
				Anchor: "#" + markdown.Anchor(title),
				Order:  len(doc.Sections),
			}
		}
		if current != nil {
			lines = append(lines, line)
		}
	}
	flush()

	return doc, nil
}

// LoadDir parses every Markdown file under dir. Files without a source in
// their front matter are identified by their path.
func LoadDir(dir string) ([]*Document, error) {
	var docs []*Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc, err := ParseDocument(string(data), "file://"+filepath.ToSlash(path))
		if errors.Is(err, ErrEmptyDocument) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
