package markdown

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// Converter turns an HTML fragment into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// noiseTags never carry article content.
var noiseTags = []string{"script", "style", "nav", "header", "footer", "aside", "input", "button"}

type libraryConverter struct {
	conv *md.Converter
}

// NewConverter returns the html-to-markdown backed converter with GitHub
// flavored tables, ATX headings and fenced code blocks.
func NewConverter() Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:   "atx",
		CodeBlockStyle: "fenced",
		Fence:          "```",
	})
	conv.Use(plugin.GitHubFlavored())
	conv.Remove(noiseTags...)
	return &libraryConverter{conv: conv}
}

func (c *libraryConverter) Convert(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return out, nil
}

// ByName picks a converter from its configuration name.
func ByName(name string) (Converter, error) {
	switch name {
	case "", "library":
		return NewConverter(), nil
	case "regex", "simple":
		return Simple{}, nil
	default:
		return nil, fmt.Errorf("unknown converter %q", name)
	}
}
