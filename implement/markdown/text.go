package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emptyFence = regexp.MustCompile("```\n```")
	blankLines = regexp.MustCompile(`(?m)^[ \t]+$`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean tidies converter output. Running it twice gives the same result as
// running it once.
func Clean(s string) string {
	s = emptyFence.ReplaceAllString(s, "```\n")
	s = blankLines.ReplaceAllString(s, "")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// CleanText collapses whitespace runs and cuts the result to limit runes.
// A limit of zero keeps everything.
func CleanText(s string, limit int) string {
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	return Truncate(s, limit)
}

// Truncate cuts s to at most n runes. n <= 0 keeps s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// RuneLen is len for text, counted the way the truncation limits are.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// EscapeCell makes s safe inside a table cell and applies the width limit.
func EscapeCell(s string, width int) string {
	return Truncate(strings.ReplaceAll(s, "|", `\|`), width)
}

// Anchor is the fragment a heading gets in the generated guides, and the base
// name of the file a split component is written to.
func Anchor(name string) string {
	a := strings.ToLower(name)
	a = strings.ReplaceAll(a, " ", "-")
	return strings.ReplaceAll(a, ".", "")
}

// TitleFromSlug turns "radio-group" into "Radio Group".
func TitleFromSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
