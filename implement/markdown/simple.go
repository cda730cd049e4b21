package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func rw(pattern, repl string) rewrite {
	return rewrite{re: regexp.MustCompile(pattern), repl: repl}
}

var stripRewrites = []rewrite{
	rw(`(?is)<script[^>]*>.*?</script>`, ""),
	rw(`(?is)<style[^>]*>.*?</style>`, ""),
	rw(`(?is)<nav[^>]*>.*?</nav>`, ""),
	rw(`(?is)<header[^>]*>.*?</header>`, ""),
	rw(`(?is)<footer[^>]*>.*?</footer>`, ""),
	rw(`(?is)<aside[^>]*>.*?</aside>`, ""),
	rw(`(?i)<input[^>]*>`, ""),
	rw(`(?is)<button[^>]*>.*?</button>`, ""),
}

var codeRewrites = []rewrite{
	rw(`<pre><code[^>]*>`, "```\n"),
	rw(`</code></pre>`, "\n```"),
	rw(`<code[^>]*>`, "`"),
	rw(`</code>`, "`"),
}

// h6 down to h1.
var headingRewrites = func() []rewrite {
	out := make([]rewrite, 0, 6)
	for i := 6; i >= 1; i-- {
		out = append(out, rw(
			fmt.Sprintf(`<h%d[^>]*>(.*?)</h%d>`, i, i),
			"\n"+strings.Repeat("#", i)+" $1\n",
		))
	}
	return out
}()

var inlineRewrites = []rewrite{
	rw(`<strong>(.*?)</strong>`, "**$1**"),
	rw(`<b>(.*?)</b>`, "**$1**"),
	rw(`<em>(.*?)</em>`, "*$1*"),
	rw(`<i>(.*?)</i>`, "*$1*"),
	rw(`<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`, "[$2]($1)"),
}

var blockRewrites = []rewrite{
	rw(`<li>(.*?)</li>`, "- $1\n"),
	rw(`<ul[^>]*>`, "\n"),
	rw(`</ul>`, "\n"),
	rw(`<ol[^>]*>`, "\n"),
	rw(`</ol>`, "\n"),
	rw(`<br\s*/?>`, "\n"),
	rw(`(?s)<p[^>]*>(.*?)</p>`, "$1\n\n"),
	rw(`(?s)<div[^>]*>(.*?)</div>`, "$1\n"),
	rw(`<table[^>]*>`, "\n"),
	rw(`</table>`, "\n"),
	rw(`<tr[^>]*>`, "| "),
	rw(`</tr>`, "\n"),
	rw(`<td[^>]*>(.*?)</td>`, "$1 | "),
	rw(`<th[^>]*>(.*?)</th>`, "$1 | "),
}

var (
	remainingTags = regexp.MustCompile(`<[^>]+>`)
	manyNewlines  = regexp.MustCompile(`\n{4,}`)
)

// Simple is a regular expression based HTML to Markdown conversion. It is
// an approximation: nesting is not tracked and anything it does not know is
// reduced to its text.
type Simple struct{}

func (Simple) Convert(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	text := s
	for _, group := range [][]rewrite{stripRewrites, codeRewrites, headingRewrites, inlineRewrites, blockRewrites} {
		for _, r := range group {
			text = r.re.ReplaceAllString(text, r.repl)
		}
	}

	text = remainingTags.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = manyNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text), nil
}
