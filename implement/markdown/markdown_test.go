package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleConvert(t *testing.T) {
	html := `<script>track()</script><nav><a href="/">Home</a></nav>
<h1 class="title">Hooks</h1>
<p>Hooks run <strong>shell commands</strong> at <em>fixed</em> points.</p>
<pre><code class="language-json">{"hooks": {}}</code></pre>
<ul><li>PreToolUse</li><li>PostToolUse</li></ul>
<p>See <a href="/docs/settings" class="link">settings</a> &amp; <code>matcher</code>.</p>
<button type="button">Copy</button>`

	out, err := Simple{}.Convert(html)
	require.NoError(t, err)

	assert.NotContains(t, out, "track()")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "Copy")
	assert.True(t, strings.HasPrefix(out, "# Hooks"), out)
	assert.Contains(t, out, "Hooks run **shell commands** at *fixed* points.")
	assert.Contains(t, out, "```\n{\"hooks\": {}}\n```")
	assert.Contains(t, out, "- PreToolUse\n- PostToolUse")
	assert.Contains(t, out, "See [settings](/docs/settings) & `matcher`.")
	assert.NotContains(t, out, "\n\n\n\n")
}

func TestSimpleConvertHeadingLevels(t *testing.T) {
	out, err := Simple{}.Convert(`<h2 id="a">Two</h2><h3>Three</h3><h6>Six</h6>`)
	require.NoError(t, err)
	assert.Equal(t, "## Two\n\n### Three\n\n###### Six", out)
}

func TestSimpleConvertTable(t *testing.T) {
	out, err := Simple{}.Convert(`<table><tr><th>Prop</th><th>Type</th></tr><tr><td>open</td><td>boolean</td></tr></table>`)
	require.NoError(t, err)
	assert.Equal(t, "| Prop | Type | \n| open | boolean |", out)
}

func TestSimpleConvertEmpty(t *testing.T) {
	out, err := Simple{}.Convert("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSimpleConvertIdempotentOnCleanText(t *testing.T) {
	clean := "# Title\n\nSome text with **bold** and a [link](https://example.com).\n\n- one\n- two"
	once, err := Simple{}.Convert(clean)
	require.NoError(t, err)
	assert.Equal(t, clean, once)

	twice, err := Simple{}.Convert(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestLibraryConverter(t *testing.T) {
	out, err := NewConverter().Convert(`<h2>Install</h2><p>Run <code>npm i</code>.</p><script>x()</script><pre><code class="language-bash">npm install radix-vue</code></pre>`)
	require.NoError(t, err)
	assert.Contains(t, out, "## Install")
	assert.Contains(t, out, "Run `npm i`.")
	assert.Contains(t, out, "```")
	assert.Contains(t, out, "npm install radix-vue")
	assert.NotContains(t, out, "x()")
}

func TestByName(t *testing.T) {
	c, err := ByName("regex")
	require.NoError(t, err)
	assert.IsType(t, Simple{}, c)

	_, err = ByName("library")
	require.NoError(t, err)

	_, err = ByName("pandoc")
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	in := "\n\n# A\n\n\n\n\nbody\n   \n\t\n\n\n```\n```\ncode\n```\n\n"
	out := Clean(in)
	assert.Equal(t, "# A\n\nbody\n\n```\n\ncode\n```", out)
	assert.Equal(t, out, Clean(out))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c ", 0))
	assert.Equal(t, "abc", CleanText("abcdef", 3))
	assert.Equal(t, "组件文", CleanText("组件文档", 3))
	assert.Equal(t, "", CleanText("   ", 10))
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `string \| number`, EscapeCell("string | number", 0))
	assert.Equal(t, `a \|`, EscapeCell("a | b", 4))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "alert-dialog", Anchor("Alert Dialog"))
	assert.Equal(t, "nextjs", Anchor("Next.js"))
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Radio Group", TitleFromSlug("radio-group"))
	assert.Equal(t, "Menu", TitleFromSlug("menu"))
	assert.Equal(t, "", TitleFromSlug(""))
}
