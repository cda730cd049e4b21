package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aiocean/docsync/config"
	"github.com/aiocean/docsync/implement/extractor"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/render"
	"github.com/aiocean/docsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSites(t *testing.T) {
	out, err := run(t, "sites")
	require.NoError(t, err)
	assert.Contains(t, out, "radix-vue")
	assert.Contains(t, out, "https://code.claude.com/docs/zh-CN")
	assert.Contains(t, out, "guide")
	assert.Contains(t, out, "pages")
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	doc := models.NewComponentDoc("Tabs", "/components/tabs.html", "https://www.radix-vue.com/components/tabs.html")
	doc.Description = "A set of layered sections of content."
	guide, err := render.Guide(extractor.NewRadixVue().Guide(), []*models.ComponentDoc{doc})
	require.NoError(t, err)

	input := filepath.Join(dir, "radix-vue.md")
	require.NoError(t, os.WriteFile(input, []byte(guide), 0o644))

	out, err := run(t, "split", input)
	require.NoError(t, err)
	assert.Contains(t, out, "1 components written to")

	index, err := os.ReadFile(filepath.Join(dir, "radix-vue", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "- [Tabs](./components/tabs.md) - A set of layered sections of content....")

	_, err = os.Stat(filepath.Join(dir, "radix-vue", "components", "tabs.md"))
	assert.NoError(t, err)
}

func TestSplitCommandMissingFile(t *testing.T) {
	_, err := run(t, "split", filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorContains(t, err, "failed to read guide")
}

func TestSiteOptions(t *testing.T) {
	saved := fetchOpts
	t.Cleanup(func() { fetchOpts = saved })

	fetchOpts = fetchFlags{timeout: 5 * time.Second, retries: 2}
	mode, delay, opts, err := siteOptions(fetchCmd, extractor.NewRadixVue())
	require.NoError(t, err)
	assert.Equal(t, fetcher.ModeBrowser, mode)
	assert.Equal(t, time.Duration(0), delay)
	assert.Equal(t, 2*time.Second, opts.Settle)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.Retries)

	fetchOpts = fetchFlags{mode: "http", delay: time.Second}
	mode, delay, _, err = siteOptions(fetchCmd, extractor.NewClaudeDocs())
	require.NoError(t, err)
	assert.Equal(t, fetcher.ModeHTTP, mode)
	assert.Equal(t, time.Second, delay)

	fetchOpts = fetchFlags{}
	_, delay, _, err = siteOptions(fetchCmd, extractor.NewClaudeDocs())
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, delay)

	fetchOpts = fetchFlags{mode: "curl"}
	_, _, _, err = siteOptions(fetchCmd, extractor.NewClaudeDocs())
	assert.Error(t, err)
}

func TestFetchUnknownConverter(t *testing.T) {
	saved := fetchOpts
	t.Cleanup(func() { fetchOpts = saved })

	_, err := run(t, "fetch", "claude-docs", "--converter", "pandoc")
	assert.ErrorContains(t, err, "unknown converter")
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "implement", "extractor", "testdata", name))
	require.NoError(t, err)
	return data
}

// newDocsServer serves a few fixture pages; every other path is a 404.
func newDocsServer(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string][]byte{
		"/docs/components":           fixture(t, "index.html"),
		"/docs/components/accordion": fixture(t, "radixvue_accordion.html"),
		"/docs/hooks":                fixture(t, "claude_hooks.html"),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write(page)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeTargets(t *testing.T, dir string, targets config.Targets) string {
	t.Helper()
	data, err := json.Marshal(targets)
	require.NoError(t, err)
	name := filepath.Join(dir, "targets.json5")
	require.NoError(t, os.WriteFile(name, data, 0o644))
	return name
}

func TestFetchExitStatus(t *testing.T) {
	saved := fetchOpts
	t.Cleanup(func() { fetchOpts = saved })

	server := newDocsServer(t)
	dir := t.TempDir()
	targets := writeTargets(t, dir, config.Targets{
		"claude-docs": {
			BaseURL: server.URL + "/docs",
			Targets: []models.Target{{Name: "hooks", Path: "hooks"}, {Name: "gone", Path: "gone"}},
		},
	})
	out := filepath.Join(dir, "out")

	stdout, err := run(t, "fetch", "claude-docs", "--mode", "http", "--converter", "library",
		"--out", out, "--targets", targets, "--strict=false")
	require.NoError(t, err, "failed pages alone do not fail the run")
	assert.Contains(t, stdout, "gone")

	page, err := os.ReadFile(filepath.Join(out, "claude-code", "hooks.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "source: "+server.URL+"/docs/hooks")
	_, err = os.Stat(filepath.Join(out, "claude-code", "gone.md"))
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, "fetch", "claude-docs", "--mode", "http", "--converter", "library",
		"--out", out, "--targets", targets, "--strict")
	assert.ErrorContains(t, err, "1 pages failed")
}

func TestDiscoverWriteThenFetch(t *testing.T) {
	savedDiscover, savedFetch := discoverOpts, fetchOpts
	t.Cleanup(func() {
		discoverOpts = savedDiscover
		fetchOpts = savedFetch
	})

	server := newDocsServer(t)
	dir := t.TempDir()
	targets := filepath.Join(dir, "targets.json5")

	stdout, err := run(t, "discover", server.URL+"/docs/components", "--mode", "http",
		"--pattern", "/docs/components/", "--wait-for", "body", "--inspect", "0",
		"--write", targets, "--site", "radix-vue")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 pages linked from")
	assert.Contains(t, stdout, "targets written to "+targets)

	read, err := config.ReadTargets(targets)
	require.NoError(t, err)
	assert.Equal(t, config.Targets{
		"radix-vue": {
			BaseURL: server.URL,
			Targets: []models.Target{
				{Name: "Accordion", Path: "/docs/components/accordion"},
				{Name: "Alert Dialog", Path: "/docs/components/alert-dialog"},
				{Name: "checkbox", Path: "/docs/components/checkbox"},
			},
		},
	}, read)

	out := filepath.Join(dir, "out")
	_, err = run(t, "fetch", "radix-vue", "--mode", "http", "--converter", "library",
		"--out", out, "--targets", targets, "--strict=false")
	require.NoError(t, err)

	guide, err := os.ReadFile(filepath.Join(out, "frameworks", "radix-vue.md"))
	require.NoError(t, err)
	assert.Contains(t, string(guide), "## Accordion")
	assert.Contains(t, string(guide), "A vertically stacked set of interactive headings")
	assert.Contains(t, string(guide), "## Alert Dialog")
}

func TestDiscoverWriteRequiresSite(t *testing.T) {
	saved := discoverOpts
	t.Cleanup(func() { discoverOpts = saved })

	_, err := run(t, "discover", "http://127.0.0.1:1/docs", "--write", filepath.Join(t.TempDir(), "t.json5"), "--site", "")
	assert.ErrorContains(t, err, "--site is required")
}
