package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/aiocean/docsync/implement/fetcher"
	"github.com/aiocean/docsync/implement/markdown"
	"github.com/aiocean/docsync/implement/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureFetcher serves testdata files by URL.
type fixtureFetcher map[string]string

func (f fixtureFetcher) Fetch(_ context.Context, req fetcher.Request) (string, error) {
	name, ok := f[req.URL]
	if !ok {
		return "", &fetcher.StatusError{URL: req.URL, Code: http.StatusNotFound, Status: "404 Not Found"}
	}
	data, err := os.ReadFile(filepath.Join("testdata", name))
	return string(data), err
}

func (f fixtureFetcher) Close() error { return nil }

func newExtractorClient(t *testing.T) *rpc.ExtractorServiceClient {
	t.Helper()
	svc := &ExtractorServer{
		Fetcher: fixtureFetcher{
			"https://headlessui.com/vue/dialog":               "headlessui_dialog.html",
			"https://code.claude.com/docs/zh-CN/hooks":        "claude_hooks.html",
			"https://www.radix-vue.com/components/custom.html": "radixvue_accordion.html",
		},
		Converter: markdown.NewConverter(),
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.NewExtractorServiceHandler(svc))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return rpc.NewExtractorServiceClient(server.Client(), server.URL)
}

func TestExtractorServerComponent(t *testing.T) {
	client := newExtractorClient(t)

	res, err := client.Extract(context.Background(), connect.NewRequest(&rpc.ExtractRequest{
		Site:   "headlessui",
		Target: "dialog",
	}))
	require.NoError(t, err)

	require.NotNil(t, res.Msg.Component)
	assert.Nil(t, res.Msg.Page)
	assert.Equal(t, "https://headlessui.com/vue/dialog", res.Msg.Component.URL)
	assert.Len(t, res.Msg.Component.API.Props, 3)
	assert.True(t, strings.HasPrefix(res.Msg.Markdown, "## Dialog\n\n**Docs**: [https://headlessui.com/vue/dialog]"))
	assert.Contains(t, res.Msg.Markdown, "### Props")
}

func TestExtractorServerTargetByAnchor(t *testing.T) {
	client := newExtractorClient(t)

	_, err := client.Extract(context.Background(), connect.NewRequest(&rpc.ExtractRequest{
		Site:   "radix-vue",
		Target: "radio group",
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestExtractorServerURL(t *testing.T) {
	client := newExtractorClient(t)

	res, err := client.Extract(context.Background(), connect.NewRequest(&rpc.ExtractRequest{
		Site: "radix-vue",
		URL:  "https://www.radix-vue.com/components/custom.html",
	}))
	require.NoError(t, err)
	assert.Equal(t, "custom.html", res.Msg.Component.Name)
	assert.Contains(t, res.Msg.Markdown, "### Data Attributes / CSS Variables")
}

func TestExtractorServerPage(t *testing.T) {
	client := newExtractorClient(t)

	res, err := client.Extract(context.Background(), connect.NewRequest(&rpc.ExtractRequest{
		Site:   "claude-docs",
		Target: "hooks",
	}))
	require.NoError(t, err)

	require.NotNil(t, res.Msg.Page)
	assert.Equal(t, "Hooks reference", res.Msg.Page.Title)
	assert.True(t, strings.HasPrefix(res.Msg.Markdown, "---\ntitle: Hooks reference\nsource: https://code.claude.com/docs/zh-CN/hooks\n"))
}

func TestExtractorServerErrors(t *testing.T) {
	client := newExtractorClient(t)

	tests := []struct {
		name string
		req  *rpc.ExtractRequest
		code connect.Code
	}{
		{"unknown site", &rpc.ExtractRequest{Site: "vuetify", Target: "btn"}, connect.CodeNotFound},
		{"unknown target", &rpc.ExtractRequest{Site: "headlessui", Target: "carousel"}, connect.CodeInvalidArgument},
		{"no target", &rpc.ExtractRequest{Site: "headlessui"}, connect.CodeInvalidArgument},
		{"missing page", &rpc.ExtractRequest{Site: "claude-docs", Target: "skills"}, connect.CodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Extract(context.Background(), connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}
}
