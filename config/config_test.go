package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aiocean/docsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DOCSYNC_TIMEOUT", "")
	t.Setenv("DOCSYNC_RETRIES", "nope")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DOCSYNC_DELAY", "750ms")
	t.Setenv("DOCSYNC_RETRIES", "2")
	t.Setenv("QDRANT_USE_TLS", "true")
	t.Setenv("DOCSYNC_FETCH_MODE", "browser")

	cfg := LoadConfig()
	assert.Equal(t, 750*time.Millisecond, cfg.Delay)
	assert.Equal(t, 2, cfg.Retries)
	assert.True(t, cfg.QdrantUseTLS)
	assert.Equal(t, "browser", cfg.FetchMode)
}

func TestReadTargets(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "targets.json5")

	require.NoError(t, os.WriteFile(name, []byte(`{
		// hand picked
		"radix-vue": {
			base_url: "https://www.radix-vue.com",
			targets: [{name: "Accordion", path: "/components/accordion.html"}],
		},
	}`), 0o644))

	targets, err := ReadTargets(name)
	require.NoError(t, err)
	assert.Equal(t, "https://www.radix-vue.com", targets["radix-vue"].BaseURL)
	assert.Equal(t, []models.Target{{Name: "Accordion", Path: "/components/accordion.html"}}, targets["radix-vue"].Targets)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "targets.local.json5"), []byte(`{
		"radix-vue": {base_url: "http://localhost:5173"},
		"headlessui": {targets: [{name: "menu", path: "menu"}]},
	}`), 0o644))

	targets, err = ReadTargets(name)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", targets["radix-vue"].BaseURL)
	assert.Len(t, targets["radix-vue"].Targets, 1)
	assert.Equal(t, "menu", targets["headlessui"].Targets[0].Name)
}

func TestReadTargetsMissing(t *testing.T) {
	_, err := ReadTargets(filepath.Join(t.TempDir(), "absent.json5"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
