package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaform/internal/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.Debounce)
	assert.Equal(t, 10*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, "select", cfg.Render.EnumPresentation)
	assert.Equal(t, "en", cfg.Render.Lang)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := writeFile(t, "schemaform.yaml", `
schema: ./user.schema.json
record: User
log:
  level: debug
  format: json
server:
  addr: 127.0.0.1:9000
  watch: true
render:
  uri: /users
  page: true
theme:
  name: acme
  css_vars:
    --brand: "#123456"
`)

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "./user.schema.json", cfg.Schema)
	assert.Equal(t, "User", cfg.Record)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, "/users", cfg.Render.URI)
	assert.True(t, cfg.Render.Page)
	assert.Equal(t, "acme", cfg.Theme.Name)
	assert.Equal(t, map[string]string{"--brand": "#123456"}, cfg.Theme.CSSVars)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "schemaform.yaml", "log:\n  level: debug\n")
	t.Setenv("SCHEMAFORM_LOG_LEVEL", "warn")
	t.Setenv("SCHEMAFORM_RENDER_URI", "/from-env")

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/from-env", cfg.Render.URI)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
