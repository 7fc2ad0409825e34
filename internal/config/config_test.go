package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
openfoodfacts:
  base_url: https://world.openfoodfacts.net
  user_agent: glutenguard-test/1.0 (ops@example.com)
  timeout: 5s
recipes:
  provider: mealdb
  base_url: http://localhost:9999/api/json/v1/1
  timeout: 3s
store:
  backend: file
  path: /var/lib/glutenguard
  cache_ttl: 24h
  history_limit: 50
phrases:
  file: ./phrases.yaml
  watch: true
server:
  port: 9000
notify:
  webhook_url: https://hooks.example.com/T000/B000
  timeout: 2s
log:
  level: debug
  format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://world.openfoodfacts.net", cfg.OpenFoodFacts.BaseURL)
	assert.Equal(t, "glutenguard-test/1.0 (ops@example.com)", cfg.OpenFoodFacts.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.OpenFoodFacts.Timeout.Duration)
	assert.Equal(t, RecipesMealDB, cfg.Recipes.Provider)
	assert.Equal(t, "http://localhost:9999/api/json/v1/1", cfg.Recipes.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Recipes.Timeout.Duration)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "/var/lib/glutenguard", cfg.Store.Path)
	assert.Equal(t, 24*time.Hour, cfg.Store.CacheTTL.Duration)
	assert.Equal(t, 50, cfg.Store.HistoryLimit)
	assert.Equal(t, "./phrases.yaml", cfg.Phrases.File)
	assert.True(t, cfg.Phrases.Watch)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://hooks.example.com/T000/B000", cfg.Notify.WebhookURL)
	assert.Equal(t, 2*time.Second, cfg.Notify.Timeout.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "https://world.openfoodfacts.org", cfg.OpenFoodFacts.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OpenFoodFacts.Timeout.Duration)
	assert.Equal(t, RecipesMealDB, cfg.Recipes.Provider)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, filepath.Join(DataDir(), "glutenguard.db"), cfg.Store.Path)
	assert.Equal(t, 168*time.Hour, cfg.Store.CacheTTL.Duration)
	assert.Equal(t, 200, cfg.Store.HistoryLimit)
	assert.Equal(t, 8642, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_DefaultStorePathFollowsBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{backend: "sqlite", want: filepath.Join(DataDir(), "glutenguard.db")},
		{backend: "file", want: filepath.Join(DataDir(), "store")},
		{backend: "memory", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "store:\n  backend: "+tt.backend+"\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Store.Path)
		})
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("GG_OFF_AGENT", "my-app/2.0")
	t.Setenv("GG_PORT", "7001")

	yaml := `
openfoodfacts:
  user_agent: ${GG_OFF_AGENT}
server:
  port: ${GG_PORT}
`
	cfg, err := Load(writeConfig(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, "my-app/2.0", cfg.OpenFoodFacts.UserAgent)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoad_RecipesNone(t *testing.T) {
	cfg, err := Load(writeConfig(t, "recipes:\n  provider: none\n"))
	require.NoError(t, err)
	assert.Equal(t, RecipesNone, cfg.Recipes.Provider)
	assert.Empty(t, cfg.Recipes.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	yaml := `
openfoodfacts:
  base_url: ftp://example.com
recipes:
  provider: spoonacular
store:
  backend: redis
  history_limit: -1
phrases:
  watch: true
server:
  port: 70000
notify:
  webhook_url: hooks.example.com
log:
  level: verbose
  format: xml
`
	_, err := Load(writeConfig(t, yaml))
	require.Error(t, err)

	for _, want := range []string{
		"openfoodfacts.base_url",
		"recipes.provider",
		"store.backend",
		"store.history_limit",
		"phrases.file is required",
		"server.port",
		"notify.webhook_url",
		"log.level",
		"log.format",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "store:\n  cache_ttl: a-week\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/glutenguard.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(writeConfig(t, "server:\n  port: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, ":\n\t- :\n  bad:\n\t  indent")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestTemplateMatchesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, string(Template)))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
