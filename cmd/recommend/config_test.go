package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/workflow"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitServerConfigDefaults(t *testing.T) {
	cfg, err := InitServerConfig([]string{"-config", defaultConfigPath})
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "data/menu.csv", cfg.Paths.Catalog)
	assert.Equal(t, 5000, cfg.Server.RequestTimeoutMs)
}

func TestInitServerConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  allow_origins: ["http://a.example"]
log:
  level: debug
paths:
  catalog: file.csv
  pipelines: file.json
`)

	cfg, err := InitServerConfig([]string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://a.example"}, cfg.Server.AllowOrigins)

	t.Setenv("BAKERY_PORT", "9100")
	t.Setenv("BAKERY_CATALOG", "env.csv")
	t.Setenv("BAKERY_ALLOW_ORIGINS", "http://b.example, http://c.example")
	cfg, err = InitServerConfig([]string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "env.csv", cfg.Paths.Catalog)
	assert.Equal(t, []string{"http://b.example", "http://c.example"}, cfg.Server.AllowOrigins)

	cfg, err = InitServerConfig([]string{"-config", path, "-port", "9200", "-catalog", "flag.csv", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "9200", cfg.Server.Port)
	assert.Equal(t, "flag.csv", cfg.Paths.Catalog)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "file.json", cfg.Paths.Pipelines)
}

func TestInitServerConfigErrors(t *testing.T) {
	_, err := InitServerConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err, "explicit missing config file should fail")

	path := writeConfig(t, "log:\n  level: loud\n")
	_, err = InitServerConfig([]string{"-config", path})
	assert.ErrorContains(t, err, "invalid server config")

	t.Setenv("BAKERY_DEBUG", "maybe")
	_, err = InitServerConfig([]string{"-config", defaultConfigPath})
	assert.ErrorContains(t, err, "BAKERY_DEBUG")

	t.Setenv("BAKERY_DEBUG", "")
	_, err = InitServerConfig([]string{"-port", "http"})
	assert.ErrorContains(t, err, "invalid server config")
}

func TestShippedConfigs(t *testing.T) {
	engine, err := workflow.NewEngine("../../configs/pipelines.json", RegisterNodes())
	require.NoError(t, err)
	assert.Equal(t, []string{"combos", "drinks", "pairing"}, engine.Scenes())

	cat, err := catalog.Load("../../data/menu.csv")
	require.NoError(t, err)
	assert.Positive(t, cat.Len())

	fileCfg, err := loadServerConfig("../../configs/server.yaml")
	require.NoError(t, err)
	cfg := defaultServerConfig()
	cfg.mergeFile(fileCfg)
	assert.NoError(t, cfg.validate())
}
