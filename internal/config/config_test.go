package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "LOG_LEVEL", "LOG_FORMAT",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_REGION", "MINIO_USE_SSL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.OpenAI.Model)
	assert.Equal(t, DefaultDataset, cfg.Dataset.File)
	assert.Equal(t, DefaultLanguage, cfg.Review.Language)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
openai:
  model: gpt-4o
  maxTokens: 900
dataset:
  file: ads/all.jsonl
minio:
  endpoint: localhost:9000
  useSSL: true
log:
  level: debug
`), 0o644))

	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MINIO_USE_SSL", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 900, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "ads/all.jsonl", cfg.Dataset.File)
	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.False(t, cfg.Minio.UseSSL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINIO_USE_SSL", "maybe")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "MINIO_USE_SSL")
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv("CONFIG_PATH", "/etc/ugc/config.yaml")
	assert.Equal(t, "/etc/ugc/config.yaml", Path())
}
