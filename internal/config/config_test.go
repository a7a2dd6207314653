package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	require.NoError(t, os.Chdir(dir))
}

func load(t *testing.T, configContent string) (*Config, error) {
	t.Helper()
	configPath := ""
	if configContent != "" {
		configPath = filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	}
	loader, err := NewConfigLoader(configPath)
	require.NoError(t, err)
	return loader.Load()
}

func TestConfigLoader_Load(t *testing.T) {
	t.Run("missing config file uses defaults", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := load(t, "")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins)
		assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
		assert.Equal(t, []string{"legal", "legal-knowledge-base"}, cfg.Chroma.Collections)
		assert.Equal(t, 5, cfg.RAG.TopK)
		assert.Equal(t, 12, cfg.RateLimit.MaxRequests)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window())
		assert.Equal(t, 20, cfg.Translation.SmallBatchLimit)
		assert.Equal(t, 15, cfg.Translation.ChunkSize)
		assert.Equal(t, 5, cfg.Translation.ItemBatchSize)
		assert.Equal(t, 3*time.Second, cfg.Translation.InterLanguageDelay())
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		cfg, err := load(t, `server:
  port: 9090
  cors:
    allowed_origins:
      - https://nyayasahayak.example
gemini:
  model: gemini-2.0-pro
chroma:
  url: http://chroma.internal:8000
  collections:
    - legal
rag:
  top_k: 7
rate_limit:
  max_requests: 10
  window_seconds: 30
translation:
  chunk_size: 12
  inter_language_delay_seconds: 0
`)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, []string{"https://nyayasahayak.example"}, cfg.Server.CORS.AllowedOrigins)
		assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
		assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
		assert.Equal(t, "http://chroma.internal:8000", cfg.Chroma.URL)
		assert.Equal(t, []string{"legal"}, cfg.Chroma.Collections)
		assert.Equal(t, 7, cfg.RAG.TopK)
		assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
		assert.Equal(t, 30*time.Second, cfg.RateLimit.Window())
		assert.Equal(t, 12, cfg.Translation.ChunkSize)
		assert.Equal(t, time.Duration(0), cfg.Translation.InterLanguageDelay())
		// Untouched sections keep their defaults.
		assert.Equal(t, 20, cfg.Translation.SmallBatchLimit)
		assert.Equal(t, 5, cfg.Translation.ItemBatchSize)
	})

	t.Run("environment variables override the file", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		t.Setenv("GEMINI_MODEL", "env-model")
		t.Setenv("RAG_TOP_K_RESULTS", "9")
		t.Setenv("CHROMADB_API_KEY", "ck-123")
		t.Setenv("CHROMADB_TENANT", "tenant-1")
		t.Setenv("CHROMADB_COLLECTIONS", "legal,case-law")

		cfg, err := load(t, `gemini:
  model: file-model
`)
		require.NoError(t, err)

		assert.Equal(t, "env-key", cfg.Gemini.APIKey)
		assert.Equal(t, "env-model", cfg.Gemini.Model)
		assert.Equal(t, 9, cfg.RAG.TopK)
		assert.Equal(t, "ck-123", cfg.Chroma.APIKey)
		assert.Equal(t, "tenant-1", cfg.Chroma.Tenant)
		assert.Equal(t, []string{"legal", "case-law"}, cfg.Chroma.Collections)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		_, err := load(t, `server:
  port: -1
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "port")
	})

	t.Run("invalid YAML format", func(t *testing.T) {
		_, err := load(t, `server: [
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file found but could not be read")
	})

	t.Run("non-map section fails decoding", func(t *testing.T) {
		_, err := load(t, `server: just a string
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration format")
	})
}
