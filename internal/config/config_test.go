package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, "nomic-embed-text", cfg.Ollama.EmbedModel)
	assert.Equal(t, 1000, cfg.Processing.ChunkSize)
	assert.Equal(t, 200, cfg.Processing.ChunkOverlap)
	assert.Equal(t, 5, cfg.Processing.TopK)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
	assert.Equal(t, 0.9, cfg.Generation.TopP)
	assert.Equal(t, 1000, cfg.Generation.MaxTokens)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ollama:
  chat_model: mistral
processing:
  chunk_size: 500
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mistral", cfg.Ollama.ChatModel)
	assert.Equal(t, 500, cfg.Processing.ChunkSize)
	// Unset fields keep their defaults.
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, 200, cfg.Processing.ChunkOverlap)
	assert.Equal(t, 5, cfg.Processing.TopK)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ollama: [not: valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_FullOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/custom.db
ollama:
  url: http://remote:11434
  embed_model: custom-embed
  chat_model: custom-chat
processing:
  chunk_size: 2000
  chunk_overlap: 400
  top_k: 8
generation:
  temperature: 0.2
  top_p: 0.5
  max_tokens: 512
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "http://remote:11434", cfg.Ollama.URL)
	assert.Equal(t, "custom-embed", cfg.Ollama.EmbedModel)
	assert.Equal(t, "custom-chat", cfg.Ollama.ChatModel)
	assert.Equal(t, 2000, cfg.Processing.ChunkSize)
	assert.Equal(t, 400, cfg.Processing.ChunkOverlap)
	assert.Equal(t, 8, cfg.Processing.TopK)
	assert.Equal(t, 0.2, cfg.Generation.Temperature)
	assert.Equal(t, 0.5, cfg.Generation.TopP)
	assert.Equal(t, 512, cfg.Generation.MaxTokens)
}
