// Package config loads the application configuration from YAML with
// sensible defaults for a local Ollama setup.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OllamaConfig holds connection details for the local Ollama server.
type OllamaConfig struct {
	URL        string `yaml:"url"`
	EmbedModel string `yaml:"embed_model"`
	ChatModel  string `yaml:"chat_model"`
}

// ProcessingConfig configures document splitting and retrieval.
type ProcessingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

// GenerationConfig tunes response generation.
type GenerationConfig struct {
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DBPath     string           `yaml:"db_path"`
	Ollama     OllamaConfig     `yaml:"ollama"`
	Processing ProcessingConfig `yaml:"processing"`
	Generation GenerationConfig `yaml:"generation"`
}

// Load reads a config from the given path. A missing file returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./arcrag.yaml first, then ~/.config/arcrag/config.yaml.
// If neither exists it returns defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "arcrag.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err == nil {
		if _, statErr := os.Stat(userPath); statErr == nil {
			cfg, err := Load(userPath)
			return cfg, userPath, err
		}
	}
	return defaultConfig(), "", nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "arcrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		DBPath: filepath.Join(".arcrag", "index.db"),
		Ollama: OllamaConfig{
			URL:        "http://localhost:11434",
			EmbedModel: "nomic-embed-text",
			ChatModel:  "llama3.1",
		},
		Processing: ProcessingConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         5,
		},
		Generation: GenerationConfig{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   1000,
		},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(".arcrag", "index.db")
	}
	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = "http://localhost:11434"
	}
	if cfg.Ollama.EmbedModel == "" {
		cfg.Ollama.EmbedModel = "nomic-embed-text"
	}
	if cfg.Ollama.ChatModel == "" {
		cfg.Ollama.ChatModel = "llama3.1"
	}
	if cfg.Processing.ChunkSize <= 0 {
		cfg.Processing.ChunkSize = 1000
	}
	if cfg.Processing.ChunkOverlap < 0 {
		cfg.Processing.ChunkOverlap = 200
	}
	if cfg.Processing.TopK <= 0 {
		cfg.Processing.TopK = 5
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.7
	}
	if cfg.Generation.TopP == 0 {
		cfg.Generation.TopP = 0.9
	}
	if cfg.Generation.MaxTokens <= 0 {
		cfg.Generation.MaxTokens = 1000
	}
}
