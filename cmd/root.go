package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"arcrag/internal/config"
	"arcrag/internal/embedder"
	"arcrag/internal/llm"
	"arcrag/internal/rag"
	"arcrag/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig    string
	flagDB        string
	flagOllama    string
	flagModel     string
	flagChatModel string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "arcrag",
	Short: "MBSE document assistant for Arcadia/Capella models",
	Long: `arcrag ingests systems-engineering documents and Capella model files,
indexes them by Arcadia phase, and answers questions about them using a
local Ollama instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ./arcrag.yaml, then ~/.config/arcrag/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default .arcrag/index.db)")
	rootCmd.PersistentFlags().StringVar(&flagOllama, "ollama", "", "ollama base URL")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "embedding model")
	rootCmd.PersistentFlags().StringVar(&flagChatModel, "chat-model", "", "generative model")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
}

// loadConfig merges the config file with any flag overrides.
func loadConfig() (*config.AppConfig, error) {
	var cfg *config.AppConfig
	var err error
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagOllama != "" {
		cfg.Ollama.URL = flagOllama
	}
	if flagModel != "" {
		cfg.Ollama.EmbedModel = flagModel
	}
	if flagChatModel != "" {
		cfg.Ollama.ChatModel = flagChatModel
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openAssistant wires the full pipeline from the merged config. The caller
// owns the returned assistant and must Close it.
func openAssistant(cfg *config.AppConfig, log *zap.Logger) (*rag.Assistant, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	st, err := store.Open(cfg.DBPath, store.DefaultDimension)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	emb := embedder.NewOllamaEmbedder(cfg.Ollama.URL, cfg.Ollama.EmbedModel)
	gen := llm.NewOllamaGenerator(cfg.Ollama.URL, cfg.Ollama.ChatModel)

	assistant := rag.NewAssistant(st, emb, gen, rag.Config{
		ChunkSize:    cfg.Processing.ChunkSize,
		ChunkOverlap: cfg.Processing.ChunkOverlap,
		TopK:         cfg.Processing.TopK,
		Generation: llm.Options{
			Temperature: cfg.Generation.Temperature,
			TopP:        cfg.Generation.TopP,
			NumPredict:  cfg.Generation.MaxTokens,
		},
	}, log)

	return assistant, nil
}
