package cmd

import (
	"arcrag/internal/tui"
)

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	assistant, err := openAssistant(cfg, newLogger())
	if err != nil {
		return err
	}
	defer assistant.Close()

	return tui.Run(assistant, cfg.Processing.TopK)
}
