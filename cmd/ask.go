package cmd

import (
	"fmt"
	"strings"

	"arcrag/internal/arcadia"

	"github.com/spf13/cobra"
)

var (
	flagK     int
	flagPhase string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question about the indexed models",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		assistant, err := openAssistant(cfg, newLogger())
		if err != nil {
			return err
		}
		defer assistant.Close()

		question := strings.Join(args, " ")
		answer, context, err := assistant.Answer(question, flagK, arcadia.Phase(flagPhase))
		if err != nil {
			return err
		}

		fmt.Println(answer)

		if len(context) > 0 {
			fmt.Println()
			fmt.Println("Sources:")
			seen := make(map[string]bool)
			for _, rec := range context {
				if rec.Meta.Source != "" && !seen[rec.Meta.Source] {
					seen[rec.Meta.Source] = true
					fmt.Printf("  - %s\n", rec.Meta.Source)
				}
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().IntVar(&flagK, "k", 0, "number of context chunks to retrieve (default from config)")
	askCmd.Flags().StringVar(&flagPhase, "phase", "", "Arcadia phase filter (operational, system, logical, physical, verification, traceability)")
	rootCmd.AddCommand(askCmd)
}
