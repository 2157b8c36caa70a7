package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest documents and model files into the index",
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

		fmt.Printf("Ingesting %d file(s)...\n", len(args))
		start := time.Now()

		res := assistant.Ingest(args)
		elapsed := time.Since(start)

		fmt.Printf("\nDone in %s\n", elapsed.Round(time.Millisecond))
		fmt.Printf("  Files:  %d processed\n", res.Processed)
		fmt.Printf("  Chunks: %d added\n", res.ChunksAdded)
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
