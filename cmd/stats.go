package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
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

		stats := assistant.Stats()

		fmt.Printf("Indexed chunks: %d\n", stats.Total)

		if len(stats.ByType) > 0 {
			fmt.Println("\nBy type:")
			types := make([]string, 0, len(stats.ByType))
			for t := range stats.ByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Printf("  %-20s %d\n", t, stats.ByType[t])
			}
		}

		fmt.Println("\nSupported phases:")
		for _, p := range stats.SupportedPhases {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
