package cmd

import (
	"fmt"
	"os"
	"strings"

	"arcrag/internal/diagram"

	"github.com/spf13/cobra"
)

var (
	flagCategory    string
	flagMaxElements int
	flagOutput      string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <description>",
	Short: "Generate a diagram element set from indexed content",
	Long: `Retrieves context matching the description, extracts model elements of
the category's type, and renders them as Graphviz DOT.

Categories: OAB, OCB, SAB, SFB, LAB, PAB.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := diagram.ParseCategory(flagCategory)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		assistant, err := openAssistant(cfg, newLogger())
		if err != nil {
			return err
		}
		defer assistant.Close()

		description := strings.Join(args, " ")
		elements, err := assistant.BuildDiagram(description, category, flagMaxElements)
		if err != nil {
			return err
		}

		dot := diagram.NewDOTWriter(nil).Write(category.Title(), elements)

		if flagOutput != "" {
			if err := os.WriteFile(flagOutput, []byte(dot), 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %d element(s) to %s\n", len(elements), flagOutput)
			return nil
		}
		fmt.Print(dot)
		return nil
	},
}

func init() {
	diagramCmd.Flags().StringVar(&flagCategory, "category", "SAB", "diagram category (OAB, OCB, SAB, SFB, LAB, PAB)")
	diagramCmd.Flags().IntVar(&flagMaxElements, "max-elements", 10, "maximum elements in the diagram")
	diagramCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write DOT to a file instead of stdout")
	rootCmd.AddCommand(diagramCmd)
}
