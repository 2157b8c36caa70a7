package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"arcrag/internal/arcadia"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop on stdin",
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

		var phase arcadia.Phase
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("arcrag chat (type /help for commands, /exit to quit)")
		fmt.Println()

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}

			switch {
			case question == "/exit" || question == "/quit":
				fmt.Println("Goodbye.")
				return nil
			case question == "/help":
				fmt.Println("Commands:")
				fmt.Println("  /phase <name>  - filter retrieval to an Arcadia phase")
				fmt.Println("  /phase         - clear the phase filter")
				fmt.Println("  /exit          - quit chat")
				fmt.Println("  /help          - show this help")
				continue
			case strings.HasPrefix(question, "/phase"):
				arg := strings.TrimSpace(strings.TrimPrefix(question, "/phase"))
				if arg == "" {
					phase = ""
					fmt.Println("Phase filter cleared.")
					continue
				}
				p := arcadia.Phase(arg)
				if !assistant.Taxonomy().Contains(p) {
					fmt.Fprintf(os.Stderr, "unknown phase %q\n", arg)
					continue
				}
				phase = p
				fmt.Printf("Phase filter: %s\n", phase)
				continue
			}

			fmt.Println("[Searching...]")

			answer, context, err := assistant.Answer(question, 0, phase)
			if err != nil {
				fmt.Fprintf(os.Stderr, "retrieval error: %v\n", err)
				continue
			}

			fmt.Println()
			fmt.Println(answer)
			if len(context) > 0 {
				var sources []string
				seen := make(map[string]bool)
				for _, rec := range context {
					if rec.Meta.Source != "" && !seen[rec.Meta.Source] {
						seen[rec.Meta.Source] = true
						sources = append(sources, rec.Meta.Source)
					}
				}
				fmt.Printf("\nSources: %s\n", strings.Join(sources, ", "))
			}
			fmt.Println()
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
