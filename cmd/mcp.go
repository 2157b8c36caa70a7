package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"arcrag/internal/arcadia"
	"arcrag/internal/diagram"
	"arcrag/internal/rag"
	"arcrag/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing document search and diagram tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	assistant, err := openAssistant(cfg, newLogger())
	if err != nil {
		return err
	}
	defer assistant.Close()

	s := mcpserver.NewMCPServer("arcrag", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(searchDocumentsTool(), makeSearchHandler(assistant))
	s.AddTool(collectionStatsTool(), makeStatsHandler(assistant))
	s.AddTool(generateDiagramTool(), makeDiagramHandler(assistant))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchDocumentsTool() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Semantically search the indexed MBSE documents and Capella models. Returns relevant chunks with source, type and Arcadia phase."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language query against the indexed documents"),
		),
		mcp.WithString("phase",
			mcp.Description("Optional Arcadia phase filter: operational, system, logical, physical, verification, traceability"),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of chunks to return (default 5)"),
		),
	)
}

func collectionStatsTool() mcp.Tool {
	return mcp.NewTool("collection_stats",
		mcp.WithDescription("Get index statistics: total chunks, per-type counts and supported Arcadia phases."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func generateDiagramTool() mcp.Tool {
	return mcp.NewTool("generate_diagram",
		mcp.WithDescription("Extract a diagram element set from indexed content and render it as Graphviz DOT. Categories: OAB, OCB, SAB, SFB, LAB, PAB."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the diagram should cover"),
		),
		mcp.WithString("category",
			mcp.Description("Diagram category code (default SAB)"),
		),
		mcp.WithNumber("max_elements",
			mcp.Description("Maximum elements in the diagram (default 10)"),
		),
	)
}

// --- Handler factories ---

func makeSearchHandler(assistant *rag.Assistant) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		phase := arcadia.Phase(req.GetString("phase", ""))
		if phase != "" && !assistant.Taxonomy().Contains(phase) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown phase %q", phase)), nil
		}
		k := req.GetInt("k", 5)
		if k <= 0 {
			k = 5
		}

		records, err := assistant.Search(query, k, phase)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		return mcp.NewToolResultText(formatSearchResults(query, records)), nil
	}
}

func makeStatsHandler(assistant *rag.Assistant) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := assistant.Stats()

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Index statistics\n\n**Total chunks:** %d\n\n", stats.Total)

		if len(stats.ByType) > 0 {
			sb.WriteString("**By type:**\n")
			types := make([]string, 0, len(stats.ByType))
			for t := range stats.ByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Fprintf(&sb, "- %s: %d\n", t, stats.ByType[t])
			}
			sb.WriteString("\n")
		}

		sb.WriteString("**Supported phases:** ")
		phases := make([]string, 0, len(stats.SupportedPhases))
		for _, p := range stats.SupportedPhases {
			phases = append(phases, string(p))
		}
		sb.WriteString(strings.Join(phases, ", "))

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeDiagramHandler(assistant *rag.Assistant) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description := req.GetString("description", "")
		if description == "" {
			return mcp.NewToolResultError("description is required"), nil
		}
		category, err := diagram.ParseCategory(req.GetString("category", "SAB"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		maxElements := req.GetInt("max_elements", 10)
		if maxElements <= 0 {
			maxElements = 10
		}

		elements, err := assistant.BuildDiagram(description, category, maxElements)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("diagram generation failed: %v", err)), nil
		}

		dot := diagram.NewDOTWriter(nil).Write(category.Title(), elements)
		return mcp.NewToolResultText(fmt.Sprintf("```dot\n%s```", dot)), nil
	}
}

// --- Formatting helpers ---

func formatSearchResults(query string, records []store.RetrievedRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search results for %q (%d chunks)\n\n", query, len(records))

	for i, r := range records {
		fmt.Fprintf(&sb, "### Result %d: `%s`\n\n", i+1, r.Meta.Source)
		fmt.Fprintf(&sb, "**Type:** %s  \n**Phase:** %s\n\n", r.Meta.Type, r.Meta.Phase)
		fmt.Fprintf(&sb, "%s\n\n", r.Content)
	}

	return sb.String()
}
