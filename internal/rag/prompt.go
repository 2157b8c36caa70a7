package rag

import (
	"fmt"
	"strings"

	"arcrag/internal/arcadia"
	"arcrag/internal/store"
)

const promptPreamble = `You are an expert in Model-Based Systems Engineering (MBSE) using the Arcadia methodology in Capella.`

const promptInstructions = `Instructions for your response:
1. Base your answer primarily on the provided context
2. If context is insufficient, clearly state this and provide general MBSE/Arcadia guidance
3. Structure your response according to Arcadia methodology principles
4. Include relevant traceability and verification/validation considerations when applicable
5. Use systems engineering terminology appropriately
6. Consider interfaces and interactions between system elements
7. Reference specific Arcadia phases and viewpoints when relevant

Provide a detailed, technical response that demonstrates deep understanding of both the specific content and MBSE best practices:`

// PromptAssembler builds the single generation prompt from retrieved
// context, phase guidance and the user question. Assembly is deterministic:
// identical inputs produce identical prompts.
type PromptAssembler struct {
	taxonomy   *arcadia.Taxonomy
	classifier *arcadia.Classifier
}

// NewPromptAssembler creates an assembler over the given taxonomy.
func NewPromptAssembler(t *arcadia.Taxonomy, c *arcadia.Classifier) *PromptAssembler {
	return &PromptAssembler{taxonomy: t, classifier: c}
}

// Assemble renders the prompt. With an explicit phase its guidance is always
// included; otherwise keyword detection runs against the query alone and
// guidance is included only on a match.
func (p *PromptAssembler) Assemble(query string, context []store.RetrievedRecord, explicitPhase arcadia.Phase) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n")

	if guidance := p.guidance(query, explicitPhase); guidance != "" {
		b.WriteString(guidance)
		b.WriteString("\n\n")
	}

	b.WriteString("Available Context:\n")
	b.WriteString(renderContext(context))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "User Question: %s\n\n", query)
	b.WriteString(promptInstructions)
	return b.String()
}

func (p *PromptAssembler) guidance(query string, explicit arcadia.Phase) string {
	if info, ok := p.taxonomy.Lookup(explicit); ok {
		return fmt.Sprintf("Focus on %s (%s).\nPay special attention to: %s",
			info.Name, info.Description, strings.Join(info.Keywords, ", "))
	}
	if detected, ok := p.classifier.Detect(query); ok {
		info, _ := p.taxonomy.Lookup(detected)
		return fmt.Sprintf("This appears to be a %s question.\nConsider: %s",
			info.Name, strings.Join(info.Keywords, ", "))
	}
	return ""
}

// renderContext concatenates the records in retrieval order, one
// source/type/content block per record separated by blank lines.
func renderContext(context []store.RetrievedRecord) string {
	blocks := make([]string, 0, len(context))
	for _, rec := range context {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nType: %s\nContent: %s",
			orUnknown(rec.Meta.Source), orUnknown(rec.Meta.Type), rec.Content))
	}
	return strings.Join(blocks, "\n\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
