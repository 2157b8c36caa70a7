package diagram

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Element is a heuristically extracted named entity. Ids are only unique
// within one extraction call; nothing here persists them.
type Element struct {
	ID          string
	Name        string
	Type        string
	Description string
	Connections []string
	Importance  float64
}

// namePattern matches a capitalized word-run at a line start, optionally
// followed by a colon-delimited description running to the next period or
// line end.
var namePattern = regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9-]*(?: [A-Z][A-Za-z0-9-]*)*)(?:\s*:\s*([^.\n]+))?`)

// Extractor pulls candidate diagram elements out of retrieved text.
// Extraction is best-effort: precision against arbitrary prose is not
// guaranteed.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract finds named elements in the given texts and scores their
// importance against the full text set. All elements share the supplied
// type. Zero matches yields an empty result, never an error.
func (e *Extractor) Extract(texts []string, elementType string) []Element {
	type candidate struct {
		el     Element
		srcDoc int
	}
	var cands []candidate
	seen := make(map[string]bool)

	for docIdx, text := range texts {
		for _, m := range namePattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len([]rune(name)) < 3 {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			cands = append(cands, candidate{
				el: Element{
					ID:          fmt.Sprintf("%s_%d", elementType, len(cands)),
					Name:        name,
					Type:        elementType,
					Description: strings.TrimSpace(m[2]),
				},
				srcDoc: docIdx,
			})
		}
	}

	// Infer connections: a -> b when b's name occurs in a's description.
	for i := range cands {
		desc := strings.ToLower(cands[i].el.Description)
		if desc == "" {
			continue
		}
		for j := range cands {
			if i == j {
				continue
			}
			if strings.Contains(desc, strings.ToLower(cands[j].el.Name)) {
				cands[i].el.Connections = append(cands[i].el.Connections, cands[j].el.ID)
			}
		}
		sort.Strings(cands[i].el.Connections)
	}

	elements := make([]Element, 0, len(cands))
	for _, c := range cands {
		c.el.Importance = importance(c.el, texts, c.srcDoc)
		elements = append(elements, c.el)
	}
	return elements
}

// importance scores an element against the retrieval context: mentions in
// documents other than the one it was extracted from, connection count, and
// whether it carries a description.
func importance(el Element, docs []string, srcDoc int) float64 {
	score := 1.0
	name := strings.ToLower(el.Name)
	for i, d := range docs {
		if i == srcDoc {
			continue
		}
		if strings.Contains(strings.ToLower(d), name) {
			score += 0.2
		}
	}
	score += 0.1 * float64(len(el.Connections))
	if el.Description != "" {
		score += 0.3
	}
	return score
}
