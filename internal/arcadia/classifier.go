package arcadia

import "strings"

// typeMapping maps an element-type substring to a phase. Order is significant:
// the first substring found in the element type wins.
type typeMapping struct {
	substr string
	phase  Phase
}

// Classifier maps text fragments to methodology phases by keyword matching.
// It is deterministic and total: every input maps to exactly one phase.
type Classifier struct {
	taxonomy   *Taxonomy
	byType     []typeMapping
	defaultsTo Phase
}

// NewClassifier builds a classifier over the given taxonomy with the standard
// element-type fallback mapping.
func NewClassifier(t *Taxonomy) *Classifier {
	return &Classifier{
		taxonomy: t,
		byType: []typeMapping{
			{"requirement", PhaseSystem},
			{"function", PhaseLogical},
			{"component", PhasePhysical},
			{"actor", PhaseOperational},
		},
		defaultsTo: DefaultPhase,
	}
}

// Classify returns the phase for a text fragment. Keywords are matched
// case-insensitively as substrings, phase by phase in taxonomy order; the
// first phase with a matching keyword wins. If no keyword matches and an
// element type is supplied, the type mapping applies. Otherwise the default
// phase is returned.
func (c *Classifier) Classify(text, elementType string) Phase {
	lower := strings.ToLower(text)
	for _, info := range c.taxonomy.phases {
		for _, kw := range info.Keywords {
			if strings.Contains(lower, kw) {
				return info.Phase
			}
		}
	}

	if elementType != "" {
		et := strings.ToLower(elementType)
		for _, m := range c.byType {
			if strings.Contains(et, m.substr) {
				return m.phase
			}
		}
	}

	return c.defaultsTo
}

// Detect runs keyword matching only, without the element-type fallback.
// It reports false when no phase keyword occurs in the text. Used for phase
// auto-detection on user queries.
func (c *Classifier) Detect(text string) (Phase, bool) {
	lower := strings.ToLower(text)
	for _, info := range c.taxonomy.phases {
		for _, kw := range info.Keywords {
			if strings.Contains(lower, kw) {
				return info.Phase, true
			}
		}
	}
	return "", false
}
