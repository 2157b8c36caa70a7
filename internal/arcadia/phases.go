// Package arcadia defines the Arcadia methodology phase taxonomy and the
// keyword classifier that tags document fragments with a phase.
package arcadia

// Phase is one label from the fixed methodology taxonomy.
type Phase string

const (
	PhaseOperational  Phase = "operational"
	PhaseSystem       Phase = "system"
	PhaseLogical      Phase = "logical"
	PhasePhysical     Phase = "physical"
	PhaseVerification Phase = "verification"
	PhaseTraceability Phase = "traceability"
)

// DefaultPhase is returned when neither keywords nor the element type match.
const DefaultPhase = PhaseSystem

// PhaseInfo carries the display metadata and match keywords for one phase.
type PhaseInfo struct {
	Phase       Phase
	Name        string
	Description string
	Keywords    []string
}

// Taxonomy is an ordered, immutable set of phases. Declaration order is
// significant: classification returns the first phase whose keywords match.
type Taxonomy struct {
	phases []PhaseInfo
	byID   map[Phase]int
}

// NewTaxonomy builds a taxonomy from an ordered phase list.
func NewTaxonomy(phases []PhaseInfo) *Taxonomy {
	t := &Taxonomy{
		phases: phases,
		byID:   make(map[Phase]int, len(phases)),
	}
	for i, p := range phases {
		t.byID[p.Phase] = i
	}
	return t
}

// DefaultTaxonomy returns the standard Arcadia phase table.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy([]PhaseInfo{
		{
			Phase:       PhaseOperational,
			Name:        "Operational Analysis",
			Description: "Understanding stakeholder needs and operational context",
			Keywords:    []string{"stakeholder", "actor", "operational", "capability", "mission", "goal"},
		},
		{
			Phase:       PhaseSystem,
			Name:        "System Analysis",
			Description: "Defining system requirements and functions",
			Keywords:    []string{"function", "requirement", "interface", "system", "constraint", "mode"},
		},
		{
			Phase:       PhaseLogical,
			Name:        "Logical Architecture",
			Description: "Designing solution components and interfaces",
			Keywords:    []string{"component", "logical", "behavior", "interaction", "scenario", "exchange"},
		},
		{
			Phase:       PhasePhysical,
			Name:        "Physical Architecture",
			Description: "Implementing and deploying the solution",
			Keywords:    []string{"physical", "implementation", "deployment", "node", "configuration", "hardware"},
		},
		{
			Phase:       PhaseVerification,
			Name:        "Verification & Validation",
			Description: "Approaches for system verification and validation",
			Keywords:    []string{"verification", "validation", "test", "compliance", "trace", "coverage"},
		},
		{
			Phase:       PhaseTraceability,
			Name:        "Traceability Analysis",
			Description: "Links between different architectural levels",
			Keywords:    []string{"trace", "link", "derive", "satisfy", "allocate", "refinement"},
		},
	})
}

// Phases returns the phases in declaration order.
func (t *Taxonomy) Phases() []PhaseInfo {
	return t.phases
}

// Lookup returns the info for a phase, if it is part of the taxonomy.
func (t *Taxonomy) Lookup(p Phase) (PhaseInfo, bool) {
	i, ok := t.byID[p]
	if !ok {
		return PhaseInfo{}, false
	}
	return t.phases[i], true
}

// Contains reports whether p is a known phase.
func (t *Taxonomy) Contains(p Phase) bool {
	_, ok := t.byID[p]
	return ok
}
