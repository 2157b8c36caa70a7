package diagram

import (
	"fmt"
	"strings"
)

// DefaultShapes is the element-type to Graphviz shape table.
func DefaultShapes() map[string]string {
	return map[string]string{
		"actor":       "ellipse",
		"activity":    "rectangle",
		"function":    "rectangle",
		"component":   "box3d",
		"interface":   "diamond",
		"requirement": "note",
	}
}

// DOTWriter renders selected elements as Graphviz DOT text. The shape table
// is explicit configuration so alternate notations can be injected.
type DOTWriter struct {
	shapes       map[string]string
	defaultShape string
}

// NewDOTWriter creates a writer with the given shape table; a nil table uses
// DefaultShapes.
func NewDOTWriter(shapes map[string]string) *DOTWriter {
	if shapes == nil {
		shapes = DefaultShapes()
	}
	return &DOTWriter{shapes: shapes, defaultShape: "rectangle"}
}

// Write renders the elements as a top-to-bottom digraph. Edges are only
// emitted between elements that are both present.
func (w *DOTWriter) Write(title string, elements []Element) string {
	present := make(map[string]bool, len(elements))
	for _, el := range elements {
		present[el.ID] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", title)
	b.WriteString("digraph {\n")
	b.WriteString("\trankdir=TB\n")
	for _, el := range elements {
		shape, ok := w.shapes[el.Type]
		if !ok {
			shape = w.defaultShape
		}
		fmt.Fprintf(&b, "\t%q [label=%q shape=%s]\n", el.ID, el.Name+"\n"+el.Type, shape)
	}
	for _, el := range elements {
		for _, c := range el.Connections {
			if present[c] {
				fmt.Fprintf(&b, "\t%q -> %q\n", el.ID, c)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}
