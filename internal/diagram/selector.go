package diagram

import (
	"sort"
	"strings"
)

// Select returns the maxElements most important elements. The sort is
// stable: ties keep extraction order.
func Select(elements []Element, maxElements int) []Element {
	if maxElements < 0 {
		maxElements = 0
	}
	selected := make([]Element, len(elements))
	copy(selected, elements)
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Importance > selected[j].Importance
	})
	if len(selected) > maxElements {
		selected = selected[:maxElements]
	}
	return selected
}

// Cluster groups the already-selected elements by their type with a
// capitalized label. Connections referencing elements outside the batch are
// dropped silently, never an error.
func Cluster(elements []Element) map[string][]Element {
	present := make(map[string]bool, len(elements))
	for _, el := range elements {
		present[el.ID] = true
	}

	clusters := make(map[string][]Element)
	for _, el := range elements {
		var conns []string
		for _, c := range el.Connections {
			if present[c] {
				conns = append(conns, c)
			}
		}
		el.Connections = conns
		label := capitalize(el.Type)
		clusters[label] = append(clusters[label], el)
	}
	return clusters
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
