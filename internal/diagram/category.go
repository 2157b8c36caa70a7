// Package diagram extracts named elements from retrieved text and selects
// an overview set for lightweight diagram generation.
package diagram

import "fmt"

// Category identifies one supported diagram kind.
type Category string

const (
	CategoryOAB Category = "OAB" // Operational Activity Breakdown
	CategoryOCB Category = "OCB" // Operational Context Breakdown
	CategorySAB Category = "SAB" // System Activity Breakdown
	CategorySFB Category = "SFB" // System Function Breakdown
	CategoryLAB Category = "LAB" // Logical Architecture Breakdown
	CategoryPAB Category = "PAB" // Physical Architecture Breakdown
)

// categorySpec drives per-category behavior: the element type extraction
// looks for, and the single fallback element used when extraction finds
// nothing. Adding a category is a table entry.
type categorySpec struct {
	title       string
	elementType string
	fallback    Element
}

var categories = map[Category]categorySpec{
	CategoryOAB: {
		title:       "Operational Activity Breakdown",
		elementType: "activity",
		fallback:    Element{ID: "root", Name: "Root Activity", Type: "activity", Importance: 1.0},
	},
	CategoryOCB: {
		title:       "Operational Context Breakdown",
		elementType: "actor",
		fallback:    Element{ID: "system", Name: "System", Type: "actor", Importance: 1.0},
	},
	CategorySAB: {
		title:       "System Activity Breakdown",
		elementType: "activity",
		fallback:    Element{ID: "root", Name: "System Activity", Type: "activity", Importance: 1.0},
	},
	CategorySFB: {
		title:       "System Function Breakdown",
		elementType: "function",
		fallback:    Element{ID: "root", Name: "System Function", Type: "function", Importance: 1.0},
	},
	CategoryLAB: {
		title:       "Logical Architecture Breakdown",
		elementType: "component",
		fallback:    Element{ID: "root", Name: "Logical Component", Type: "component", Importance: 1.0},
	},
	CategoryPAB: {
		title:       "Physical Architecture Breakdown",
		elementType: "component",
		fallback:    Element{ID: "root", Name: "Physical Component", Type: "component", Importance: 1.0},
	},
}

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categories[c]; !ok {
		return "", fmt.Errorf("unknown diagram category %q", s)
	}
	return c, nil
}

// Title returns the category's display title.
func (c Category) Title() string { return categories[c].title }

// ElementType returns the element type extracted for this category.
func (c Category) ElementType() string { return categories[c].elementType }

// Fallback returns the category's static single-element template, used when
// extraction yields nothing.
func (c Category) Fallback() Element { return categories[c].fallback }

// Categories lists all supported categories in breakdown order.
func Categories() []Category {
	return []Category{CategoryOAB, CategoryOCB, CategorySAB, CategorySFB, CategoryLAB, CategoryPAB}
}
