package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_TruncatesToMax(t *testing.T) {
	elements := []Element{
		{ID: "a", Importance: 1.0},
		{ID: "b", Importance: 2.0},
		{ID: "c", Importance: 1.5},
		{ID: "d", Importance: 0.5},
	}

	selected := Select(elements, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, "b", selected[0].ID)
	assert.Equal(t, "c", selected[1].ID)
}

func TestSelect_SortedDescending(t *testing.T) {
	elements := []Element{
		{ID: "low", Importance: 1.0},
		{ID: "high", Importance: 3.0},
		{ID: "mid", Importance: 2.0},
	}

	selected := Select(elements, 10)
	require.Len(t, selected, 3)
	assert.Equal(t, []string{"high", "mid", "low"},
		[]string{selected[0].ID, selected[1].ID, selected[2].ID})
}

func TestSelect_StableOnTies(t *testing.T) {
	elements := []Element{
		{ID: "first", Importance: 1.0},
		{ID: "second", Importance: 1.0},
		{ID: "third", Importance: 1.0},
	}

	selected := Select(elements, 3)
	assert.Equal(t, "first", selected[0].ID)
	assert.Equal(t, "second", selected[1].ID)
	assert.Equal(t, "third", selected[2].ID)
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	elements := []Element{
		{ID: "a", Importance: 1.0},
		{ID: "b", Importance: 2.0},
	}

	_ = Select(elements, 1)
	assert.Equal(t, "a", elements[0].ID)
	assert.Equal(t, "b", elements[1].ID)
}

func TestSelect_ZeroMax(t *testing.T) {
	elements := []Element{{ID: "a", Importance: 1.0}}
	assert.Empty(t, Select(elements, 0))
	assert.Empty(t, Select(elements, -1))
}

func TestCluster_GroupsByCapitalizedType(t *testing.T) {
	elements := []Element{
		{ID: "a1", Type: "actor"},
		{ID: "a2", Type: "actor"},
		{ID: "c1", Type: "component"},
	}

	clusters := Cluster(elements)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters["Actor"], 2)
	assert.Len(t, clusters["Component"], 1)
}

func TestCluster_DropsDanglingConnections(t *testing.T) {
	elements := []Element{
		{ID: "a", Type: "component", Connections: []string{"b", "gone"}},
		{ID: "b", Type: "component", Connections: []string{"missing"}},
	}

	clusters := Cluster(elements)
	comps := clusters["Component"]
	require.Len(t, comps, 2)

	assert.Equal(t, []string{"b"}, comps[0].Connections)
	assert.Empty(t, comps[1].Connections)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("XYZ")
	assert.Error(t, err)
}

func TestCategory_Fallbacks(t *testing.T) {
	tests := []struct {
		category Category
		typ      string
		name     string
	}{
		{CategoryOAB, "activity", "Root Activity"},
		{CategoryOCB, "actor", "System"},
		{CategorySAB, "activity", "System Activity"},
		{CategorySFB, "function", "System Function"},
		{CategoryLAB, "component", "Logical Component"},
		{CategoryPAB, "component", "Physical Component"},
	}

	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			assert.Equal(t, tc.typ, tc.category.ElementType())
			fb := tc.category.Fallback()
			assert.Equal(t, tc.name, fb.Name)
			assert.Equal(t, tc.typ, fb.Type)
			assert.Equal(t, 1.0, fb.Importance)
		})
	}
}

func TestDOTWriter_Write(t *testing.T) {
	w := NewDOTWriter(nil)

	elements := []Element{
		{ID: "c_0", Name: "Core", Type: "component", Connections: []string{"c_1", "dangling"}},
		{ID: "c_1", Name: "Shell", Type: "component"},
		{ID: "a_0", Name: "User", Type: "actor"},
	}

	dot := w.Write("Logical Architecture Breakdown", elements)

	assert.Contains(t, dot, "// Logical Architecture Breakdown")
	assert.Contains(t, dot, "digraph {")
	assert.Contains(t, dot, `"c_0" [label="Core\ncomponent" shape=box3d]`)
	assert.Contains(t, dot, `"a_0" [label="User\nactor" shape=ellipse]`)
	assert.Contains(t, dot, `"c_0" -> "c_1"`)
	assert.NotContains(t, dot, "dangling")
}

func TestDOTWriter_UnknownTypeUsesDefaultShape(t *testing.T) {
	w := NewDOTWriter(nil)
	dot := w.Write("Test", []Element{{ID: "x", Name: "X Y", Type: "mystery"}})
	assert.Contains(t, dot, "shape=rectangle")
}
