package segment

import (
	"strings"
	"testing"

	"arcrag/internal/arcadia"
	"arcrag/internal/reader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSegmenter(chunkSize, overlap int) *Segmenter {
	return NewSegmenter(chunkSize, overlap, arcadia.NewClassifier(arcadia.DefaultTaxonomy()))
}

func TestSegment_TextDocument(t *testing.T) {
	s := newTestSegmenter(50, 10)

	text := strings.Repeat("The stakeholder defines the mission scope. ", 5)
	doc := reader.Document{Source: "needs.txt", TypeTag: "text", Text: text}

	chunks := s.Segment(doc)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, "needs.txt", c.Meta.Source)
		assert.Equal(t, "text", c.Meta.Type)
		assert.Equal(t, i, c.Meta.ChunkID)
		assert.Equal(t, len(chunks), c.Meta.TotalChunks)
		// Every chunk contains "stakeholder", an operational keyword.
		assert.Equal(t, arcadia.PhaseOperational, c.Meta.Phase)
	}
}

func TestSegment_EmptyTextNoChunks(t *testing.T) {
	s := newTestSegmenter(100, 20)

	assert.Empty(t, s.Segment(reader.Document{Source: "a.txt", Text: ""}))
	assert.Empty(t, s.Segment(reader.Document{Source: "b.txt", Text: "   \n  "}))
}

func TestSegment_ElementDocument(t *testing.T) {
	s := newTestSegmenter(1000, 200)

	doc := reader.Document{
		Source: "model.xml",
		Elements: []reader.Element{
			{
				MetaType:    "xml_requirement",
				Label:       "Requirement",
				Type:        "requirement",
				ID:          "REQ-001",
				Name:        "Response Time",
				Description: "lorem ipsum dolor",
			},
			{
				MetaType: "xml_actor",
				Label:    "Actor",
				Type:     "actor",
				ID:       "ACT-001",
				Name:     "Operator",
			},
		},
	}

	chunks := s.Segment(doc)
	require.Len(t, chunks, 2)

	req := chunks[0]
	assert.Equal(t, "Requirement: Response Time\nDescription: lorem ipsum dolor", req.Content)
	assert.Equal(t, "model.xml", req.Meta.Source)
	assert.Equal(t, "xml_requirement", req.Meta.Type)
	assert.Equal(t, "REQ-001", req.Meta.ElementID)
	assert.Equal(t, "requirement", req.Meta.ElementType)
	assert.Equal(t, "Response Time", req.Meta.ElementName)
	// "Requirement" is a system keyword.
	assert.Equal(t, arcadia.PhaseSystem, req.Meta.Phase)

	act := chunks[1]
	assert.Equal(t, "Actor: Operator", act.Content)
	// "Actor" is an operational keyword.
	assert.Equal(t, arcadia.PhaseOperational, act.Meta.Phase)
	assert.Zero(t, act.Meta.ChunkID)
	assert.Zero(t, act.Meta.TotalChunks)
}

func TestSegment_ElementTypeDecidesPhaseWithoutKeywords(t *testing.T) {
	s := newTestSegmenter(1000, 200)

	doc := reader.Document{
		Source: "model.xml",
		Elements: []reader.Element{
			{MetaType: "xml_generic", Label: "Item", Type: "component", Name: "Widget"},
		},
	}

	chunks := s.Segment(doc)
	require.Len(t, chunks, 1)
	// Content has no phase keyword; the element type "component" maps to
	// physical through the fallback table.
	assert.Equal(t, arcadia.PhasePhysical, chunks[0].Meta.Phase)
}

func TestSegment_ElementsTakePrecedenceOverText(t *testing.T) {
	s := newTestSegmenter(1000, 200)

	doc := reader.Document{
		Source:   "model.xml",
		Text:     "raw fallback text",
		Elements: []reader.Element{{MetaType: "xml_actor", Label: "Actor", Type: "actor", Name: "Pilot"}},
	}

	chunks := s.Segment(doc)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Actor: Pilot", chunks[0].Content)
}
