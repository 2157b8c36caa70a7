// Package segment splits parsed documents into retrievable chunks with
// phase and provenance metadata.
package segment

import (
	"strings"

	"arcrag/internal/arcadia"
	"arcrag/internal/reader"
	"arcrag/internal/store"
)

// Chunk is one retrievable unit of processed document content, before
// embedding.
type Chunk struct {
	Content string
	Meta    store.Metadata
}

// Segmenter turns reader documents into chunks: free text is character-split
// with overlap, structured model exports emit one chunk per element record.
type Segmenter struct {
	splitter   *Splitter
	classifier *arcadia.Classifier
}

// NewSegmenter creates a segmenter with the given chunk geometry.
func NewSegmenter(chunkSize, chunkOverlap int, c *arcadia.Classifier) *Segmenter {
	return &Segmenter{
		splitter:   NewSplitter(chunkSize, chunkOverlap),
		classifier: c,
	}
}

// Segment produces the chunks for one document. Documents with element
// records yield one chunk per record; otherwise the raw text is split.
func (s *Segmenter) Segment(doc reader.Document) []Chunk {
	if len(doc.Elements) > 0 {
		return s.segmentElements(doc.Elements, doc.Source)
	}
	return s.segmentText(doc.Text, doc.Source, doc.TypeTag)
}

func (s *Segmenter) segmentText(text, source, typeTag string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pieces := s.splitter.Split(text)
	chunks := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, Chunk{
			Content: piece,
			Meta: store.Metadata{
				Source:      source,
				Type:        typeTag,
				ChunkID:     i,
				TotalChunks: len(pieces),
				Phase:       s.classifier.Classify(piece, ""),
			},
		})
	}
	return chunks
}

func (s *Segmenter) segmentElements(elems []reader.Element, source string) []Chunk {
	chunks := make([]Chunk, 0, len(elems))
	for _, el := range elems {
		content := synthesize(el)
		chunks = append(chunks, Chunk{
			Content: content,
			Meta: store.Metadata{
				Source:      source,
				Type:        el.MetaType,
				Phase:       s.classifier.Classify(content, el.Type),
				ElementID:   el.ID,
				ElementType: el.Type,
				ElementName: el.Name,
			},
		})
	}
	return chunks
}

// synthesize renders an element record as searchable text, one labelled
// field per line.
func synthesize(el reader.Element) string {
	lines := []string{el.Label + ": " + el.Name}
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Description", el.Description)
	add("Type", el.TypeAttr)
	add("Summary", el.Summary)
	add("Nature", el.Nature)
	add("Kind", el.Kind)
	add("Details", el.Details)
	return strings.Join(lines, "\n")
}
