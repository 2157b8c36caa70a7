package rag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"arcrag/internal/arcadia"
	"arcrag/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T, emb Embedder, gen Generator) (*Assistant, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	a := NewAssistant(st, emb, gen, DefaultConfig(), nil)
	return a, st
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngest_TextFile(t *testing.T) {
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})
	dir := t.TempDir()

	path := writeFile(t, dir, "notes.txt", "The stakeholder expects the mission to succeed.")

	res := a.Ingest([]string{path})
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.ChunksAdded)
	assert.Empty(t, res.Errors)

	n, err := st.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIngest_RecordIDs(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1, 0}}
	a, st := newTestAssistant(t, emb, &fakeGenerator{})
	dir := t.TempDir()

	path := writeFile(t, dir, "doc.txt", "some plain content here")

	res := a.Ingest([]string{path})
	require.Equal(t, 1, res.ChunksAdded)

	// Re-ingesting the same file produces the same ids and is rejected by
	// the duplicate guard.
	res = a.Ingest([]string{path})
	assert.Zero(t, res.Processed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], fmt.Sprintf("Error processing %s", path))
	assert.Contains(t, res.Errors[0], "duplicate record id")

	n, _ := st.Count()
	assert.Equal(t, 1, n)
}

func TestIngest_UnknownExtension(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	res := a.Ingest([]string{"a.badext"})
	assert.Zero(t, res.Processed)
	assert.Zero(t, res.ChunksAdded)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "No content extracted from a.badext", res.Errors[0])
}

func TestIngest_ErrorIsolation(t *testing.T) {
	emb := &fakeEmbedder{vec: []float32{1, 0}}
	a, st := newTestAssistant(t, emb, &fakeGenerator{})
	dir := t.TempDir()

	good := writeFile(t, dir, "good.txt", "plain content")
	missing := filepath.Join(dir, "missing.txt")

	res := a.Ingest([]string{missing, good})
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.ChunksAdded)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], fmt.Sprintf("Error processing %s", missing))

	n, _ := st.Count()
	assert.Equal(t, 1, n)
}

func TestIngest_EmbedFailureIsolatedPerFile(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("ollama unavailable")}
	a, st := newTestAssistant(t, emb, &fakeGenerator{})
	dir := t.TempDir()

	path := writeFile(t, dir, "doc.txt", "plain content")

	res := a.Ingest([]string{path})
	assert.Zero(t, res.Processed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "ollama unavailable")

	// Nothing partial lands in the index.
	n, _ := st.Count()
	assert.Zero(t, n)
}

func TestAnswer_RoundTrip(t *testing.T) {
	gen := &fakeGenerator{response: "the system works by magic"}
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, gen)

	require.NoError(t, st.Add([]store.Record{{
		ID:        "d_0",
		Content:   "indexed knowledge",
		Meta:      store.Metadata{Source: "d.txt", Type: "text"},
		Embedding: []float32{1, 0},
	}}))

	answer, context, err := a.Answer("how does the system work?", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "the system works by magic", answer)
	require.Len(t, context, 1)
	assert.Equal(t, "indexed knowledge", context[0].Content)

	// The retrieved chunk made it into the prompt.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "indexed knowledge")
	assert.Contains(t, gen.prompts[0], "User Question: how does the system work?")
}

func TestAnswer_GenerationFailureBecomesMessage(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model not loaded")}
	a, _ := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, gen)

	answer, _, err := a.Answer("question", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "Error generating response: model not loaded", answer)
}

func TestAnswer_EmbeddingFailurePropagates(t *testing.T) {
	wantErr := errors.New("embedding down")
	a, _ := newTestAssistant(t, &fakeEmbedder{err: wantErr}, &fakeGenerator{})

	_, _, err := a.Answer("question", 0, "")
	assert.ErrorIs(t, err, wantErr)
}

func TestSearch(t *testing.T) {
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	require.NoError(t, st.Add([]store.Record{{
		ID:        "d_0",
		Content:   "findable",
		Meta:      store.Metadata{Type: "text"},
		Embedding: []float32{1, 0},
	}}))

	records, err := a.Search("query", 0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "findable", records[0].Content)
}

func TestBuildDiagram_ExtractsFromContext(t *testing.T) {
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	require.NoError(t, st.Add([]store.Record{{
		ID:        "d_0",
		Content:   "Flight Controller: stabilizes the craft.\nRadio Link: carries telemetry.",
		Meta:      store.Metadata{Type: "text"},
		Embedding: []float32{1, 0},
	}}))

	elements, err := a.BuildDiagram("control architecture", "LAB", 10)
	require.NoError(t, err)
	require.Len(t, elements, 2)

	names := []string{elements[0].Name, elements[1].Name}
	assert.Contains(t, names, "Flight Controller")
	assert.Contains(t, names, "Radio Link")
	for _, el := range elements {
		assert.Equal(t, "component", el.Type)
	}
}

func TestBuildDiagram_FallbackWhenNothingExtracted(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	elements, err := a.BuildDiagram("anything", "SFB", 5)
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "System Function", elements[0].Name)
	assert.Equal(t, "function", elements[0].Type)
}

func TestBuildDiagram_RespectsMaxElements(t *testing.T) {
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	require.NoError(t, st.Add([]store.Record{{
		ID:        "d_0",
		Content:   "Alpha Unit: one.\nBeta Unit: two.\nGamma Unit: three.",
		Meta:      store.Metadata{Type: "text"},
		Embedding: []float32{1, 0},
	}}))

	elements, err := a.BuildDiagram("units", "PAB", 2)
	require.NoError(t, err)
	assert.Len(t, elements, 2)
}

func TestStats(t *testing.T) {
	a, st := newTestAssistant(t, &fakeEmbedder{vec: []float32{1, 0}}, &fakeGenerator{})

	require.NoError(t, st.Add([]store.Record{
		{ID: "a_0", Meta: store.Metadata{Type: "text"}, Embedding: []float32{1, 0}},
		{ID: "a_1", Meta: store.Metadata{Type: "text"}, Embedding: []float32{0, 1}},
		{ID: "b_0", Meta: store.Metadata{Type: "xml_requirement"}, Embedding: []float32{1, 1}},
	}))

	stats := a.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"text": 2, "xml_requirement": 1}, stats.ByType)

	require.Len(t, stats.SupportedPhases, 6)
	assert.Equal(t, arcadia.PhaseOperational, stats.SupportedPhases[0])
}
