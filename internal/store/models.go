package store

import (
	"errors"

	"arcrag/internal/arcadia"
)

// ErrDuplicateID is returned by Add when a record id is already present.
var ErrDuplicateID = errors.New("duplicate record id")

// Metadata describes the provenance and classification of an indexed chunk.
type Metadata struct {
	Source      string
	Type        string
	ChunkID     int
	TotalChunks int
	Phase       arcadia.Phase
	ElementID   string
	ElementType string
	ElementName string
}

// Record is a chunk ready for indexing: a stable unique id, the chunk
// content and metadata, and the embedding vector.
type Record struct {
	ID        string
	Content   string
	Meta      Metadata
	Embedding []float32
}

// RetrievedRecord is a read-only view of an indexed record returned from a
// similarity query. Distance is nil when the backing index cannot report one;
// lower means more similar.
type RetrievedRecord struct {
	Content  string
	Meta     Metadata
	Distance *float64
}

// Filter restricts a query to records whose metadata type equals Type or
// whose element type equals ElementType. It is intentionally loose: false
// negatives are acceptable because callers fall back to an unfiltered query.
type Filter struct {
	Type        string
	ElementType string
}

// Matches reports whether the filter accepts the given metadata.
func (f *Filter) Matches(m Metadata) bool {
	return m.Type == f.Type || (f.ElementType != "" && m.ElementType == f.ElementType)
}

// Store is an append-only vector index over chunk records.
//
// Implementations do not guarantee internal locking for mixed Add/Query use;
// callers must serialize access to the same physical store unless the
// backend documents otherwise.
type Store interface {
	// Add appends records. It fails with ErrDuplicateID if any id is
	// already present (or repeated within the batch) and adds nothing.
	Add(records []Record) error
	// Query returns up to k records nearest to the embedding, ordered by
	// ascending distance with ties broken by insertion order. A nil filter
	// queries the whole index.
	Query(embedding []float32, k int, filter *Filter) ([]RetrievedRecord, error)
	// Count returns the number of indexed records.
	Count() (int, error)
	// TypeDistribution returns record counts per metadata type. Best-effort:
	// an empty map on failure, never an error.
	TypeDistribution() map[string]int
	// Close releases the underlying resources.
	Close() error
}
