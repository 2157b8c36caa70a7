// Package rag orchestrates retrieval, prompt assembly and the exposed
// assistant surface: ingest, answer, diagram building and stats.
package rag

import (
	"arcrag/internal/arcadia"
	"arcrag/internal/llm"
	"arcrag/internal/store"

	"go.uber.org/zap"
)

// Embedder is the external embedding service contract.
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// Generator is the external generation service contract.
type Generator interface {
	Generate(prompt string, opts llm.Options) (string, error)
}

// Engine retrieves ranked context records for a query, optionally narrowed
// to a methodology phase.
type Engine struct {
	store    store.Store
	embedder Embedder
	taxonomy *arcadia.Taxonomy
	log      *zap.Logger
}

// NewEngine creates a retrieval engine.
func NewEngine(st store.Store, emb Embedder, t *arcadia.Taxonomy, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: st, embedder: emb, taxonomy: t, log: log}
}

// Retrieve embeds the query and runs a nearest-neighbor search. A known
// phase narrows the search to records typed "xml_<phase>" or carrying the
// phase as element type; if that filtered query fails or matches nothing,
// the same query is retried unfiltered. Embedding failures propagate
// unchanged.
func (e *Engine) Retrieve(query string, k int, phase arcadia.Phase) ([]store.RetrievedRecord, error) {
	embedding, err := e.embedder.Embed(query)
	if err != nil {
		return nil, err
	}

	var filter *store.Filter
	if phase != "" && e.taxonomy.Contains(phase) {
		filter = &store.Filter{
			Type:        "xml_" + string(phase),
			ElementType: string(phase),
		}
	}

	records, err := e.store.Query(embedding, k, filter)
	if filter != nil && (err != nil || len(records) == 0) {
		e.log.Debug("phase filter matched nothing, retrying unfiltered",
			zap.String("phase", string(phase)))
		return e.store.Query(embedding, k, nil)
	}
	return records, err
}
