package rag

import (
	"fmt"

	"arcrag/internal/arcadia"
	"arcrag/internal/diagram"
	"arcrag/internal/llm"
	"arcrag/internal/reader"
	"arcrag/internal/segment"
	"arcrag/internal/store"

	"go.uber.org/zap"
)

// Config holds the assistant's tuning knobs.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	Generation   llm.Options
}

// DefaultConfig mirrors the standard processing settings.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		TopK:         5,
		Generation: llm.Options{
			Temperature: 0.7,
			TopP:        0.9,
			NumPredict:  1000,
		},
	}
}

// IngestResult reports the outcome of one ingestion batch.
type IngestResult struct {
	Processed   int
	ChunksAdded int
	Errors      []string
}

// Stats summarizes the index contents.
type Stats struct {
	Total           int
	ByType          map[string]int
	SupportedPhases []arcadia.Phase
}

// Assistant is the exposed surface of the retrieval-and-extraction core,
// consumed by the CLI, TUI and MCP layers. All operations are synchronous;
// callers serialize access to the underlying store.
type Assistant struct {
	cfg        Config
	store      store.Store
	embedder   Embedder
	generator  Generator
	readers    *reader.Registry
	segmenter  *segment.Segmenter
	taxonomy   *arcadia.Taxonomy
	classifier *arcadia.Classifier
	engine     *Engine
	prompts    *PromptAssembler
	extractor  *diagram.Extractor
	log        *zap.Logger
}

// NewAssistant wires the pipeline over the given store and external
// services.
func NewAssistant(st store.Store, emb Embedder, gen Generator, cfg Config, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	taxonomy := arcadia.DefaultTaxonomy()
	classifier := arcadia.NewClassifier(taxonomy)
	return &Assistant{
		cfg:        cfg,
		store:      st,
		embedder:   emb,
		generator:  gen,
		readers:    reader.NewRegistry(log),
		segmenter:  segment.NewSegmenter(cfg.ChunkSize, cfg.ChunkOverlap, classifier),
		taxonomy:   taxonomy,
		classifier: classifier,
		engine:     NewEngine(st, emb, taxonomy, log),
		prompts:    NewPromptAssembler(taxonomy, classifier),
		extractor:  diagram.NewExtractor(),
		log:        log,
	}
}

// Taxonomy exposes the phase table for display layers.
func (a *Assistant) Taxonomy() *arcadia.Taxonomy { return a.taxonomy }

// Ingest processes files sequentially and indexes their chunks. Each file is
// isolated: a failure is recorded and the remaining files still process.
func (a *Assistant) Ingest(paths []string) IngestResult {
	var res IngestResult
	for _, path := range paths {
		added, err := a.ingestFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Error processing %s: %v", path, err))
			continue
		}
		if added == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("No content extracted from %s", path))
			continue
		}
		res.Processed++
		res.ChunksAdded += added
	}
	return res
}

func (a *Assistant) ingestFile(path string) (int, error) {
	docs, err := a.readers.Read(path)
	if err != nil {
		return 0, err
	}

	var chunks []segment.Chunk
	for _, doc := range docs {
		chunks = append(chunks, a.segmenter.Segment(doc)...)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	// Embeddings are issued one chunk at a time so a service failure is
	// attributable to a single chunk.
	records := make([]store.Record, len(chunks))
	for i, c := range chunks {
		embedding, err := a.embedder.Embed(c.Content)
		if err != nil {
			return 0, err
		}
		records[i] = store.Record{
			ID:        fmt.Sprintf("%s_%d", path, i),
			Content:   c.Content,
			Meta:      c.Meta,
			Embedding: embedding,
		}
	}

	if err := a.store.Add(records); err != nil {
		return 0, err
	}

	a.log.Info("ingested file",
		zap.String("path", path),
		zap.Int("chunks", len(records)))
	return len(records), nil
}

// Search retrieves context records for a query without generating a
// response.
func (a *Assistant) Search(query string, k int, phase arcadia.Phase) ([]store.RetrievedRecord, error) {
	if k <= 0 {
		k = a.cfg.TopK
	}
	return a.engine.Retrieve(query, k, phase)
}

// Answer retrieves context for the query and generates a phase-aware
// response. Generation failures are converted into the returned response
// text so interactive callers never crash on them; embedding failures are
// returned as errors.
func (a *Assistant) Answer(query string, k int, phase arcadia.Phase) (string, []store.RetrievedRecord, error) {
	if k <= 0 {
		k = a.cfg.TopK
	}
	context, err := a.engine.Retrieve(query, k, phase)
	if err != nil {
		return "", nil, err
	}

	prompt := a.prompts.Assemble(query, context, phase)
	response, err := a.generator.Generate(prompt, a.cfg.Generation)
	if err != nil {
		a.log.Warn("generation failed", zap.Error(err))
		response = fmt.Sprintf("Error generating response: %v", err)
	}
	return response, context, nil
}

// BuildDiagram retrieves context for the description and extracts an
// overview element set bounded by maxElements. When extraction finds
// nothing, the category's template element is returned.
func (a *Assistant) BuildDiagram(description string, category diagram.Category, maxElements int) ([]diagram.Element, error) {
	records, err := a.engine.Retrieve(description, a.cfg.TopK, "")
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(records)+1)
	texts = append(texts, description)
	for _, r := range records {
		texts = append(texts, r.Content)
	}

	elements := a.extractor.Extract(texts, category.ElementType())
	if len(elements) == 0 {
		elements = []diagram.Element{category.Fallback()}
	}
	return diagram.Select(elements, maxElements), nil
}

// Close releases the underlying store.
func (a *Assistant) Close() error {
	return a.store.Close()
}

// Stats reports the index size, per-type counts and the supported phases.
func (a *Assistant) Stats() Stats {
	total, err := a.store.Count()
	if err != nil {
		a.log.Warn("count failed", zap.Error(err))
		total = 0
	}
	phases := make([]arcadia.Phase, 0, len(a.taxonomy.Phases()))
	for _, info := range a.taxonomy.Phases() {
		phases = append(phases, info.Phase)
	}
	return Stats{
		Total:           total,
		ByType:          a.store.TypeDistribution(),
		SupportedPhases: phases,
	}
}
