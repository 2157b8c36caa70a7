// Package reader turns files on disk into raw text or structured model
// element records, dispatched by file extension. Unknown extensions yield
// nothing rather than an error.
package reader

import (
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Element is one structured record extracted from a model export.
type Element struct {
	// MetaType is the metadata type the record is indexed under,
	// e.g. "xml_requirement", "capella_function", "aird_element".
	MetaType string
	// Label is the heading used when the record content is synthesized,
	// e.g. "Requirement", "Capella Function", "Model Element".
	Label string
	// Type is the element type: requirement, function, component, actor,
	// interface, capability or mission.
	Type string

	ID          string
	Name        string
	Description string
	TypeAttr    string
	Summary     string
	Nature      string
	Kind        string
	Details     string
}

// Document is the output of a reader for one source (an archive produces one
// Document per inner entry). Either Text or Elements is populated.
type Document struct {
	// Source identifies where the content came from; archive entries are
	// annotated as "<archive_path>#<inner_entry_path>".
	Source string
	// TypeTag is the metadata type for character-split chunks of Text.
	TypeTag string

	Text     string
	Elements []Element
}

// Func reads one file into documents.
type Func func(path string) ([]Document, error)

// Registry maps file extensions (without dot, lowercased) to readers.
type Registry struct {
	readers map[string]Func
	log     *zap.Logger
}

// NewRegistry creates a registry with all built-in format readers.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		readers: make(map[string]Func),
		log:     log,
	}
	r.Register("txt", readText)
	r.Register("json", readJSON)
	r.Register("xml", readModelXML)
	r.Register("pdf", readPDF)
	r.Register("docx", readDOCX)
	r.Register("aird", r.readAird)
	r.Register("capella", r.readCapella)
	return r
}

// Register adds or replaces the reader for an extension.
func (r *Registry) Register(ext string, fn Func) {
	r.readers[strings.ToLower(ext)] = fn
}

// Read dispatches on the path's extension. Unsupported extensions return
// (nil, nil).
func (r *Registry) Read(path string) ([]Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	fn, ok := r.readers[ext]
	if !ok {
		return nil, nil
	}
	return fn(path)
}

// Extensions returns the sorted list of supported extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
