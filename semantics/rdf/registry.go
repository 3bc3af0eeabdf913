package rdf

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Format names for the supported serializations.
const (
	FormatTurtle   = "turtle"
	FormatNTriples = "ntriples"
)

// Parser defines the interface for RDF serialization parsers.
type Parser interface {
	// Parse parses a document and returns its triples.
	Parse(sourceName string, content []byte) ([]Triple, error)

	// CanParse returns true if this parser handles the given format name.
	CanParse(format string) bool

	// Format returns the primary format name for this parser.
	Format() string
}

// Registry manages serialization parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser // keyed by primary format name
}

// DefaultRegistry is the global parser registry with default parsers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new parser registry with default parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	r.Register(NewTurtleParser())
	r.Register(NewNTriplesParser())

	return r
}

// Register adds a parser to the registry.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Format()] = p
}

// GetByFormat returns a parser for the given format name.
func (r *Registry) GetByFormat(format string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.parsers[format]; ok {
		return p
	}

	for _, p := range r.parsers {
		if p.CanParse(format) {
			return p
		}
	}

	return nil
}

// GetByExtension returns a parser for a file based on its extension.
func (r *Registry) GetByExtension(filename string) Parser {
	return r.GetByFormat(FormatFromExtension(filepath.Ext(filename)))
}

// Parse parses a document using the parser selected by file extension.
func (r *Registry) Parse(filename string, content []byte) ([]Triple, error) {
	parser := r.GetByExtension(filename)
	if parser == nil {
		return nil, fmt.Errorf("no parser for file type: %s", filepath.Ext(filename))
	}
	return parser.Parse(filename, content)
}

// ListFormats returns all registered format names.
func (r *Registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.parsers))
	for f := range r.parsers {
		formats = append(formats, f)
	}
	return formats
}

// FormatFromExtension returns the format name for a file extension.
// Unknown extensions (including .owl dumps from common editors) default to
// Turtle, which is also the default for string-based ingestion.
func FormatFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".nt", ".ntriples":
		return FormatNTriples
	case ".ttl", ".turtle":
		return FormatTurtle
	default:
		return FormatTurtle
	}
}
