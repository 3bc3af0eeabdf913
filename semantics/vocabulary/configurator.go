package vocabulary

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fiware-community/figo/metric"
	"github.com/fiware-community/figo/semantics/rdf"
)

// Configurator orchestrates vocabulary rebuilds. It holds no mutable state
// across calls: every addition is a pure function of the prior sources'
// content, the new source content, and the prior vocabulary's settings.
//
// The input vocabulary is never mutated. On success a brand-new vocabulary
// is returned; on failure the error is wrapped in *ParsingError and the
// caller's vocabulary remains the active one.
type Configurator struct {
	registry *rdf.Registry
	logger   *slog.Logger
	metrics  *metric.Metrics
	now      func() time.Time
}

// ConfiguratorOption configures a Configurator.
type ConfiguratorOption func(*Configurator)

// WithRegistry selects the serialization parser registry.
func WithRegistry(registry *rdf.Registry) ConfiguratorOption {
	return func(c *Configurator) {
		c.registry = registry
	}
}

// WithLogger sets the logger used for rebuild diagnostics.
func WithLogger(logger *slog.Logger) ConfiguratorOption {
	return func(c *Configurator) {
		c.logger = logger
	}
}

// WithMetrics enables rebuild metrics.
func WithMetrics(m *metric.Metrics) ConfiguratorOption {
	return func(c *Configurator) {
		c.metrics = m
	}
}

// WithClock overrides the time source used for source timestamps.
func WithClock(now func() time.Time) ConfiguratorOption {
	return func(c *Configurator) {
		c.now = now
	}
}

// NewConfigurator creates a configurator with the given options.
func NewConfigurator(opts ...ConfiguratorOption) *Configurator {
	c := &Configurator{
		registry: rdf.DefaultRegistry,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateVocabulary returns a fresh, empty vocabulary.
func (c *Configurator) CreateVocabulary() *Vocabulary {
	return New()
}

// AddOntologyFromFile reads an ontology document from a file and merges it
// into the vocabulary. The source name is the filename without extension,
// the serialization format is derived from the extension. Unreadable paths
// fail before any parsing begins.
func (c *Configurator) AddOntologyFromFile(voc *Vocabulary, path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology file: %w", err)
	}

	base := filepath.Base(path)
	source := &Source{
		Name:      strings.TrimSuffix(base, filepath.Ext(base)),
		Content:   string(data),
		Format:    rdf.FormatFromExtension(filepath.Ext(base)),
		Timestamp: c.now(),
	}

	return c.addSources(voc, []*Source{source})
}

// AddOntologyFromString merges inline ontology content into the vocabulary
// under a caller-chosen source name. The content is parsed as Turtle.
func (c *Configurator) AddOntologyFromString(voc *Vocabulary, sourceName, sourceContent string) (*Vocabulary, error) {
	source := &Source{
		Name:      sourceName,
		Content:   sourceContent,
		Format:    rdf.FormatTurtle,
		Timestamp: c.now(),
	}

	return c.addSources(voc, []*Source{source})
}

// AddOntologiesFromDir merges every ontology file under dir whose relative
// path matches the doublestar pattern (for example "**/*.ttl"). Files are
// ingested in lexical path order so rebuilds are deterministic.
func (c *Configurator) AddOntologiesFromDir(voc *Vocabulary, dir, pattern string) (*Vocabulary, error) {
	if pattern == "" {
		pattern = "**/*.{ttl,nt}"
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob ontology files: %w", err)
	}
	sort.Strings(matches)

	sources := make([]*Source, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(dir, match)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read ontology file: %w", err)
		}
		base := filepath.Base(match)
		sources = append(sources, &Source{
			Name:      strings.TrimSuffix(base, filepath.Ext(base)),
			Content:   string(data),
			Format:    rdf.FormatFromExtension(filepath.Ext(base)),
			Timestamp: c.now(),
		})
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no ontology files match %q under %s", pattern, dir)
	}

	return c.addSources(voc, sources)
}

// addSources implements the merge protocol: rebuild a fresh vocabulary from
// every known source plus the new ones, then post-process against the prior
// vocabulary so user settings survive. Replaced source names are parsed
// only in their new version.
func (c *Configurator) addSources(voc *Vocabulary, sources []*Source) (*Vocabulary, error) {
	start := time.Now()

	replaced := make(map[string]bool, len(sources))
	for _, s := range sources {
		replaced[s.Name] = true
	}

	newVoc := New()
	parser := NewRdfParser(c.registry)

	run := func() error {
		for _, s := range voc.sortedSources() {
			if replaced[s.Name] {
				continue
			}
			if err := parser.ParseSourceIntoVocabulary(s, newVoc); err != nil {
				return err
			}
		}
		for _, s := range sources {
			if err := parser.ParseSourceIntoVocabulary(s, newVoc); err != nil {
				return err
			}
		}
		return PostProcessVocabulary(newVoc, voc)
	}

	if err := run(); err != nil {
		c.metrics.RecordParseRun("error", time.Since(start))
		c.logger.Error("vocabulary rebuild failed",
			"sources", len(voc.Sources)+len(sources),
			"error", err)
		return nil, &ParsingError{Err: err}
	}

	c.metrics.RecordParseRun("ok", time.Since(start))
	c.metrics.RecordVocabularySize(
		len(newVoc.Classes),
		len(newVoc.ObjectProperties),
		len(newVoc.DataProperties),
		len(newVoc.Individuals))
	c.logger.Debug("vocabulary rebuilt",
		"sources", len(newVoc.Sources),
		"classes", len(newVoc.Classes),
		"object_properties", len(newVoc.ObjectProperties),
		"data_properties", len(newVoc.DataProperties),
		"individuals", len(newVoc.Individuals),
		"duration", time.Since(start))

	return newVoc, nil
}
