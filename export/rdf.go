// Package export serializes a parsed vocabulary back into RDF documents:
// Turtle, N-Triples, or JSON-LD.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fiware-community/figo/semantics/rdf"
	"github.com/fiware-community/figo/semantics/vocabulary"
)

// RDFExporter turns a vocabulary's elements into triples and serializes
// them. The exporter reads the vocabulary; it never modifies it.
type RDFExporter struct {
	voc      *vocabulary.Vocabulary
	prefixes map[string]string

	// includeDisabled also exports elements the user switched off.
	includeDisabled bool
}

// ExporterOption configures an RDFExporter.
type ExporterOption func(*RDFExporter)

// WithDisabledElements also exports elements whose settings mark them as
// not included. By default those are skipped.
func WithDisabledElements() ExporterOption {
	return func(e *RDFExporter) {
		e.includeDisabled = true
	}
}

// WithPrefix adds a namespace prefix used to compact IRIs in Turtle and
// JSON-LD output.
func WithPrefix(prefix, namespace string) ExporterOption {
	return func(e *RDFExporter) {
		e.prefixes[prefix] = namespace
	}
}

// NewRDFExporter creates an exporter over a vocabulary snapshot.
func NewRDFExporter(voc *vocabulary.Vocabulary, opts ...ExporterOption) *RDFExporter {
	e := &RDFExporter{
		voc:      voc,
		prefixes: defaultPrefixes(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  rdf.RdfNamespace,
		"rdfs": rdf.RdfsNamespace,
		"owl":  rdf.OwlNamespace,
		"xsd":  rdf.XsdNamespace,
	}
}

// Export serializes the vocabulary to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	triples := e.triples()
	switch format {
	case FormatTurtle:
		return e.toTurtle(triples), nil
	case FormatNTriples:
		return e.toNTriples(triples), nil
	case FormatJSONLD:
		return e.toJSONLD(triples)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// exported reports whether an element should appear in the output.
func (e *RDFExporter) exported(iri string) bool {
	if e.includeDisabled {
		return true
	}
	return e.voc.SettingsFor(iri).Included
}

// triples generates the export triples, direct facts only. Derived
// closures are recomputed on import, so exporting them would just bloat
// the document.
func (e *RDFExporter) triples() []rdf.Triple {
	var out []rdf.Triple
	add := func(subject, predicate string, object rdf.Term) {
		out = append(out, rdf.Triple{
			Subject:   rdf.IRI(subject),
			Predicate: rdf.IRI(predicate),
			Object:    object,
		})
	}
	annotate := func(iri string, entity *vocabulary.Entity) {
		for _, label := range entity.Labels {
			add(iri, rdf.RdfsLabel, rdf.Literal(label))
		}
		for _, comment := range entity.Comments {
			add(iri, rdf.RdfsComment, rdf.Literal(comment))
		}
	}

	for _, iri := range e.voc.ClassIRIs() {
		if !e.exported(iri) {
			continue
		}
		c := e.voc.Classes[iri]
		add(iri, rdf.RdfType, rdf.IRI(rdf.OwlClass))
		for _, parent := range c.ParentClassIRIs {
			add(iri, rdf.RdfsSubClassOf, rdf.IRI(parent))
		}
		annotate(iri, &c.Entity)
	}

	for _, iri := range sortedKeys(e.voc.ObjectProperties) {
		if !e.exported(iri) {
			continue
		}
		op := e.voc.ObjectProperties[iri]
		add(iri, rdf.RdfType, rdf.IRI(rdf.OwlObjectProperty))
		for _, super := range op.SuperPropertyIRIs {
			add(iri, rdf.RdfsSubPropertyOf, rdf.IRI(super))
		}
		for _, domain := range op.DomainClassIRIs {
			add(iri, rdf.RdfsDomain, rdf.IRI(domain))
		}
		for _, rng := range op.RangeClassIRIs {
			add(iri, rdf.RdfsRange, rdf.IRI(rng))
		}
		annotate(iri, &op.Entity)
	}

	for _, iri := range sortedKeys(e.voc.DataProperties) {
		if !e.exported(iri) {
			continue
		}
		dp := e.voc.DataProperties[iri]
		add(iri, rdf.RdfType, rdf.IRI(rdf.OwlDatatypeProperty))
		for _, super := range dp.SuperPropertyIRIs {
			add(iri, rdf.RdfsSubPropertyOf, rdf.IRI(super))
		}
		for _, domain := range dp.DomainClassIRIs {
			add(iri, rdf.RdfsDomain, rdf.IRI(domain))
		}
		for _, rng := range dp.RangeDatatypeIRIs {
			add(iri, rdf.RdfsRange, rdf.IRI(rng))
		}
		annotate(iri, &dp.Entity)
	}

	for _, iri := range sortedKeys(e.voc.Individuals) {
		if !e.exported(iri) {
			continue
		}
		ind := e.voc.Individuals[iri]
		add(iri, rdf.RdfType, rdf.IRI(rdf.OwlNamedIndividual))
		for _, classIRI := range ind.ClassIRIs {
			add(iri, rdf.RdfType, rdf.IRI(classIRI))
		}
		annotate(iri, &ind.Entity)
	}

	return out
}

// toTurtle serializes to Turtle format, grouping predicates per subject.
func (e *RDFExporter) toTurtle(triples []rdf.Triple) string {
	var sb strings.Builder

	prefixes := make([]string, 0, len(e.prefixes))
	for prefix := range e.prefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}
	sb.WriteString("\n")

	for i := 0; i < len(triples); {
		subject := triples[i].Subject
		fmt.Fprintf(&sb, "%s", e.compact(subject.Value))

		first := true
		for ; i < len(triples) && triples[i].Subject == subject; i++ {
			if !first {
				sb.WriteString(" ;")
			}
			sb.WriteString("\n    ")
			t := triples[i]
			if t.Predicate.Value == rdf.RdfType {
				fmt.Fprintf(&sb, "a %s", e.compact(t.Object.Value))
			} else {
				fmt.Fprintf(&sb, "%s %s", e.compact(t.Predicate.Value), e.turtleObject(t.Object))
			}
			first = false
		}
		sb.WriteString(" .\n\n")
	}

	return sb.String()
}

// compact renders an IRI as a prefixed name when a known namespace covers
// it, full bracket form otherwise.
func (e *RDFExporter) compact(iri string) string {
	for prefix, ns := range e.prefixes {
		if local, ok := strings.CutPrefix(iri, ns); ok && local != "" && !strings.ContainsAny(local, "/#:") {
			return prefix + ":" + local
		}
	}
	return "<" + iri + ">"
}

func (e *RDFExporter) turtleObject(term rdf.Term) string {
	if term.IsIRI() {
		return e.compact(term.Value)
	}
	return term.String()
}

// toNTriples serializes to N-Triples format, one statement per line.
func (e *RDFExporter) toNTriples(triples []rdf.Triple) string {
	var sb strings.Builder
	for _, t := range triples {
		fmt.Fprintf(&sb, "%s %s %s .\n", t.Subject.String(), t.Predicate.String(), t.Object.String())
	}
	return sb.String()
}

// jsonldNode is one @graph entry.
type jsonldNode struct {
	ID    string         `json:"@id"`
	Types []string       `json:"@type,omitempty"`
	Props map[string]any `json:"-"`
}

func (n jsonldNode) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(n.Props)+2)
	flat["@id"] = n.ID
	if len(n.Types) > 0 {
		flat["@type"] = n.Types
	}
	for k, v := range n.Props {
		flat[k] = v
	}
	return json.Marshal(flat)
}

// toJSONLD serializes to JSON-LD with a @context holding the prefixes and
// one @graph node per subject.
func (e *RDFExporter) toJSONLD(triples []rdf.Triple) (string, error) {
	nodes := make(map[string]*jsonldNode)
	var order []string

	for _, t := range triples {
		node, ok := nodes[t.Subject.Value]
		if !ok {
			node = &jsonldNode{ID: t.Subject.Value, Props: make(map[string]any)}
			nodes[t.Subject.Value] = node
			order = append(order, t.Subject.Value)
		}

		if t.Predicate.Value == rdf.RdfType && t.Object.IsIRI() {
			node.Types = append(node.Types, t.Object.Value)
			continue
		}

		var value any
		if t.Object.IsIRI() {
			value = map[string]string{"@id": t.Object.Value}
		} else {
			value = t.Object.Value
		}
		key := t.Predicate.Value
		switch existing := node.Props[key].(type) {
		case nil:
			node.Props[key] = value
		case []any:
			node.Props[key] = append(existing, value)
		default:
			node.Props[key] = []any{existing, value}
		}
	}

	graph := make([]*jsonldNode, 0, len(order))
	for _, id := range order {
		graph = append(graph, nodes[id])
	}

	doc := map[string]any{
		"@context": e.prefixes,
		"@graph":   graph,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data) + "\n", nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
