package vocabulary

import (
	"strings"

	"github.com/fiware-community/figo/semantics/rdf"
)

// RdfParser parses ontology sources and populates a vocabulary with the
// elements they declare. Re-declarations across sources merge additively:
// new facts are appended, facts from other sources are never removed.
type RdfParser struct {
	registry *rdf.Registry
}

// NewRdfParser creates a parser backed by the given serialization registry.
// A nil registry selects the default one.
func NewRdfParser(registry *rdf.Registry) *RdfParser {
	if registry == nil {
		registry = rdf.DefaultRegistry
	}
	return &RdfParser{registry: registry}
}

// ParseSourceIntoVocabulary parses one source and merges its elements into
// the vocabulary. The source itself is recorded in the vocabulary's source
// map. Malformed content and cross-source contradictions are reported as
// *ParseError.
func (p *RdfParser) ParseSourceIntoVocabulary(source *Source, voc *Vocabulary) error {
	format := source.Format
	if format == "" {
		format = rdf.FormatTurtle
	}
	parser := p.registry.GetByFormat(format)
	if parser == nil {
		return &ParseError{
			Kind:   ParseErrorSyntax,
			Source: source.Name,
			Msg:    "unsupported serialization format " + format,
		}
	}

	triples, err := parser.Parse(source.Name, []byte(source.Content))
	if err != nil {
		return &ParseError{Kind: ParseErrorSyntax, Source: source.Name, Err: err}
	}

	voc.Sources[source.Name] = source

	// First pass: explicit element declarations. These establish the kind
	// of each IRI before facts about it are interpreted.
	for _, t := range triples {
		if t.Predicate.Value != rdf.RdfType || !t.Subject.IsIRI() || !t.Object.IsIRI() {
			continue
		}
		var declErr error
		switch t.Object.Value {
		case rdf.OwlClass:
			_, declErr = p.ensureClass(voc, t.Subject.Value, source.Name)
		case rdf.OwlObjectProperty:
			_, declErr = p.ensureObjectProperty(voc, t.Subject.Value, source.Name)
		case rdf.OwlDatatypeProperty:
			_, declErr = p.ensureDataProperty(voc, t.Subject.Value, source.Name)
		case rdf.OwlNamedIndividual:
			_, declErr = p.ensureIndividual(voc, t.Subject.Value, source.Name)
		case rdf.OwlOntology:
			// Ontology header resource, nothing to record.
		}
		if declErr != nil {
			return declErr
		}
	}

	// Second pass: facts about the declared elements. Statements whose
	// subject is a blank node carry constructs outside the supported
	// profile and are skipped.
	for _, t := range triples {
		if !t.Subject.IsIRI() {
			continue
		}
		var factErr error
		switch t.Predicate.Value {
		case rdf.RdfType:
			factErr = p.applyTypeFact(voc, t, source.Name)
		case rdf.RdfsSubClassOf:
			factErr = p.applySubClassFact(voc, t, source.Name)
		case rdf.RdfsSubPropertyOf:
			factErr = p.applySubPropertyFact(voc, t, source.Name)
		case rdf.RdfsLabel:
			p.applyAnnotation(voc, t, source.Name, true)
		case rdf.RdfsComment:
			p.applyAnnotation(voc, t, source.Name, false)
		case rdf.RdfsDomain:
			factErr = p.applyDomainFact(voc, t, source.Name)
		case rdf.RdfsRange:
			factErr = p.applyRangeFact(voc, t, source.Name)
		}
		if factErr != nil {
			return factErr
		}
	}

	return nil
}

// applyTypeFact records class membership for individuals. Built-in OWL and
// RDFS types were handled in the declaration pass.
func (p *RdfParser) applyTypeFact(voc *Vocabulary, t rdf.Triple, sourceName string) error {
	if !t.Object.IsIRI() || isBuiltinIRI(t.Object.Value) {
		return nil
	}

	// A type assertion with a non-built-in object makes the subject an
	// individual of that class, unless the subject is already known to be
	// a schema element (annotation-style typing on classes is ignored).
	if kind, ok := voc.KindOf(t.Subject.Value); ok && kind != KindIndividual {
		return nil
	}

	ind, err := p.ensureIndividual(voc, t.Subject.Value, sourceName)
	if err != nil {
		return err
	}
	if _, err := p.ensureClass(voc, t.Object.Value, sourceName); err != nil {
		return err
	}
	ind.ClassIRIs = appendUnique(ind.ClassIRIs, t.Object.Value)
	return nil
}

// applySubClassFact records a direct superclass. Both ends are implicitly
// classes. Blank node superclasses (owl:Restriction constructs) are outside
// the supported profile and are skipped.
func (p *RdfParser) applySubClassFact(voc *Vocabulary, t rdf.Triple, sourceName string) error {
	if !t.Object.IsIRI() {
		return nil
	}
	sub, err := p.ensureClass(voc, t.Subject.Value, sourceName)
	if err != nil {
		return err
	}
	if _, err := p.ensureClass(voc, t.Object.Value, sourceName); err != nil {
		return err
	}
	sub.ParentClassIRIs = appendUnique(sub.ParentClassIRIs, t.Object.Value)
	return nil
}

// applySubPropertyFact records a direct superproperty on whichever property
// kind the subject was declared as. Undeclared subjects default to object
// properties.
func (p *RdfParser) applySubPropertyFact(voc *Vocabulary, t rdf.Triple, sourceName string) error {
	if !t.Object.IsIRI() {
		return nil
	}
	if dp, ok := voc.DataProperties[t.Subject.Value]; ok {
		addSourceName(&dp.Entity, sourceName)
		dp.SuperPropertyIRIs = appendUnique(dp.SuperPropertyIRIs, t.Object.Value)
		return nil
	}
	op, err := p.ensureObjectProperty(voc, t.Subject.Value, sourceName)
	if err != nil {
		return err
	}
	op.SuperPropertyIRIs = appendUnique(op.SuperPropertyIRIs, t.Object.Value)
	return nil
}

// applyAnnotation records a label or comment on an already known element.
// Annotations on IRIs no source declares are dropped.
func (p *RdfParser) applyAnnotation(voc *Vocabulary, t rdf.Triple, sourceName string, label bool) {
	if !t.Object.IsLiteral() {
		return
	}
	e := voc.entityFor(t.Subject.Value)
	if e == nil {
		return
	}
	addSourceName(e, sourceName)
	if label {
		e.Labels = appendUnique(e.Labels, t.Object.Value)
	} else {
		e.Comments = appendUnique(e.Comments, t.Object.Value)
	}
}

// applyDomainFact records a property domain. The domain is implicitly a
// class.
func (p *RdfParser) applyDomainFact(voc *Vocabulary, t rdf.Triple, sourceName string) error {
	if !t.Object.IsIRI() {
		return nil
	}
	if _, err := p.ensureClass(voc, t.Object.Value, sourceName); err != nil {
		return err
	}
	if dp, ok := voc.DataProperties[t.Subject.Value]; ok {
		addSourceName(&dp.Entity, sourceName)
		dp.DomainClassIRIs = appendUnique(dp.DomainClassIRIs, t.Object.Value)
		return nil
	}
	op, err := p.ensureObjectProperty(voc, t.Subject.Value, sourceName)
	if err != nil {
		return err
	}
	op.DomainClassIRIs = appendUnique(op.DomainClassIRIs, t.Object.Value)
	return nil
}

// applyRangeFact records a property range. For data properties the range is
// a literal datatype; for object properties it is implicitly a class. An
// undeclared subject is classified by its range: an XSD datatype implies a
// data property, anything else an object property.
func (p *RdfParser) applyRangeFact(voc *Vocabulary, t rdf.Triple, sourceName string) error {
	if !t.Object.IsIRI() {
		return nil
	}

	if dp, ok := voc.DataProperties[t.Subject.Value]; ok {
		addSourceName(&dp.Entity, sourceName)
		dp.RangeDatatypeIRIs = appendUnique(dp.RangeDatatypeIRIs, t.Object.Value)
		return nil
	}
	if op, ok := voc.ObjectProperties[t.Subject.Value]; ok {
		addSourceName(&op.Entity, sourceName)
		if _, err := p.ensureClass(voc, t.Object.Value, sourceName); err != nil {
			return err
		}
		op.RangeClassIRIs = appendUnique(op.RangeClassIRIs, t.Object.Value)
		return nil
	}

	if strings.HasPrefix(t.Object.Value, rdf.XsdNamespace) {
		dp, err := p.ensureDataProperty(voc, t.Subject.Value, sourceName)
		if err != nil {
			return err
		}
		dp.RangeDatatypeIRIs = appendUnique(dp.RangeDatatypeIRIs, t.Object.Value)
		return nil
	}

	op, err := p.ensureObjectProperty(voc, t.Subject.Value, sourceName)
	if err != nil {
		return err
	}
	if _, err := p.ensureClass(voc, t.Object.Value, sourceName); err != nil {
		return err
	}
	op.RangeClassIRIs = appendUnique(op.RangeClassIRIs, t.Object.Value)
	return nil
}

// ensureClass returns the class record for an IRI, creating it when absent.
// An IRI already declared as a different element kind is a conflict.
func (p *RdfParser) ensureClass(voc *Vocabulary, iri, sourceName string) (*Class, error) {
	if kind, ok := voc.KindOf(iri); ok && kind != KindClass {
		return nil, conflictError(voc, iri, sourceName, kind, KindClass)
	}
	c, ok := voc.Classes[iri]
	if !ok {
		c = &Class{Entity: Entity{IRI: iri}}
		voc.Classes[iri] = c
	}
	addSourceName(&c.Entity, sourceName)
	return c, nil
}

// ensureObjectProperty returns the object property record for an IRI,
// creating it when absent.
func (p *RdfParser) ensureObjectProperty(voc *Vocabulary, iri, sourceName string) (*ObjectProperty, error) {
	if kind, ok := voc.KindOf(iri); ok && kind != KindObjectProperty {
		return nil, conflictError(voc, iri, sourceName, kind, KindObjectProperty)
	}
	op, ok := voc.ObjectProperties[iri]
	if !ok {
		op = &ObjectProperty{Entity: Entity{IRI: iri}}
		voc.ObjectProperties[iri] = op
	}
	addSourceName(&op.Entity, sourceName)
	return op, nil
}

// ensureDataProperty returns the data property record for an IRI, creating
// it when absent.
func (p *RdfParser) ensureDataProperty(voc *Vocabulary, iri, sourceName string) (*DataProperty, error) {
	if kind, ok := voc.KindOf(iri); ok && kind != KindDataProperty {
		return nil, conflictError(voc, iri, sourceName, kind, KindDataProperty)
	}
	dp, ok := voc.DataProperties[iri]
	if !ok {
		dp = &DataProperty{Entity: Entity{IRI: iri}}
		voc.DataProperties[iri] = dp
	}
	addSourceName(&dp.Entity, sourceName)
	return dp, nil
}

// ensureIndividual returns the individual record for an IRI, creating it
// when absent.
func (p *RdfParser) ensureIndividual(voc *Vocabulary, iri, sourceName string) (*Individual, error) {
	if kind, ok := voc.KindOf(iri); ok && kind != KindIndividual {
		return nil, conflictError(voc, iri, sourceName, kind, KindIndividual)
	}
	ind, ok := voc.Individuals[iri]
	if !ok {
		ind = &Individual{Entity: Entity{IRI: iri}}
		voc.Individuals[iri] = ind
	}
	addSourceName(&ind.Entity, sourceName)
	return ind, nil
}

// conflictError builds a ParseError naming both the current source and the
// sources that declared the conflicting kind.
func conflictError(voc *Vocabulary, iri, sourceName string, existing, wanted ElementKind) *ParseError {
	declaredBy := ""
	if e := voc.entityFor(iri); e != nil && len(e.SourceNames) > 0 {
		declaredBy = " by " + strings.Join(e.SourceNames, ", ")
	}
	return &ParseError{
		Kind:   ParseErrorConflict,
		Source: sourceName,
		IRI:    iri,
		Msg:    "declared as " + string(wanted) + " but already known as " + string(existing) + declaredBy,
	}
}

// isBuiltinIRI reports whether the IRI belongs to the RDF, RDFS, OWL, or
// XSD namespaces.
func isBuiltinIRI(iri string) bool {
	return strings.HasPrefix(iri, rdf.RdfNamespace) ||
		strings.HasPrefix(iri, rdf.RdfsNamespace) ||
		strings.HasPrefix(iri, rdf.OwlNamespace) ||
		strings.HasPrefix(iri, rdf.XsdNamespace)
}

// appendUnique appends a value unless it is already present.
func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

// addSourceName records that a source declared facts about an entity.
func addSourceName(e *Entity, sourceName string) {
	e.SourceNames = appendUnique(e.SourceNames, sourceName)
}
