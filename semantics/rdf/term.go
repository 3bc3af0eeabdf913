package rdf

import "fmt"

// TermKind discriminates the three kinds of RDF terms.
type TermKind int

const (
	// TermIRI is an absolute IRI reference.
	TermIRI TermKind = iota

	// TermBlank is a labeled blank node.
	TermBlank

	// TermLiteral is a literal value with optional datatype or language tag.
	TermLiteral
)

// String returns the term kind name.
func (k TermKind) String() string {
	switch k {
	case TermIRI:
		return "iri"
	case TermBlank:
		return "blank"
	case TermLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is a single RDF term: an IRI, a blank node label, or a literal.
type Term struct {
	Kind TermKind

	// Value is the IRI, the blank node label (without "_:"), or the
	// literal's lexical form.
	Value string

	// Datatype is the datatype IRI for typed literals. Empty for IRIs,
	// blank nodes, and plain literals.
	Datatype string

	// Lang is the language tag for language-tagged literals.
	Lang string
}

// IRI constructs an IRI term.
func IRI(value string) Term {
	return Term{Kind: TermIRI, Value: value}
}

// Blank constructs a blank node term from a label without the "_:" prefix.
func Blank(label string) Term {
	return Term{Kind: TermBlank, Value: label}
}

// Literal constructs a plain literal term.
func Literal(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// TypedLiteral constructs a literal term with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == TermIRI }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == TermLiteral }

// String renders the term in N-Triples syntax, mainly for diagnostics.
func (t Term) String() string {
	switch t.Kind {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	case TermLiteral:
		if t.Datatype != "" {
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		}
		if t.Lang != "" {
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		}
		return fmt.Sprintf("%q", t.Value)
	default:
		return t.Value
	}
}

// Triple is one RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term

	// Line is the 1-based line in the source document where the statement
	// ended, used for error reporting by downstream consumers.
	Line int
}

// String renders the triple in N-Triples syntax.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}
