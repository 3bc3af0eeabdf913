// Package rdf provides hand-written parsers for RDF serializations used by
// the ontology ingestion pipeline.
//
// Two serializations are supported:
//   - Turtle (https://www.w3.org/TR/turtle/) - the primary ontology format
//   - N-Triples (https://www.w3.org/TR/n-triples/) - a line-based subset
//
// Parsers implement a common interface and are looked up through a Registry,
// either by format name or by file extension. Parsing produces a flat list
// of triples; interpretation of those triples as ontology elements happens
// in the vocabulary package.
//
// The Turtle parser covers the subset of the grammar that OWL ontologies
// exported by common tooling actually use: prefix and base directives,
// prefixed names, IRIs, labeled blank nodes, the "a" keyword, literals with
// datatype or language tags, numeric and boolean shorthand, and the ";" and
// "," punctuation. Collections and anonymous blank node property lists are
// not supported and are reported as syntax errors.
package rdf
