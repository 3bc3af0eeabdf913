// Package vocabulary implements the ontology ingestion and reconciliation
// pipeline.
//
// A Vocabulary aggregates one or more ontology Sources into a parsed model
// of classes, object properties, data properties, and individuals, keyed by
// IRI. Updates never patch a vocabulary in place: the Configurator rebuilds
// a fresh vocabulary from the full source history on every addition, then a
// post-processing pass computes derived closures and carries user-assigned
// settings forward from the previous vocabulary snapshot.
//
// The flow for one addition is:
//
//	caller -> Configurator.AddOntologyFromString
//	       -> new empty Vocabulary
//	       -> RdfParser.ParseSourceIntoVocabulary for every known source
//	       -> RdfParser.ParseSourceIntoVocabulary for the new source
//	       -> PostProcessVocabulary(new, old)
//	       -> new Vocabulary returned, old one untouched
//
// Any failure along the way aborts the whole addition and is wrapped in a
// single *ParsingError; the caller's previous vocabulary remains valid.
package vocabulary
