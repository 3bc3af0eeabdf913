package rdf

// Standard vocabulary IRIs used when interpreting parsed ontology triples.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - XSD: https://www.w3.org/TR/xmlschema11-2/

// RDF namespace IRIs.
const (
	RdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RdfType asserts that a resource is an instance of a class.
	RdfType = RdfNamespace + "type"
)

// RDF Schema namespace IRIs.
const (
	RdfsNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// RdfsSubClassOf asserts a subclass relationship between two classes.
	RdfsSubClassOf = RdfsNamespace + "subClassOf"

	// RdfsSubPropertyOf asserts a subproperty relationship.
	RdfsSubPropertyOf = RdfsNamespace + "subPropertyOf"

	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RdfsNamespace + "label"

	// RdfsComment provides a human-readable description.
	RdfsComment = RdfsNamespace + "comment"

	// RdfsDomain restricts the subjects a property applies to.
	RdfsDomain = RdfsNamespace + "domain"

	// RdfsRange restricts the values a property may take.
	RdfsRange = RdfsNamespace + "range"
)

// OWL namespace IRIs.
const (
	OwlNamespace = "http://www.w3.org/2002/07/owl#"

	// OwlOntology types the ontology header resource.
	OwlOntology = OwlNamespace + "Ontology"

	// OwlClass types a class declaration.
	OwlClass = OwlNamespace + "Class"

	// OwlObjectProperty types a property whose values are resources.
	OwlObjectProperty = OwlNamespace + "ObjectProperty"

	// OwlDatatypeProperty types a property whose values are literals.
	OwlDatatypeProperty = OwlNamespace + "DatatypeProperty"

	// OwlNamedIndividual types a named individual.
	OwlNamedIndividual = OwlNamespace + "NamedIndividual"
)

// XSD namespace IRIs for common literal datatypes.
const (
	XsdNamespace = "http://www.w3.org/2001/XMLSchema#"

	XsdString   = XsdNamespace + "string"
	XsdInteger  = XsdNamespace + "integer"
	XsdDecimal  = XsdNamespace + "decimal"
	XsdBoolean  = XsdNamespace + "boolean"
	XsdDateTime = XsdNamespace + "dateTime"
)
