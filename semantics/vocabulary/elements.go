package vocabulary

// ElementKind discriminates the kinds of parsed ontology elements.
type ElementKind string

// Element kinds.
const (
	KindClass          ElementKind = "class"
	KindObjectProperty ElementKind = "object_property"
	KindDataProperty   ElementKind = "data_property"
	KindIndividual     ElementKind = "individual"
)

// Entity holds the fields shared by every parsed ontology element.
type Entity struct {
	// IRI is the globally stable identifier of the element.
	IRI string `json:"iri"`

	// Labels are the rdfs:label values merged across all sources.
	Labels []string `json:"labels,omitempty"`

	// Comments are the rdfs:comment values merged across all sources.
	Comments []string `json:"comments,omitempty"`

	// SourceNames lists the sources that declared facts about this element.
	SourceNames []string `json:"source_names,omitempty"`
}

// Class is a parsed ontology class.
type Class struct {
	Entity

	// ParentClassIRIs are the directly asserted superclasses.
	ParentClassIRIs []string `json:"parent_class_iris,omitempty"`

	// AncestorClassIRIs is the transitive superclass closure, computed
	// during post-processing.
	AncestorClassIRIs []string `json:"ancestor_class_iris,omitempty"`

	// ChildClassIRIs are the directly asserted subclasses, computed during
	// post-processing as the inverse of ParentClassIRIs.
	ChildClassIRIs []string `json:"child_class_iris,omitempty"`
}

// ObjectProperty is a parsed property whose values are other resources.
type ObjectProperty struct {
	Entity

	// SuperPropertyIRIs are the directly asserted superproperties.
	SuperPropertyIRIs []string `json:"super_property_iris,omitempty"`

	// DomainClassIRIs are the directly asserted domains.
	DomainClassIRIs []string `json:"domain_class_iris,omitempty"`

	// RangeClassIRIs are the directly asserted ranges.
	RangeClassIRIs []string `json:"range_class_iris,omitempty"`

	// CombinedDomainIRIs merges own and inherited domains, computed during
	// post-processing.
	CombinedDomainIRIs []string `json:"combined_domain_iris,omitempty"`

	// CombinedRangeIRIs merges own and inherited ranges, computed during
	// post-processing.
	CombinedRangeIRIs []string `json:"combined_range_iris,omitempty"`
}

// DataProperty is a parsed property whose values are literals.
type DataProperty struct {
	Entity

	// SuperPropertyIRIs are the directly asserted superproperties.
	SuperPropertyIRIs []string `json:"super_property_iris,omitempty"`

	// DomainClassIRIs are the directly asserted domains.
	DomainClassIRIs []string `json:"domain_class_iris,omitempty"`

	// RangeDatatypeIRIs are the directly asserted literal datatypes.
	RangeDatatypeIRIs []string `json:"range_datatype_iris,omitempty"`

	// CombinedDomainIRIs merges own and inherited domains, computed during
	// post-processing.
	CombinedDomainIRIs []string `json:"combined_domain_iris,omitempty"`

	// CombinedRangeIRIs merges own and inherited datatypes, computed during
	// post-processing.
	CombinedRangeIRIs []string `json:"combined_range_iris,omitempty"`
}

// Individual is a parsed named individual.
type Individual struct {
	Entity

	// ClassIRIs are the directly asserted class memberships.
	ClassIRIs []string `json:"class_iris,omitempty"`

	// AncestorClassIRIs closes ClassIRIs over the class hierarchy, computed
	// during post-processing.
	AncestorClassIRIs []string `json:"ancestor_class_iris,omitempty"`
}

// Settings holds the user-assigned configuration attached to one element.
// Settings survive vocabulary rebuilds as long as the element's IRI is still
// declared by some source.
type Settings struct {
	// Label overrides the display label derived from rdfs:label.
	Label string `json:"label,omitempty"`

	// Included controls whether the element participates in downstream
	// model generation.
	Included bool `json:"included"`
}

// DefaultSettings returns the settings assigned to newly discovered elements.
func DefaultSettings() Settings {
	return Settings{Included: true}
}
