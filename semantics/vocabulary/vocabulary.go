package vocabulary

import "sort"

// Vocabulary is the aggregated, parsed representation of all ontology
// sources added so far, plus derived closures and user settings.
//
// A Vocabulary is mutated only while a parse pass populates it. Once
// returned from the Configurator it is treated as an immutable snapshot:
// callers replace their reference instead of editing in place.
type Vocabulary struct {
	// Sources maps source name to the ingested document.
	Sources map[string]*Source `json:"sources"`

	// Classes, ObjectProperties, DataProperties, and Individuals hold the
	// parsed elements keyed by IRI.
	Classes          map[string]*Class          `json:"classes"`
	ObjectProperties map[string]*ObjectProperty `json:"object_properties"`
	DataProperties   map[string]*DataProperty   `json:"data_properties"`
	Individuals      map[string]*Individual     `json:"individuals"`

	// Settings holds user-assigned configuration keyed by element IRI.
	Settings map[string]Settings `json:"settings"`
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{
		Sources:          make(map[string]*Source),
		Classes:          make(map[string]*Class),
		ObjectProperties: make(map[string]*ObjectProperty),
		DataProperties:   make(map[string]*DataProperty),
		Individuals:      make(map[string]*Individual),
		Settings:         make(map[string]Settings),
	}
}

// KindOf returns the element kind declared for the IRI, and whether the IRI
// is known at all.
func (v *Vocabulary) KindOf(iri string) (ElementKind, bool) {
	if _, ok := v.Classes[iri]; ok {
		return KindClass, true
	}
	if _, ok := v.ObjectProperties[iri]; ok {
		return KindObjectProperty, true
	}
	if _, ok := v.DataProperties[iri]; ok {
		return KindDataProperty, true
	}
	if _, ok := v.Individuals[iri]; ok {
		return KindIndividual, true
	}
	return "", false
}

// ElementIRIs returns the IRIs of all parsed elements, sorted.
func (v *Vocabulary) ElementIRIs() []string {
	iris := make([]string, 0, len(v.Classes)+len(v.ObjectProperties)+len(v.DataProperties)+len(v.Individuals))
	for iri := range v.Classes {
		iris = append(iris, iri)
	}
	for iri := range v.ObjectProperties {
		iris = append(iris, iri)
	}
	for iri := range v.DataProperties {
		iris = append(iris, iri)
	}
	for iri := range v.Individuals {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

// ClassIRIs returns the IRIs of all classes, sorted.
func (v *Vocabulary) ClassIRIs() []string {
	iris := make([]string, 0, len(v.Classes))
	for iri := range v.Classes {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

// SourceNames returns the names of all sources, sorted.
func (v *Vocabulary) SourceNames() []string {
	names := make([]string, 0, len(v.Sources))
	for name := range v.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SettingsFor returns the settings for an element IRI, falling back to
// defaults when none are recorded.
func (v *Vocabulary) SettingsFor(iri string) Settings {
	if s, ok := v.Settings[iri]; ok {
		return s
	}
	return DefaultSettings()
}

// SetSettings records user-assigned settings for an element IRI. The IRI
// must belong to a parsed element.
func (v *Vocabulary) SetSettings(iri string, s Settings) bool {
	if _, ok := v.KindOf(iri); !ok {
		return false
	}
	v.Settings[iri] = s
	return true
}

// DisplayLabel returns the label to show for an element: the user override
// when set, otherwise the first rdfs:label, otherwise the IRI itself.
func (v *Vocabulary) DisplayLabel(iri string) string {
	if s, ok := v.Settings[iri]; ok && s.Label != "" {
		return s.Label
	}
	if e := v.entityFor(iri); e != nil && len(e.Labels) > 0 {
		return e.Labels[0]
	}
	return iri
}

// entityFor returns the shared entity record for an IRI of any kind.
func (v *Vocabulary) entityFor(iri string) *Entity {
	if c, ok := v.Classes[iri]; ok {
		return &c.Entity
	}
	if p, ok := v.ObjectProperties[iri]; ok {
		return &p.Entity
	}
	if p, ok := v.DataProperties[iri]; ok {
		return &p.Entity
	}
	if i, ok := v.Individuals[iri]; ok {
		return &i.Entity
	}
	return nil
}

// sortedSources returns the sources ordered by ingestion time, name as the
// tie-break. Rebuilds replay sources in this order.
func (v *Vocabulary) sortedSources() []*Source {
	sources := make([]*Source, 0, len(v.Sources))
	for _, s := range v.Sources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		if !sources[i].Timestamp.Equal(sources[j].Timestamp) {
			return sources[i].Timestamp.Before(sources[j].Timestamp)
		}
		return sources[i].Name < sources[j].Name
	})
	return sources
}
