package vocabulary_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fiware-community/figo/semantics/vocabulary"
)

const animalOntology = `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

ex:Animal a owl:Class .
`

const dogOntology = `
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:Dog rdfs:subClassOf ex:Animal .
`

func addString(t *testing.T, c *vocabulary.Configurator, voc *vocabulary.Vocabulary, name, content string) *vocabulary.Vocabulary {
	t.Helper()
	next, err := c.AddOntologyFromString(voc, name, content)
	if err != nil {
		t.Fatalf("AddOntologyFromString(%s) failed: %v", name, err)
	}
	return next
}

func TestCreateVocabularyEmpty(t *testing.T) {
	c := vocabulary.NewConfigurator()
	voc := c.CreateVocabulary()

	if len(voc.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(voc.Sources))
	}
	if len(voc.ElementIRIs()) != 0 {
		t.Errorf("expected no elements, got %v", voc.ElementIRIs())
	}
}

func TestAddOntologyScenario(t *testing.T) {
	c := vocabulary.NewConfigurator()
	voc := c.CreateVocabulary()

	v1 := addString(t, c, voc, "a", animalOntology)
	if got := v1.SourceNames(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected sources [a], got %v", got)
	}
	if got := v1.ClassIRIs(); !reflect.DeepEqual(got, []string{"http://example.org/Animal"}) {
		t.Fatalf("expected one class, got %v", got)
	}

	v2 := addString(t, c, v1, "b", dogOntology)
	if got := v2.SourceNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected sources [a b], got %v", got)
	}
	if len(v2.Classes) != 2 {
		t.Fatalf("expected two classes, got %v", v2.ClassIRIs())
	}

	dog := v2.Classes["http://example.org/Dog"]
	if dog == nil {
		t.Fatal("Dog class missing")
	}
	found := false
	for _, a := range dog.AncestorClassIRIs {
		if a == "http://example.org/Animal" {
			found = true
		}
	}
	if !found {
		t.Errorf("Dog ancestors should include Animal, got %v", dog.AncestorClassIRIs)
	}
}

func TestIdempotence(t *testing.T) {
	c := vocabulary.NewConfigurator()
	voc := c.CreateVocabulary()

	v1 := addString(t, c, voc, "a", animalOntology)
	v2 := addString(t, c, v1, "a", animalOntology)

	if !reflect.DeepEqual(v1.ElementIRIs(), v2.ElementIRIs()) {
		t.Errorf("element sets differ: %v vs %v", v1.ElementIRIs(), v2.ElementIRIs())
	}
	if !reflect.DeepEqual(v1.Settings, v2.Settings) {
		t.Errorf("settings differ: %v vs %v", v1.Settings, v2.Settings)
	}
	if !reflect.DeepEqual(v1.SourceNames(), v2.SourceNames()) {
		t.Errorf("sources differ: %v vs %v", v1.SourceNames(), v2.SourceNames())
	}
}

func TestOrderIndependenceForDisjointSources(t *testing.T) {
	sourceA := `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:Sensor a owl:Class .
`
	sourceB := `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:Actuator a owl:Class .
`

	c := vocabulary.NewConfigurator()

	ab := addString(t, c, addString(t, c, c.CreateVocabulary(), "a", sourceA), "b", sourceB)
	ba := addString(t, c, addString(t, c, c.CreateVocabulary(), "b", sourceB), "a", sourceA)

	if !reflect.DeepEqual(ab.ElementIRIs(), ba.ElementIRIs()) {
		t.Errorf("element sets differ by order: %v vs %v", ab.ElementIRIs(), ba.ElementIRIs())
	}
}

func TestNonMutationOfInputVocabulary(t *testing.T) {
	c := vocabulary.NewConfigurator()
	v1 := addString(t, c, c.CreateVocabulary(), "a", animalOntology)

	sourcesBefore := v1.SourceNames()
	elementsBefore := v1.ElementIRIs()

	_ = addString(t, c, v1, "b", dogOntology)

	if !reflect.DeepEqual(v1.SourceNames(), sourcesBefore) {
		t.Errorf("input vocabulary sources mutated: %v", v1.SourceNames())
	}
	if !reflect.DeepEqual(v1.ElementIRIs(), elementsBefore) {
		t.Errorf("input vocabulary elements mutated: %v", v1.ElementIRIs())
	}
	if _, ok := v1.Classes["http://example.org/Dog"]; ok {
		t.Error("input vocabulary gained a class from a later merge")
	}
}

func TestSettingsCarryForward(t *testing.T) {
	c := vocabulary.NewConfigurator()
	v1 := addString(t, c, c.CreateVocabulary(), "a", animalOntology)

	if !v1.SetSettings("http://example.org/Animal", vocabulary.Settings{Label: "Beast", Included: false}) {
		t.Fatal("SetSettings rejected a known IRI")
	}

	v2 := addString(t, c, v1, "b", dogOntology)

	s := v2.SettingsFor("http://example.org/Animal")
	if s.Label != "Beast" || s.Included {
		t.Errorf("settings not carried forward: %+v", s)
	}

	// New elements get defaults.
	if s := v2.SettingsFor("http://example.org/Dog"); !s.Included || s.Label != "" {
		t.Errorf("new element should get default settings, got %+v", s)
	}
}

func TestSettingsDropOnRemoval(t *testing.T) {
	c := vocabulary.NewConfigurator()
	v1 := addString(t, c, c.CreateVocabulary(), "a", animalOntology)
	v1.SetSettings("http://example.org/Animal", vocabulary.Settings{Label: "Beast"})

	// Re-adding source "a" with content that no longer declares Animal
	// simulates an external edit.
	replacement := `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:Plant a owl:Class .
`
	v2 := addString(t, c, v1, "a", replacement)

	if _, ok := v2.Classes["http://example.org/Animal"]; ok {
		t.Fatal("Animal should be gone after source replacement")
	}
	if _, ok := v2.Settings["http://example.org/Animal"]; ok {
		t.Error("settings for removed element should be dropped")
	}
}

func TestFailureAtomicity(t *testing.T) {
	c := vocabulary.NewConfigurator()
	v1 := addString(t, c, c.CreateVocabulary(), "a", animalOntology)

	_, err := c.AddOntologyFromString(v1, "bad", "this is not turtle {{{")
	if err == nil {
		t.Fatal("expected error for malformed content")
	}

	var parsingErr *vocabulary.ParsingError
	if !errors.As(err, &parsingErr) {
		t.Fatalf("expected *ParsingError, got %T: %v", err, err)
	}
	var parseErr *vocabulary.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("cause should be *ParseError, got %v", err)
	}
	if parseErr.Kind != vocabulary.ParseErrorSyntax {
		t.Errorf("expected syntax kind, got %s", parseErr.Kind)
	}

	if len(v1.Sources) != 1 {
		t.Errorf("input vocabulary source count changed: %d", len(v1.Sources))
	}
}

func TestConflictAcrossSources(t *testing.T) {
	c := vocabulary.NewConfigurator()
	v1 := addString(t, c, c.CreateVocabulary(), "a", animalOntology)

	conflicting := `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:Animal a owl:ObjectProperty .
`
	_, err := c.AddOntologyFromString(v1, "b", conflicting)
	if err == nil {
		t.Fatal("expected conflict error")
	}

	var parseErr *vocabulary.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError cause, got %v", err)
	}
	if parseErr.Kind != vocabulary.ParseErrorConflict {
		t.Errorf("expected conflict kind, got %s", parseErr.Kind)
	}
	if parseErr.IRI != "http://example.org/Animal" {
		t.Errorf("conflict should name the IRI, got %q", parseErr.IRI)
	}

	// Strong exception safety: nothing changed on the input.
	if len(v1.Sources) != 1 || len(v1.Classes) != 1 {
		t.Error("input vocabulary modified by failed merge")
	}
}

func TestCyclicHierarchyFails(t *testing.T) {
	cyclic := `
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:Dog rdfs:subClassOf ex:Cat .
ex:Cat rdfs:subClassOf ex:Dog .
`
	c := vocabulary.NewConfigurator()
	_, err := c.AddOntologyFromString(c.CreateVocabulary(), "cyclic", cyclic)
	if err == nil {
		t.Fatal("expected error for cyclic hierarchy")
	}

	var procErr *vocabulary.ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessingError cause, got %v", err)
	}
	if len(procErr.CycleIRIs) == 0 {
		t.Error("processing error should list the cycle members")
	}
}

func TestAddOntologyFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.ttl")
	if err := os.WriteFile(path, []byte(animalOntology), 0644); err != nil {
		t.Fatal(err)
	}

	c := vocabulary.NewConfigurator()
	voc, err := c.AddOntologyFromFile(c.CreateVocabulary(), path)
	if err != nil {
		t.Fatalf("AddOntologyFromFile failed: %v", err)
	}

	src, ok := voc.Sources["animals"]
	if !ok {
		t.Fatalf("source name should be filename without extension, got %v", voc.SourceNames())
	}
	if src.Format != "turtle" {
		t.Errorf("expected turtle format, got %s", src.Format)
	}
}

func TestAddOntologyFromMissingFile(t *testing.T) {
	c := vocabulary.NewConfigurator()
	_, err := c.AddOntologyFromFile(c.CreateVocabulary(), filepath.Join(t.TempDir(), "nope.ttl"))
	if err == nil {
		t.Fatal("expected I/O error")
	}

	// I/O failures surface directly, not as a merge failure.
	var parsingErr *vocabulary.ParsingError
	if errors.As(err, &parsingErr) {
		t.Errorf("I/O error should not be wrapped in ParsingError: %v", err)
	}
}

func TestAddOntologiesFromDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"animals.ttl": animalOntology,
		"dogs.ttl":    dogOntology,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c := vocabulary.NewConfigurator()
	voc, err := c.AddOntologiesFromDir(c.CreateVocabulary(), dir, "**/*.ttl")
	if err != nil {
		t.Fatalf("AddOntologiesFromDir failed: %v", err)
	}

	if got := voc.SourceNames(); !reflect.DeepEqual(got, []string{"animals", "dogs"}) {
		t.Errorf("expected sources [animals dogs], got %v", got)
	}
	if len(voc.Classes) != 2 {
		t.Errorf("expected two classes, got %v", voc.ClassIRIs())
	}
}

func TestRebuildDeterminism(t *testing.T) {
	c := vocabulary.NewConfigurator()

	build := func() *vocabulary.Vocabulary {
		voc := addString(t, c, c.CreateVocabulary(), "a", animalOntology)
		return addString(t, c, voc, "b", dogOntology)
	}

	first := build()
	second := build()

	if !reflect.DeepEqual(first.Classes, second.Classes) {
		t.Error("class maps differ across identical rebuilds")
	}
	if !reflect.DeepEqual(first.Settings, second.Settings) {
		t.Error("settings differ across identical rebuilds")
	}
}
