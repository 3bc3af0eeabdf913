package export

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fiware-community/figo/semantics/vocabulary"
)

const testOntology = `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ex:Animal a owl:Class ;
          rdfs:label "Animal" .
ex:Dog rdfs:subClassOf ex:Animal .
ex:owns a owl:ObjectProperty ;
        rdfs:domain ex:Person ;
        rdfs:range ex:Dog .
ex:age a owl:DatatypeProperty ;
       rdfs:range xsd:integer .
ex:rex a ex:Dog .
`

func buildTestVocabulary(t *testing.T) *vocabulary.Vocabulary {
	t.Helper()
	c := vocabulary.NewConfigurator()
	voc, err := c.AddOntologyFromString(c.CreateVocabulary(), "test", testOntology)
	if err != nil {
		t.Fatal(err)
	}
	return voc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"turtle", FormatTurtle, false},
		{"ttl", FormatTurtle, false},
		{"N-Triples", FormatNTriples, false},
		{"jsonld", FormatJSONLD, false},
		{"rdfxml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestExportNTriples(t *testing.T) {
	voc := buildTestVocabulary(t)
	out, err := NewRDFExporter(voc).Export(FormatNTriples)
	if err != nil {
		t.Fatal(err)
	}

	wantLines := []string{
		`<http://example.org/Animal> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .`,
		`<http://example.org/Dog> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/Animal> .`,
		`<http://example.org/Animal> <http://www.w3.org/2000/01/rdf-schema#label> "Animal" .`,
		`<http://example.org/owns> <http://www.w3.org/2000/01/rdf-schema#domain> <http://example.org/Person> .`,
		`<http://example.org/age> <http://www.w3.org/2000/01/rdf-schema#range> <http://www.w3.org/2001/XMLSchema#integer> .`,
		`<http://example.org/rex> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Dog> .`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("output missing line:\n%s", line)
		}
	}
}

func TestExportTurtle(t *testing.T) {
	voc := buildTestVocabulary(t)
	out, err := NewRDFExporter(voc).Export(FormatTurtle)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "@prefix owl: <http://www.w3.org/2002/07/owl#> .") {
		t.Error("missing owl prefix declaration")
	}
	if !strings.Contains(out, "a owl:Class") {
		t.Error("type assertions should use the a keyword and prefixed names")
	}
	if !strings.Contains(out, "xsd:integer") {
		t.Error("XSD datatypes should be compacted")
	}
}

func TestExportTurtleRoundTrip(t *testing.T) {
	voc := buildTestVocabulary(t)
	out, err := NewRDFExporter(voc).Export(FormatTurtle)
	if err != nil {
		t.Fatal(err)
	}

	c := vocabulary.NewConfigurator()
	reparsed, err := c.AddOntologyFromString(c.CreateVocabulary(), "reparsed", out)
	if err != nil {
		t.Fatalf("exported turtle does not parse back: %v", err)
	}

	if !reflect.DeepEqual(voc.ClassIRIs(), reparsed.ClassIRIs()) {
		t.Errorf("classes differ after round trip: %v vs %v", voc.ClassIRIs(), reparsed.ClassIRIs())
	}
	if !reflect.DeepEqual(voc.ElementIRIs(), reparsed.ElementIRIs()) {
		t.Errorf("elements differ after round trip: %v vs %v", voc.ElementIRIs(), reparsed.ElementIRIs())
	}

	dog := reparsed.Classes["http://example.org/Dog"]
	if !reflect.DeepEqual(dog.ParentClassIRIs, []string{"http://example.org/Animal"}) {
		t.Errorf("Dog parents lost in round trip: %v", dog.ParentClassIRIs)
	}
}

func TestExportHonorsSettings(t *testing.T) {
	voc := buildTestVocabulary(t)
	voc.SetSettings("http://example.org/Animal", vocabulary.Settings{Included: false})

	out, err := NewRDFExporter(voc).Export(FormatNTriples)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<http://example.org/Animal> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type>") {
		t.Error("disabled element should be skipped")
	}

	// WithDisabledElements overrides the filter.
	out, err = NewRDFExporter(voc, WithDisabledElements()).Export(FormatNTriples)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<http://example.org/Animal>") {
		t.Error("WithDisabledElements should export everything")
	}
}

func TestExportJSONLD(t *testing.T) {
	voc := buildTestVocabulary(t)
	out, err := NewRDFExporter(voc).Export(FormatJSONLD)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"@context"`,
		`"@graph"`,
		`"@id": "http://example.org/Dog"`,
		`"http://www.w3.org/2002/07/owl#Class"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("json-ld output missing %s", want)
		}
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	voc := buildTestVocabulary(t)
	if _, err := NewRDFExporter(voc).Export(Format("rdfxml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
