package rdf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fiware-community/figo/semantics/rdf"
)

func parseTurtle(t *testing.T, content string) []rdf.Triple {
	t.Helper()
	triples, err := rdf.NewTurtleParser().Parse("test", []byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return triples
}

func TestTurtleBasicStatement(t *testing.T) {
	triples := parseTurtle(t, `
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:Dog rdfs:subClassOf ex:Animal .
`)

	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	tr := triples[0]
	if tr.Subject.Value != "http://example.org/Dog" {
		t.Errorf("unexpected subject: %s", tr.Subject.Value)
	}
	if tr.Predicate.Value != rdf.RdfsSubClassOf {
		t.Errorf("unexpected predicate: %s", tr.Predicate.Value)
	}
	if tr.Object.Value != "http://example.org/Animal" {
		t.Errorf("unexpected object: %s", tr.Object.Value)
	}
}

func TestTurtleAKeyword(t *testing.T) {
	triples := parseTurtle(t, `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

ex:Animal a owl:Class .
`)

	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].Predicate.Value != rdf.RdfType {
		t.Errorf("'a' should expand to rdf:type, got %s", triples[0].Predicate.Value)
	}
	if triples[0].Object.Value != rdf.OwlClass {
		t.Errorf("unexpected object: %s", triples[0].Object.Value)
	}
}

func TestTurtlePredicateObjectLists(t *testing.T) {
	triples := parseTurtle(t, `
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

ex:Dog a owl:Class ;
    rdfs:subClassOf ex:Animal , ex:Pet ;
    rdfs:label "Dog" .
`)

	if len(triples) != 4 {
		t.Fatalf("expected 4 triples, got %d", len(triples))
	}
	for _, tr := range triples {
		if tr.Subject.Value != "http://example.org/Dog" {
			t.Errorf("all triples should share the subject, got %s", tr.Subject.Value)
		}
	}
	if triples[1].Object.Value != "http://example.org/Animal" || triples[2].Object.Value != "http://example.org/Pet" {
		t.Errorf("comma object list not expanded: %v %v", triples[1].Object, triples[2].Object)
	}
}

func TestTurtleLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    string
		datatype string
		lang     string
	}{
		{
			name:  "plain",
			input: `ex:s ex:p "hello" .`,
			value: "hello",
		},
		{
			name:     "typed",
			input:    `ex:s ex:p "42"^^xsd:integer .`,
			value:    "42",
			datatype: rdf.XsdInteger,
		},
		{
			name:  "lang tagged",
			input: `ex:s ex:p "Hund"@de .`,
			value: "Hund",
			lang:  "de",
		},
		{
			name:     "integer shorthand",
			input:    `ex:s ex:p 42 .`,
			value:    "42",
			datatype: rdf.XsdInteger,
		},
		{
			name:     "decimal shorthand",
			input:    `ex:s ex:p 3.14 .`,
			value:    "3.14",
			datatype: rdf.XsdDecimal,
		},
		{
			name:     "boolean shorthand",
			input:    `ex:s ex:p true .`,
			value:    "true",
			datatype: rdf.XsdBoolean,
		},
		{
			name:  "escapes",
			input: `ex:s ex:p "line1\nline2\t\"quoted\"" .`,
			value: "line1\nline2\t\"quoted\"",
		},
	}

	prelude := "@prefix ex: <http://example.org/> .\n@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triples := parseTurtle(t, prelude+tt.input)
			if len(triples) != 1 {
				t.Fatalf("expected 1 triple, got %d", len(triples))
			}
			obj := triples[0].Object
			if !obj.IsLiteral() {
				t.Fatalf("expected literal object, got %v", obj.Kind)
			}
			if obj.Value != tt.value {
				t.Errorf("value: got %q, want %q", obj.Value, tt.value)
			}
			if obj.Datatype != tt.datatype {
				t.Errorf("datatype: got %q, want %q", obj.Datatype, tt.datatype)
			}
			if obj.Lang != tt.lang {
				t.Errorf("lang: got %q, want %q", obj.Lang, tt.lang)
			}
		})
	}
}

func TestTurtleCommentsAndBase(t *testing.T) {
	triples := parseTurtle(t, `
# ontology header
@base <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

<Animal> a owl:Class . # trailing comment
`)

	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].Subject.Value != "http://example.org/Animal" {
		t.Errorf("base not applied: %s", triples[0].Subject.Value)
	}
}

func TestTurtleBlankNodes(t *testing.T) {
	triples := parseTurtle(t, `
@prefix ex: <http://example.org/> .

_:b1 ex:p ex:o .
ex:s ex:q _:b1 .
`)

	if len(triples) != 2 {
		t.Fatalf("expected 2 triples, got %d", len(triples))
	}
	if triples[0].Subject.Kind != rdf.TermBlank || triples[0].Subject.Value != "b1" {
		t.Errorf("unexpected blank subject: %v", triples[0].Subject)
	}
	if triples[1].Object.Kind != rdf.TermBlank {
		t.Errorf("unexpected object kind: %v", triples[1].Object.Kind)
	}
}

func TestTurtleSparqlStyleDirectives(t *testing.T) {
	triples := parseTurtle(t, `
PREFIX ex: <http://example.org/>
PREFIX owl: <http://www.w3.org/2002/07/owl#>

ex:Animal a owl:Class .
`)

	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
}

func TestTurtleSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "unterminated iri",
			input:   `<http://example.org/Animal ex:p ex:o .`,
			wantMsg: "unterminated IRI",
		},
		{
			name:    "undeclared prefix",
			input:   `ex:Animal ex:p ex:o .`,
			wantMsg: "undeclared prefix",
		},
		{
			name:    "unterminated literal",
			input:   "@prefix ex: <http://example.org/> .\nex:s ex:p \"oops .",
			wantMsg: "unterminated string literal",
		},
		{
			name:    "collection",
			input:   "@prefix ex: <http://example.org/> .\nex:s ex:p (ex:a ex:b) .",
			wantMsg: "collections are not supported",
		},
		{
			name:    "missing dot",
			input:   "@prefix ex: <http://example.org/> .\nex:s ex:p ex:o",
			wantMsg: "expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rdf.NewTurtleParser().Parse("bad", []byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var synErr *rdf.SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if synErr.Source != "bad" {
				t.Errorf("error should carry source name, got %q", synErr.Source)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTurtleErrorLineNumbers(t *testing.T) {
	input := "@prefix ex: <http://example.org/> .\n\nex:s ex:p [ ex:q ex:o ] .\n"
	_, err := rdf.NewTurtleParser().Parse("bad", []byte(input))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var synErr *rdf.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if synErr.Line != 3 {
		t.Errorf("expected line 3, got %d", synErr.Line)
	}
}

func TestTurtleStability(t *testing.T) {
	input := `
@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .

ex:Animal a owl:Class .
ex:Dog a owl:Class ; ex:name "Dog" .
`
	first := parseTurtle(t, input)
	for i := 0; i < 5; i++ {
		again := parseTurtle(t, input)
		if len(again) != len(first) {
			t.Fatalf("unstable triple count: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].String() != first[j].String() {
				t.Fatalf("unstable output at %d: %s vs %s", j, again[j], first[j])
			}
		}
	}
}
