package rdf

import "strings"

// NTriplesParser parses N-Triples documents into triples.
//
// N-Triples is handled as a restriction of the Turtle grammar: the same
// scanner is used, but prefix and base directives are rejected, and prefixed
// names fail naturally because no prefixes are ever declared.
type NTriplesParser struct{}

// NewNTriplesParser creates a new N-Triples parser.
func NewNTriplesParser() *NTriplesParser {
	return &NTriplesParser{}
}

// Format returns the primary format name for this parser.
func (p *NTriplesParser) Format() string {
	return FormatNTriples
}

// CanParse returns true if this parser handles the given format name.
func (p *NTriplesParser) CanParse(format string) bool {
	switch strings.ToLower(format) {
	case FormatNTriples, "nt", "application/n-triples":
		return true
	default:
		return false
	}
}

// Parse parses an N-Triples document and returns its triples in document
// order.
func (p *NTriplesParser) Parse(sourceName string, content []byte) ([]Triple, error) {
	sc := &turtleScan{
		source:   sourceName,
		input:    []rune(string(content)),
		line:     1,
		prefixes: make(map[string]string),
	}

	var triples []Triple
	for {
		tok, err := sc.peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			return triples, nil
		case tokPrefixDirective, tokBaseDirective:
			return nil, syntaxErrorf(sourceName, tok.line, "directives are not allowed in N-Triples")
		default:
			stmt, err := sc.parseTriples()
			if err != nil {
				return nil, err
			}
			triples = append(triples, stmt...)
		}
	}
}
