package rdf

import (
	"strings"
	"unicode"
)

// TurtleParser parses Turtle documents into triples.
type TurtleParser struct{}

// NewTurtleParser creates a new Turtle parser.
func NewTurtleParser() *TurtleParser {
	return &TurtleParser{}
}

// Format returns the primary format name for this parser.
func (p *TurtleParser) Format() string {
	return FormatTurtle
}

// CanParse returns true if this parser handles the given format name.
func (p *TurtleParser) CanParse(format string) bool {
	switch strings.ToLower(format) {
	case FormatTurtle, "ttl", "text/turtle":
		return true
	default:
		return false
	}
}

// Parse parses a Turtle document and returns its triples in document order.
func (p *TurtleParser) Parse(sourceName string, content []byte) ([]Triple, error) {
	tp := &turtleScan{
		source:   sourceName,
		input:    []rune(string(content)),
		line:     1,
		prefixes: make(map[string]string),
	}
	return tp.parseDocument()
}

// token kinds produced by the scanner.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef
	tokPName
	tokBlankNode
	tokLiteral
	tokA
	tokPrefixDirective
	tokBaseDirective
	tokDot
	tokSemicolon
	tokComma
)

// token is one lexical unit of a Turtle document.
type token struct {
	kind tokenKind
	val  string
	// dtRaw is the raw datatype annotation of a literal, either "<iri>" or a
	// prefixed name, empty when absent.
	dtRaw string
	lang  string
	line  int
}

// turtleScan holds scanner and parser state for one document.
type turtleScan struct {
	source   string
	input    []rune
	pos      int
	line     int
	base     string
	prefixes map[string]string

	peeked *token
}

// parseDocument is the top-level production: a sequence of directives and
// triple statements.
func (p *turtleScan) parseDocument() ([]Triple, error) {
	var triples []Triple
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			return triples, nil
		case tokPrefixDirective:
			if err := p.parsePrefixDirective(); err != nil {
				return nil, err
			}
		case tokBaseDirective:
			if err := p.parseBaseDirective(); err != nil {
				return nil, err
			}
		default:
			stmt, err := p.parseTriples()
			if err != nil {
				return nil, err
			}
			triples = append(triples, stmt...)
		}
	}
}

// parsePrefixDirective handles "@prefix p: <iri> ." and "PREFIX p: <iri>".
func (p *turtleScan) parsePrefixDirective() error {
	dir, err := p.next()
	if err != nil {
		return err
	}
	sparqlStyle := dir.val == "PREFIX"

	name, err := p.next()
	if err != nil {
		return err
	}
	if name.kind != tokPName || !strings.HasSuffix(name.val, ":") {
		return syntaxErrorf(p.source, name.line, "expected prefix name ending in ':', got %q", name.val)
	}
	prefix := strings.TrimSuffix(name.val, ":")

	iri, err := p.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRIRef {
		return syntaxErrorf(p.source, iri.line, "expected IRI in prefix directive, got %q", iri.val)
	}
	p.prefixes[prefix] = p.resolveIRI(iri.val)

	// The "@prefix" form is terminated by a dot, the SPARQL form is not.
	if !sparqlStyle {
		dot, err := p.next()
		if err != nil {
			return err
		}
		if dot.kind != tokDot {
			return syntaxErrorf(p.source, dot.line, "expected '.' after prefix directive")
		}
	}
	return nil
}

// parseBaseDirective handles "@base <iri> ." and "BASE <iri>".
func (p *turtleScan) parseBaseDirective() error {
	dir, err := p.next()
	if err != nil {
		return err
	}
	sparqlStyle := dir.val == "BASE"

	iri, err := p.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRIRef {
		return syntaxErrorf(p.source, iri.line, "expected IRI in base directive, got %q", iri.val)
	}
	p.base = iri.val

	if !sparqlStyle {
		dot, err := p.next()
		if err != nil {
			return err
		}
		if dot.kind != tokDot {
			return syntaxErrorf(p.source, dot.line, "expected '.' after base directive")
		}
	}
	return nil
}

// parseTriples handles one statement: subject predicateObjectList '.'
func (p *turtleScan) parseTriples() ([]Triple, error) {
	subjTok, err := p.next()
	if err != nil {
		return nil, err
	}
	subject, err := p.termFromToken(subjTok, false)
	if err != nil {
		return nil, err
	}

	var triples []Triple
	for {
		predTok, err := p.next()
		if err != nil {
			return nil, err
		}
		var predicate Term
		switch predTok.kind {
		case tokA:
			predicate = IRI(RdfType)
		case tokIRIRef, tokPName:
			predicate, err = p.termFromToken(predTok, false)
			if err != nil {
				return nil, err
			}
		default:
			return nil, syntaxErrorf(p.source, predTok.line, "expected predicate, got %q", predTok.val)
		}

		// objectList: object (',' object)*
		for {
			objTok, err := p.next()
			if err != nil {
				return nil, err
			}
			object, err := p.termFromToken(objTok, true)
			if err != nil {
				return nil, err
			}
			triples = append(triples, Triple{
				Subject:   subject,
				Predicate: predicate,
				Object:    object,
				Line:      objTok.line,
			})

			sep, err := p.peek()
			if err != nil {
				return nil, err
			}
			if sep.kind != tokComma {
				break
			}
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		switch sep.kind {
		case tokDot:
			return triples, nil
		case tokSemicolon:
			// A trailing semicolon before the dot is allowed.
			after, err := p.peek()
			if err != nil {
				return nil, err
			}
			if after.kind == tokDot {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				return triples, nil
			}
		default:
			return nil, syntaxErrorf(p.source, sep.line, "expected '.', ';' or ',' after object, got %q", sep.val)
		}
	}
}

// termFromToken converts a scanned token into an RDF term, resolving
// prefixed names and relative IRIs. Literals are only valid in object
// position.
func (p *turtleScan) termFromToken(tok token, objectPosition bool) (Term, error) {
	switch tok.kind {
	case tokIRIRef:
		return IRI(p.resolveIRI(tok.val)), nil
	case tokPName:
		iri, err := p.expandPName(tok)
		if err != nil {
			return Term{}, err
		}
		return IRI(iri), nil
	case tokBlankNode:
		return Blank(tok.val), nil
	case tokLiteral:
		if !objectPosition {
			return Term{}, syntaxErrorf(p.source, tok.line, "literal %q not allowed here", tok.val)
		}
		term := Term{Kind: TermLiteral, Value: tok.val, Lang: tok.lang}
		if tok.dtRaw != "" {
			dt, err := p.resolveRawIRI(tok.dtRaw, tok.line)
			if err != nil {
				return Term{}, err
			}
			term.Datatype = dt
		}
		return term, nil
	default:
		return Term{}, syntaxErrorf(p.source, tok.line, "unexpected token %q", tok.val)
	}
}

// expandPName resolves a prefixed name against the declared prefixes.
func (p *turtleScan) expandPName(tok token) (string, error) {
	idx := strings.Index(tok.val, ":")
	if idx < 0 {
		return "", syntaxErrorf(p.source, tok.line, "expected ':' in prefixed name %q", tok.val)
	}
	prefix := tok.val[:idx]
	local := tok.val[idx+1:]
	ns, ok := p.prefixes[prefix]
	if !ok {
		return "", syntaxErrorf(p.source, tok.line, "undeclared prefix %q in %q", prefix, tok.val)
	}
	return ns + local, nil
}

// resolveRawIRI resolves a raw datatype annotation, either "<iri>" or a
// prefixed name.
func (p *turtleScan) resolveRawIRI(raw string, line int) (string, error) {
	if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
		return p.resolveIRI(raw[1 : len(raw)-1]), nil
	}
	return p.expandPName(token{kind: tokPName, val: raw, line: line})
}

// resolveIRI resolves a possibly relative IRI reference against the base.
// Only simple concatenation is performed; ontology documents in practice
// use either absolute IRIs or fragment-style relative references.
func (p *turtleScan) resolveIRI(iri string) string {
	if p.base == "" || strings.Contains(iri, ":") {
		return iri
	}
	return p.base + iri
}

// peek returns the next token without consuming it.
func (p *turtleScan) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.scan()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

// next consumes and returns the next token.
func (p *turtleScan) next() (token, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	return p.scan()
}

// scan produces the next token from the input.
func (p *turtleScan) scan() (token, error) {
	p.skipWhitespaceAndComments()
	if p.pos >= len(p.input) {
		return token{kind: tokEOF, line: p.line}, nil
	}

	start := p.line
	ch := p.input[p.pos]
	switch {
	case ch == '.':
		p.pos++
		return token{kind: tokDot, val: ".", line: start}, nil
	case ch == ';':
		p.pos++
		return token{kind: tokSemicolon, val: ";", line: start}, nil
	case ch == ',':
		p.pos++
		return token{kind: tokComma, val: ",", line: start}, nil
	case ch == '<':
		return p.scanIRIRef()
	case ch == '"':
		return p.scanLiteral()
	case ch == '\'':
		return token{}, syntaxErrorf(p.source, start, "single-quoted literals are not supported")
	case ch == '[' || ch == ']':
		return token{}, syntaxErrorf(p.source, start, "anonymous blank node property lists are not supported")
	case ch == '(' || ch == ')':
		return token{}, syntaxErrorf(p.source, start, "RDF collections are not supported")
	case ch == '_':
		return p.scanBlankNode()
	case ch == '@':
		return p.scanAtDirective()
	case unicode.IsDigit(ch) || ch == '+' || ch == '-':
		return p.scanNumber()
	default:
		return p.scanWord()
	}
}

// skipWhitespaceAndComments advances past whitespace and '#' comments,
// tracking line numbers.
func (p *turtleScan) skipWhitespaceAndComments() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == '\n':
			p.line++
			p.pos++
		case unicode.IsSpace(ch):
			p.pos++
		case ch == '#':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// scanIRIRef scans "<...>".
func (p *turtleScan) scanIRIRef() (token, error) {
	start := p.line
	p.pos++ // consume '<'
	var sb strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == '>' {
			p.pos++
			return token{kind: tokIRIRef, val: sb.String(), line: start}, nil
		}
		if ch == '\n' {
			return token{}, syntaxErrorf(p.source, start, "unterminated IRI reference")
		}
		sb.WriteRune(ch)
		p.pos++
	}
	return token{}, syntaxErrorf(p.source, start, "unterminated IRI reference")
}

// scanLiteral scans a double-quoted literal with optional datatype or
// language tag.
func (p *turtleScan) scanLiteral() (token, error) {
	start := p.line
	p.pos++ // consume opening quote

	if p.pos+1 < len(p.input) && p.input[p.pos] == '"' && p.input[p.pos+1] == '"' {
		return token{}, syntaxErrorf(p.source, start, "triple-quoted literals are not supported")
	}

	var sb strings.Builder
	for {
		if p.pos >= len(p.input) {
			return token{}, syntaxErrorf(p.source, start, "unterminated string literal")
		}
		ch := p.input[p.pos]
		if ch == '\n' {
			return token{}, syntaxErrorf(p.source, start, "unterminated string literal")
		}
		if ch == '"' {
			p.pos++
			break
		}
		if ch == '\\' {
			p.pos++
			if p.pos >= len(p.input) {
				return token{}, syntaxErrorf(p.source, start, "unterminated escape sequence")
			}
			esc := p.input[p.pos]
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				return token{}, syntaxErrorf(p.source, start, "unsupported escape sequence \\%c", esc)
			}
			p.pos++
			continue
		}
		sb.WriteRune(ch)
		p.pos++
	}

	tok := token{kind: tokLiteral, val: sb.String(), line: start}

	// Optional datatype annotation.
	if p.pos+1 < len(p.input) && p.input[p.pos] == '^' && p.input[p.pos+1] == '^' {
		p.pos += 2
		dt, err := p.scan()
		if err != nil {
			return token{}, err
		}
		switch dt.kind {
		case tokIRIRef:
			tok.dtRaw = "<" + dt.val + ">"
		case tokPName:
			tok.dtRaw = dt.val
		default:
			return token{}, syntaxErrorf(p.source, dt.line, "expected datatype after '^^', got %q", dt.val)
		}
		return tok, nil
	}

	// Optional language tag.
	if p.pos < len(p.input) && p.input[p.pos] == '@' {
		p.pos++
		var lang strings.Builder
		for p.pos < len(p.input) {
			ch := p.input[p.pos]
			if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' {
				lang.WriteRune(ch)
				p.pos++
				continue
			}
			break
		}
		if lang.Len() == 0 {
			return token{}, syntaxErrorf(p.source, start, "empty language tag")
		}
		tok.lang = lang.String()
	}

	return tok, nil
}

// scanBlankNode scans "_:label".
func (p *turtleScan) scanBlankNode() (token, error) {
	start := p.line
	if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
		return token{}, syntaxErrorf(p.source, start, "expected ':' after '_' in blank node label")
	}
	p.pos += 2
	var sb strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' {
			sb.WriteRune(ch)
			p.pos++
			continue
		}
		break
	}
	if sb.Len() == 0 {
		return token{}, syntaxErrorf(p.source, start, "empty blank node label")
	}
	return token{kind: tokBlankNode, val: sb.String(), line: start}, nil
}

// scanAtDirective scans "@prefix" or "@base".
func (p *turtleScan) scanAtDirective() (token, error) {
	start := p.line
	p.pos++ // consume '@'
	var sb strings.Builder
	for p.pos < len(p.input) && unicode.IsLetter(p.input[p.pos]) {
		sb.WriteRune(p.input[p.pos])
		p.pos++
	}
	switch sb.String() {
	case "prefix":
		return token{kind: tokPrefixDirective, val: "@prefix", line: start}, nil
	case "base":
		return token{kind: tokBaseDirective, val: "@base", line: start}, nil
	default:
		return token{}, syntaxErrorf(p.source, start, "unknown directive @%s", sb.String())
	}
}

// scanNumber scans an integer or decimal shorthand literal.
func (p *turtleScan) scanNumber() (token, error) {
	start := p.line
	var sb strings.Builder
	if p.input[p.pos] == '+' || p.input[p.pos] == '-' {
		sb.WriteRune(p.input[p.pos])
		p.pos++
	}
	digits := 0
	decimal := false
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if unicode.IsDigit(ch) {
			digits++
			sb.WriteRune(ch)
			p.pos++
			continue
		}
		// A dot is part of the number only when followed by a digit,
		// otherwise it terminates the statement.
		if ch == '.' && !decimal && p.pos+1 < len(p.input) && unicode.IsDigit(p.input[p.pos+1]) {
			decimal = true
			sb.WriteRune(ch)
			p.pos++
			continue
		}
		break
	}
	if digits == 0 {
		return token{}, syntaxErrorf(p.source, start, "malformed numeric literal %q", sb.String())
	}
	dt := "<" + XsdInteger + ">"
	if decimal {
		dt = "<" + XsdDecimal + ">"
	}
	return token{kind: tokLiteral, val: sb.String(), dtRaw: dt, line: start}, nil
}

// scanWord scans a prefixed name, the "a" keyword, a boolean shorthand, or
// a SPARQL-style directive keyword.
func (p *turtleScan) scanWord() (token, error) {
	start := p.line
	var sb strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' || ch == ':' {
			sb.WriteRune(ch)
			p.pos++
			continue
		}
		// A dot inside a prefixed name local part is only consumed when
		// followed by another name character.
		if ch == '.' && p.pos+1 < len(p.input) && isPNameChar(p.input[p.pos+1]) && strings.Contains(sb.String(), ":") {
			sb.WriteRune(ch)
			p.pos++
			continue
		}
		break
	}
	word := sb.String()
	if word == "" {
		return token{}, syntaxErrorf(p.source, start, "unexpected character %q", string(p.input[p.pos]))
	}

	switch word {
	case "a":
		return token{kind: tokA, val: "a", line: start}, nil
	case "true", "false":
		return token{kind: tokLiteral, val: word, dtRaw: "<" + XsdBoolean + ">", line: start}, nil
	case "PREFIX", "prefix":
		return token{kind: tokPrefixDirective, val: "PREFIX", line: start}, nil
	case "BASE", "base":
		return token{kind: tokBaseDirective, val: "BASE", line: start}, nil
	}

	if !strings.Contains(word, ":") {
		return token{}, syntaxErrorf(p.source, start, "unexpected token %q", word)
	}
	return token{kind: tokPName, val: word, line: start}, nil
}

// isPNameChar reports whether a rune may appear inside a prefixed name.
func isPNameChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-'
}
