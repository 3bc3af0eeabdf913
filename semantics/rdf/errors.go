package rdf

import "fmt"

// SyntaxError reports malformed content in an ontology source document.
type SyntaxError struct {
	// Source is the name of the document being parsed.
	Source string

	// Line is the 1-based line where the error was detected.
	Line int

	// Msg describes the offending construct.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rdf: source %q line %d: %s", e.Source, e.Line, e.Msg)
}

// syntaxErrorf builds a SyntaxError for the given source position.
func syntaxErrorf(source string, line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Source: source,
		Line:   line,
		Msg:    fmt.Sprintf(format, args...),
	}
}
