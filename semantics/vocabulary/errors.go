package vocabulary

import (
	"fmt"
	"strings"
)

// ParseErrorKind distinguishes syntax failures from cross-source conflicts.
type ParseErrorKind string

// Parse error kinds.
const (
	// ParseErrorSyntax marks malformed ontology content.
	ParseErrorSyntax ParseErrorKind = "syntax"

	// ParseErrorConflict marks contradictory facts about one IRI across
	// sources.
	ParseErrorConflict ParseErrorKind = "conflict"
)

// ParseError reports a failure while parsing a source into a vocabulary.
type ParseError struct {
	// Kind classifies the failure.
	Kind ParseErrorKind

	// Source is the name of the source being parsed when the error arose.
	Source string

	// IRI identifies the element involved in a conflict, empty for syntax
	// errors.
	IRI string

	// Msg describes the failure.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vocabulary: %s error in source %q", e.Kind, e.Source)
	if e.IRI != "" {
		fmt.Fprintf(&sb, " for <%s>", e.IRI)
	}
	if e.Msg != "" {
		sb.WriteString(": " + e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// ProcessingError reports a failure while computing derived closures during
// post-processing.
type ProcessingError struct {
	// Msg describes the failure.
	Msg string

	// CycleIRIs lists the members of an unresolvable hierarchy cycle, when
	// that is the cause.
	CycleIRIs []string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if len(e.CycleIRIs) > 0 {
		return fmt.Sprintf("vocabulary: %s: cycle through %s", e.Msg, strings.Join(e.CycleIRIs, " -> "))
	}
	return "vocabulary: " + e.Msg
}

// ParsingError is the single externally visible error for a failed
// vocabulary addition. The original cause remains inspectable through
// errors.As and errors.Is.
type ParsingError struct {
	Err error
}

// Error implements the error interface.
func (e *ParsingError) Error() string {
	return "vocabulary: ontology merge failed: " + e.Err.Error()
}

// Unwrap returns the wrapped cause.
func (e *ParsingError) Unwrap() error { return e.Err }
