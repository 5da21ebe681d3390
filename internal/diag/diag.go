// Package diag is the diagnostic sink shared by the builder and the
// analyzer. Diagnostics are recorded and flushed immediately; nothing
// here buffers until end of compilation.
package diag

import (
	"fmt"
	"io"
)

// Kind classifies a diagnostic by the rule that produced it.
type Kind string

const (
	// Parser-produced kinds.
	Expected          Kind = "expected"
	UndefinedSymbol   Kind = "undefinedSymbol"
	IllegalBreak      Kind = "illegalBreak"
	IdentOutsideDecl  Kind = "identOutsideDecl"
	DuplicateSymbol   Kind = "duplicateSymbol"

	// Analyzer-produced kinds.
	ExpectedType     Kind = "expectedType"
	OperatorRequires Kind = "operatorRequires"
	TypeMismatch     Kind = "typeMismatch"
	DegreeMismatch   Kind = "degreeMismatch"
	ParamMismatch    Kind = "paramMismatch"
	MissingMember    Kind = "missingMember"
	NotLValue        Kind = "notLValue"

	// Optional, non-error diagnostics.
	ValueDiscarded Kind = "valueDiscarded"
)

// IsWarning reports whether k never contributes to the error count.
func IsWarning(k Kind) bool {
	return k == ValueDiscarded
}

// Error is a single located diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Col     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("error(%d:%d): %s.", e.Line, e.Col, e.Message)
}

// Sink accumulates diagnostics and writes each one to an underlying
// writer as soon as it is recorded.
type Sink struct {
	w       io.Writer
	errors  []*Error
	warns   []*Error
}

// NewSink creates a Sink that writes formatted diagnostics to w as
// they are recorded. w may be nil to accumulate without writing.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Report records a diagnostic and, if a writer was configured, writes
// it immediately.
func (s *Sink) Report(kind Kind, line, col int, format string, args ...any) {
	e := &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Col: col}
	if IsWarning(kind) {
		s.warns = append(s.warns, e)
	} else {
		s.errors = append(s.errors, e)
	}
	if s.w != nil {
		fmt.Fprintln(s.w, e.Error())
	}
}

// Count returns the number of error-level diagnostics recorded so
// far. Warnings are written to the same writer in the same format but
// are not counted here.
func (s *Sink) Count() int {
	return len(s.errors)
}

// Errors returns the recorded error-level diagnostics.
func (s *Sink) Errors() []*Error {
	return s.errors
}

// Warnings returns the recorded warning-level diagnostics.
func (s *Sink) Warnings() []*Error {
	return s.warns
}
