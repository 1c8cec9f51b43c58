package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// status is the internal result of a single grammar production.
//
// Productions compose by returning early on anything above statusFailure;
// statusFailure itself means "this optional production did not match" and is
// recoverable by the caller. Only the document loop decides whether a
// non-success status aborts the read.
type status int

const (
	statusSuccess   status = iota
	statusFailure          // non-fatal, no match
	statusBadSyntax        // invalid syntax
	statusBadCURIE         // invalid CURIE or unknown namespace prefix
	statusBadLabel         // clashing blank node label
	statusOverflow         // node stack exhausted
	statusNoData           // unexpected end of input
	statusBadCall          // invalid API call
	statusInternal         // unexpected internal error
)

// fatal reports whether a status can never be tolerated, regardless of the
// strict/lax policy. Continuing after these would corrupt reader state or
// spin on a dead source.
func (s status) fatal() bool {
	return s == statusOverflow || s == statusNoData || s == statusInternal
}

func (s status) String() string {
	switch s {
	case statusSuccess:
		return "success"
	case statusFailure:
		return "failure"
	case statusBadSyntax:
		return "bad syntax"
	case statusBadCURIE:
		return "bad CURIE"
	case statusBadLabel:
		return "bad blank node label"
	case statusOverflow:
		return "node stack overflow"
	case statusNoData:
		return "unexpected end of input"
	case statusBadCall:
		return "invalid call"
	case statusInternal:
		return "internal error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

var (
	// ErrBadSyntax indicates malformed input for the configured syntax.
	ErrBadSyntax = errors.New("rdf: invalid syntax")
	// ErrBadCURIE indicates a prefixed name with an undefined namespace prefix.
	ErrBadCURIE = errors.New("rdf: undefined namespace prefix")
	// ErrBadLabel indicates clashing blank node labels in one document.
	ErrBadLabel = errors.New("rdf: clashing blank node label")
	// ErrOverflow indicates the reader's node stack capacity was exhausted.
	ErrOverflow = errors.New("rdf: node stack overflow")
	// ErrNoData indicates the input ended in the middle of a statement.
	ErrNoData = errors.New("rdf: unexpected end of input")
	// ErrBadCall indicates an API misuse, such as reading before Start.
	ErrBadCall = errors.New("rdf: invalid call")
	// ErrInternal indicates an unexpected internal failure, such as a
	// backend stream error.
	ErrInternal = errors.New("rdf: internal error")
)

// err maps a status to its sentinel error, or nil for success and the
// internal no-match failure.
func (s status) err() error {
	switch s {
	case statusSuccess, statusFailure:
		return nil
	case statusBadSyntax:
		return ErrBadSyntax
	case statusBadCURIE:
		return ErrBadCURIE
	case statusBadLabel:
		return ErrBadLabel
	case statusOverflow:
		return ErrOverflow
	case statusNoData:
		return ErrNoData
	case statusBadCall:
		return ErrBadCall
	}
	return ErrInternal
}

// SyntaxError provides structured context for parse failures.
type SyntaxError struct {
	Caret Caret  // position of the failure
	Msg   string // human-readable description
	Err   error  // sentinel error for the status class
}

func (e *SyntaxError) Error() string {
	var msg strings.Builder
	if e.Caret.Name != "" {
		msg.WriteString(e.Caret.Name)
		fmt.Fprintf(&msg, ":%d:%d: ", e.Caret.Line, e.Caret.Col)
	}
	msg.WriteString(e.Msg)
	return msg.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }
