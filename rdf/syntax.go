package rdf

import "strings"

// Syntax identifies the supported RDF syntaxes. The set is closed: shared
// productions are parameterized by the small policy differences between
// syntaxes rather than dispatching dynamically.
type Syntax string

const (
	// Turtle is the abbreviating triple syntax.
	Turtle Syntax = "turtle"
	// TriG is the abbreviating quad syntax, a superset of Turtle.
	TriG Syntax = "trig"
	// NTriples is the line-based, non-abbreviating triple syntax.
	NTriples Syntax = "ntriples"
	// NQuads is the line-based, non-abbreviating quad syntax.
	NQuads Syntax = "nquads"
)

// ParseSyntax normalizes a syntax name, accepting the usual file extension
// abbreviations.
func ParseSyntax(value string) (Syntax, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return Turtle, true
	case "trig":
		return TriG, true
	case "ntriples", "nt":
		return NTriples, true
	case "nquads", "nq":
		return NQuads, true
	default:
		return "", false
	}
}

// SyntaxForPath guesses a syntax from a file extension.
func SyntaxForPath(path string) (Syntax, bool) {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return "", false
	}
	return ParseSyntax(path[dot+1:])
}

// abbreviates reports whether the syntax supports directives, prefixed
// names, collections and anonymous nodes.
func (s Syntax) abbreviates() bool {
	return s == Turtle || s == TriG
}

// hasGraphs reports whether the syntax can name graphs.
func (s Syntax) hasGraphs() bool {
	return s == TriG || s == NQuads
}
