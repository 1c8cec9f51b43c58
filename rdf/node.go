package rdf

import "fmt"

// NodeType identifies the kind of a parsed node.
type NodeType uint8

const (
	// NodeLiteral is a literal with optional datatype or language.
	NodeLiteral NodeType = iota
	// NodeURI is a URI (or IRI) reference.
	NodeURI
	// NodeBlank is a blank node with document-local identity.
	NodeBlank
	// NodeVariable is a ?name or $name variable, an extension used for
	// pattern matching.
	NodeVariable
)

// NodeFlags carry information about a node's content, used by writers to
// decide how the node can be abbreviated.
type NodeFlags uint8

const (
	// FlagHasNewline means the node text contains a line ending.
	FlagHasNewline NodeFlags = 1 << iota
	// FlagHasQuote means the node text contains a double quote.
	FlagHasQuote
	// FlagIsLong means the node was written as a long (triple-quoted) literal.
	FlagIsLong
	// FlagHasDatatype means a datatype URI node directly follows this literal.
	FlagHasDatatype
	// FlagHasLanguage means a language tag node directly follows this literal.
	FlagHasLanguage
)

// Node is a handle to a value record in a reader's arena.
//
// A Node received in a sink callback is valid only for the duration of the
// callback: the arena is rolled back once the statement has been delivered.
// Use Term to take a copy that outlives the callback.
type Node struct {
	arena *nodeArena
	id    nodeID
}

// IsZero reports whether the handle refers to no node at all.
func (n Node) IsZero() bool { return n.arena == nil || n.id == nodeNone }

// Type returns the node type.
func (n Node) Type() NodeType { return n.arena.typeOf(n.id) }

// Flags returns the node's content flags.
func (n Node) Flags() NodeFlags { return n.arena.flags(n.id) }

// Bytes returns the node's UTF-8 content. The slice aliases the arena and
// must not be retained or modified.
func (n Node) Bytes() []byte { return n.arena.bytes(n.id) }

// String returns the node's content as a string.
func (n Node) String() string { return n.arena.string(n.id) }

// Len returns the content length in bytes.
func (n Node) Len() int { return n.arena.len(n.id) }

// Datatype returns the literal's datatype node, if it has one.
func (n Node) Datatype() (Node, bool) {
	if n.IsZero() || n.arena.flags(n.id)&FlagHasDatatype == 0 {
		return Node{}, false
	}
	return Node{n.arena, n.arena.next(n.id)}, true
}

// Language returns the literal's language tag, if it has one.
func (n Node) Language() (string, bool) {
	if n.IsZero() || n.arena.flags(n.id)&FlagHasLanguage == 0 {
		return "", false
	}
	return n.arena.string(n.arena.next(n.id)), true
}

// Term returns a self-contained copy of the node.
func (n Node) Term() Term {
	switch n.Type() {
	case NodeURI:
		return IRI{Value: n.String()}
	case NodeBlank:
		return BlankNode{ID: n.String()}
	case NodeVariable:
		return Variable{Name: n.String()}
	}
	lit := Literal{Lexical: n.String()}
	if dt, ok := n.Datatype(); ok {
		lit.Datatype = IRI{Value: dt.String()}
	}
	if lang, ok := n.Language(); ok {
		lit.Lang = lang
	}
	return lit
}

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermVariable represents a pattern variable term.
	TermVariable
)

// Term is a self-contained value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// Variable represents a ?name or $name pattern variable.
type Variable struct {
	// Name is the variable name, without the leading sigil.
	Name string
}

// Kind returns TermVariable.
func (v Variable) Kind() TermKind { return TermVariable }

// String returns the variable name prefixed with "?".
func (v Variable) String() string { return "?" + v.Name }
