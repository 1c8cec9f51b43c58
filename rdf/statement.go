package rdf

// StatementFlags carry inline abbreviation hints for a statement, telling a
// writer how the statement was (or can be) abbreviated in the source syntax.
type StatementFlags uint32

const (
	// FlagEmptyS marks an empty blank node subject ("[] ...").
	FlagEmptyS StatementFlags = 1 << iota
	// FlagAnonS marks the start of an anonymous subject ("[ ... ] ...").
	FlagAnonS
	// FlagAnonO marks the start of an anonymous object ("... [ ... ]").
	FlagAnonO
	// FlagListS marks the start of a list subject ("( ... ) ...").
	FlagListS
	// FlagListO marks the start of a list object ("... ( ... )").
	FlagListO
	// FlagEmptyG marks an empty blank node graph label.
	FlagEmptyG
)

// AnonSubject reports whether the subject begins an anonymous node.
func (f StatementFlags) AnonSubject() bool { return f&FlagAnonS != 0 }

// AnonObject reports whether the object begins an anonymous node.
func (f StatementFlags) AnonObject() bool { return f&FlagAnonO != 0 }

// ListSubject reports whether the subject begins a collection.
func (f StatementFlags) ListSubject() bool { return f&FlagListS != 0 }

// ListObject reports whether the object begins a collection.
func (f StatementFlags) ListObject() bool { return f&FlagListO != 0 }

// EmptySubject reports whether the subject is an empty blank node.
func (f StatementFlags) EmptySubject() bool { return f&FlagEmptyS != 0 }

// Statement is one parsed triple or quad. The node handles alias the
// reader's arena and are valid only until the sink callback returns.
type Statement struct {
	subject   Node
	predicate Node
	object    Node
	graph     Node
	caret     Caret
}

// Subject returns the statement's subject.
func (s *Statement) Subject() Node { return s.subject }

// Predicate returns the statement's predicate.
func (s *Statement) Predicate() Node { return s.predicate }

// Object returns the statement's object.
func (s *Statement) Object() Node { return s.object }

// Graph returns the statement's graph label, which is zero for statements
// in the default graph.
func (s *Statement) Graph() Node { return s.graph }

// Caret returns the source position recorded at the start of the object,
// for diagnostics issued after parsing has moved on.
func (s *Statement) Caret() Caret { return s.caret }

// Quad returns a self-contained copy of the statement.
func (s *Statement) Quad() Quad {
	q := Quad{
		S: s.subject.Term(),
		P: s.predicate.Term(),
		O: s.object.Term(),
	}
	if !s.graph.IsZero() {
		q.G = s.graph.Term()
	}
	return q
}

// Quad is a self-contained triple with an optional graph term.
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P Term
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// InDefaultGraph reports whether the quad has no named graph.
func (q Quad) InDefaultGraph() bool { return q.G == nil }
