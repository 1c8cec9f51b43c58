package rdf

// Sink receives the events produced by a Reader, in document order.
//
// Node handles passed to a sink are valid only for the duration of the
// callback; take Term copies to retain them. Returning a non-nil error from
// any method aborts the read.
type Sink interface {
	// Base is called when a base URI directive is parsed.
	Base(uri Node) error
	// Prefix is called when a namespace prefix directive is parsed.
	Prefix(name, uri Node) error
	// Statement is called once per parsed triple or quad.
	Statement(flags StatementFlags, statement *Statement) error
	// End is called when the description of an anonymous node is complete,
	// so a writer can emit its closing punctuation.
	End(node Node) error
}

// Event is one element of the parse event stream: a BaseEvent, PrefixEvent,
// StatementEvent, or EndEvent.
type Event interface {
	isEvent()
}

// BaseEvent reports a new base URI.
type BaseEvent struct {
	URI Node
}

// PrefixEvent reports a namespace prefix definition.
type PrefixEvent struct {
	Name Node
	URI  Node
}

// StatementEvent reports one parsed statement.
type StatementEvent struct {
	Flags     StatementFlags
	Statement *Statement
}

// EndEvent reports the end of an anonymous node's description.
type EndEvent struct {
	Node Node
}

func (BaseEvent) isEvent()      {}
func (PrefixEvent) isEvent()    {}
func (StatementEvent) isEvent() {}
func (EndEvent) isEvent()       {}

// EventFunc adapts a function to the Sink interface.
type EventFunc func(Event) error

// Base implements Sink.
func (f EventFunc) Base(uri Node) error { return f(BaseEvent{URI: uri}) }

// Prefix implements Sink.
func (f EventFunc) Prefix(name, uri Node) error {
	return f(PrefixEvent{Name: name, URI: uri})
}

// Statement implements Sink.
func (f EventFunc) Statement(flags StatementFlags, statement *Statement) error {
	return f(StatementEvent{Flags: flags, Statement: statement})
}

// End implements Sink.
func (f EventFunc) End(node Node) error { return f(EndEvent{Node: node}) }
