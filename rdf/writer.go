package rdf

import (
	"bufio"
	"fmt"
	"io"
)

// Writer serializes an event stream to NTriples or NQuads, one statement
// per line. It implements Sink, so it can be connected directly to a Reader
// for streaming syntax conversion.
//
// The abbreviating syntaxes collapse base and prefix directives into the
// statements themselves during parsing, so writing NTriples or NQuads
// ignores Base, Prefix, and End events.
type Writer struct {
	out    *bufio.Writer
	syntax Syntax
	err    error
}

// NewWriter returns a writer producing the given syntax.
func NewWriter(out io.Writer, syntax Syntax) (*Writer, error) {
	switch syntax {
	case NTriples, NQuads:
	default:
		return nil, fmt.Errorf("%w: writing %q is not supported", ErrBadCall, syntax)
	}
	return &Writer{out: bufio.NewWriter(out), syntax: syntax}, nil
}

// Base implements Sink. Base URIs were already applied by the reader.
func (w *Writer) Base(uri Node) error { return w.err }

// Prefix implements Sink. Prefixed names were already expanded by the reader.
func (w *Writer) Prefix(name, uri Node) error { return w.err }

// End implements Sink. Anonymous nodes need no closing punctuation here.
func (w *Writer) End(node Node) error { return w.err }

// Statement implements Sink.
func (w *Writer) Statement(flags StatementFlags, statement *Statement) error {
	if w.err != nil {
		return w.err
	}

	w.writeNode(statement.Subject())
	w.writeByte(' ')
	w.writeNode(statement.Predicate())
	w.writeByte(' ')
	w.writeNode(statement.Object())

	if graph := statement.Graph(); !graph.IsZero() {
		if w.syntax != NQuads {
			w.err = fmt.Errorf("%w: cannot write a named graph statement as %s",
				ErrBadCall, w.syntax)
			return w.err
		}
		w.writeByte(' ')
		w.writeNode(graph)
	}

	w.writeString(" .\n")
	return w.err
}

// Flush writes any buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

func (w *Writer) writeByte(c byte) {
	if w.err == nil {
		w.err = w.out.WriteByte(c)
	}
}

func (w *Writer) writeString(s string) {
	if w.err == nil {
		_, w.err = w.out.WriteString(s)
	}
}

func (w *Writer) writeNode(n Node) {
	switch n.Type() {
	case NodeURI:
		w.writeByte('<')
		w.writeString(n.String())
		w.writeByte('>')

	case NodeBlank:
		w.writeString("_:")
		w.writeString(n.String())

	case NodeVariable:
		w.writeByte('?')
		w.writeString(n.String())

	case NodeLiteral:
		w.writeByte('"')
		w.writeEscaped(n.Bytes())
		w.writeByte('"')
		if lang, ok := n.Language(); ok {
			w.writeByte('@')
			w.writeString(lang)
		} else if dt, ok := n.Datatype(); ok {
			w.writeString("^^<")
			w.writeString(dt.String())
			w.writeByte('>')
		}
	}
}

// writeEscaped writes literal text with the escapes the line-based
// grammars require: quotes, backslashes, and line endings must be escaped,
// and remaining control characters use \u escapes so output stays one
// statement per line.
func (w *Writer) writeEscaped(text []byte) {
	for _, c := range text {
		switch c {
		case '"':
			w.writeString(`\"`)
		case '\\':
			w.writeString(`\\`)
		case '\n':
			w.writeString(`\n`)
		case '\r':
			w.writeString(`\r`)
		case '\t':
			w.writeString(`\t`)
		default:
			if c < 0x20 || c == 0x7F {
				w.writeString(fmt.Sprintf(`\u%04X`, c))
			} else {
				w.writeByte(c)
			}
		}
	}
}
