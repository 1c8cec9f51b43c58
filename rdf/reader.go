package rdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

const (
	nsRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsXSD = "http://www.w3.org/2001/XMLSchema#"

	// DefaultStackSize is the default arena capacity in bytes.
	DefaultStackSize = 1 << 20
	// DefaultPageSize is the default byte source page size.
	DefaultPageSize = 4096

	// minStackSize leaves room for the reader's own URI nodes plus at
	// least one small statement.
	minStackSize = 512
)

// readerOptions is the configuration assembled by ReaderOption values.
type readerOptions struct {
	env         *Env
	baseURI     string
	stackSize   int
	pageSize    int
	lax         bool
	variables   bool
	blankPrefix string
	logger      *slog.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOptions)

// WithEnv supplies the namespace environment updated by directives. By
// default each reader gets a fresh empty environment.
func WithEnv(env *Env) ReaderOption {
	return func(o *readerOptions) { o.env = env }
}

// WithBaseURI sets the initial base URI for resolving relative references.
func WithBaseURI(uri string) ReaderOption {
	return func(o *readerOptions) { o.baseURI = uri }
}

// WithStackSize sets the arena capacity in bytes. Parsing a statement whose
// nodes do not fit fails with ErrOverflow; the capacity never grows.
func WithStackSize(n int) ReaderOption {
	return func(o *readerOptions) { o.stackSize = n }
}

// WithPageSize sets the byte source page size. A page size of one reads
// byte-at-a-time, for interactive or socket sources.
func WithPageSize(n int) ReaderOption {
	return func(o *readerOptions) { o.pageSize = n }
}

// WithLaxParsing tolerates recoverable syntax errors by logging them and
// skipping to the next line, and substitutes replacement characters for
// invalid UTF-8.
func WithLaxParsing() ReaderOption {
	return func(o *readerOptions) { o.lax = true }
}

// WithVariables enables ?name and $name variable nodes, an extension beyond
// the standard grammars used for pattern matching.
func WithVariables() ReaderOption {
	return func(o *readerOptions) { o.variables = true }
}

// WithBlankPrefix prepends a prefix to every blank node label, parsed or
// generated, to avoid collisions when merging several documents.
func WithBlankPrefix(prefix string) ReaderOption {
	return func(o *readerOptions) { o.blankPrefix = prefix }
}

// WithLogger sets the logger used for caret-tagged diagnostics.
func WithLogger(logger *slog.Logger) ReaderOption {
	return func(o *readerOptions) { o.logger = logger }
}

// readContext assembles one statement as productions fill it in. It owns no
// memory, only handles into the reader's arena; the flags are shared by
// reference so nested productions can set abbreviation hints on the
// statement about to be emitted.
type readContext struct {
	graph     nodeID
	subject   nodeID
	predicate nodeID
	object    nodeID
	flags     *StatementFlags
}

// Reader is a streaming parser for one of the four supported syntaxes. It
// reads from one input at a time and pushes events to its sink. A Reader is
// not safe for concurrent use; run independent readers for parallel parses.
type Reader struct {
	syntax Syntax
	sink   Sink
	env    *Env
	stack  *nodeArena
	source *byteSource
	logger *slog.Logger

	strict    bool
	variables bool
	bprefix   []byte

	rdfFirst nodeID
	rdfRest  nodeID
	rdfNil   nodeID
	rdfType  nodeID
	bottom   arenaMark

	nextID    uint32
	seenGenID bool

	pageSize int
	produced bool
	sinkErr  error
	lastErr  *SyntaxError
}

// NewReader constructs a reader for the given syntax, pushing events to sink.
func NewReader(syntax Syntax, sink Sink, opts ...ReaderOption) (*Reader, error) {
	o := readerOptions{
		stackSize: DefaultStackSize,
		pageSize:  DefaultPageSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch syntax {
	case Turtle, TriG, NTriples, NQuads:
	default:
		return nil, fmt.Errorf("%w: unsupported syntax %q", ErrBadCall, syntax)
	}
	if o.stackSize < minStackSize {
		return nil, fmt.Errorf("%w: stack size %d below minimum %d",
			ErrBadCall, o.stackSize, minStackSize)
	}
	if o.pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be positive", ErrBadCall)
	}
	if o.env == nil {
		o.env = NewEnv(o.baseURI)
	} else if o.baseURI != "" {
		o.env.SetBaseURI(o.baseURI)
	}

	r := &Reader{
		syntax:    syntax,
		sink:      sink,
		env:       o.env,
		stack:     newNodeArena(o.stackSize),
		logger:    o.logger,
		strict:    !o.lax,
		variables: o.variables,
		bprefix:   []byte(o.blankPrefix),
		pageSize:  o.pageSize,
		nextID:    1,
	}

	// The well-known URI nodes live below the rollback floor for the
	// lifetime of the reader.
	r.rdfFirst, _ = r.stack.pushNode(NodeURI, []byte(nsRDF+"first"))
	r.rdfRest, _ = r.stack.pushNode(NodeURI, []byte(nsRDF+"rest"))
	r.rdfNil, _ = r.stack.pushNode(NodeURI, []byte(nsRDF+"nil"))
	r.rdfType, _ = r.stack.pushNode(NodeURI, []byte(nsRDF+"type"))
	r.stack.zeroPad(r.rdfType)
	r.bottom = r.stack.mark()

	return r, nil
}

// Env returns the reader's namespace environment.
func (r *Reader) Env() *Env { return r.env }

// Produced reports whether any event has been emitted for the current
// input, so callers can tell a failure on the first statement from one
// after partial output.
func (r *Reader) Produced() bool { return r.produced }

// StartString begins reading from an in-memory string. The name is used in
// diagnostics.
func (r *Reader) StartString(input, name string) error {
	if err := r.Finish(); err != nil {
		return err
	}
	r.source = newStringByteSource(input, name)
	r.resetInput()
	return nil
}

// StartFile begins reading from a file, paging with the configured page size.
func (r *Reader) StartFile(path string) error {
	if err := r.Finish(); err != nil {
		return err
	}
	source, err := newFileByteSource(path, r.pageSize)
	if err != nil {
		return err
	}
	r.source = source
	r.resetInput()
	return nil
}

// StartStream begins reading from an arbitrary reader, such as a socket or
// pipe.
func (r *Reader) StartStream(stream io.Reader, name string) error {
	if err := r.Finish(); err != nil {
		return err
	}
	r.source = newStreamByteSource(stream, name, r.pageSize)
	r.resetInput()
	return nil
}

func (r *Reader) resetInput() {
	r.produced = false
	r.seenGenID = false
	r.sinkErr = nil
	r.lastErr = nil
	r.stack.popTo(r.bottom)
}

// Finish releases the current input, if any. Readers may be reused for
// another input afterwards.
func (r *Reader) Finish() error {
	if r.source == nil {
		return nil
	}
	err := r.source.close()
	r.source = nil
	return err
}

// ReadDocument reads the input to completion, emitting events for every
// statement. In lax mode recoverable errors are logged and parsing resumes
// at the next line; in strict mode the first error aborts the read.
func (r *Reader) ReadDocument() error {
	if r.source == nil {
		return fmt.Errorf("%w: no input started", ErrBadCall)
	}
	if st := r.prepare(); st > statusFailure {
		return r.errorFor(st)
	}

	var st status
	if r.syntax == NQuads || r.syntax == NTriples {
		st = r.readLineDoc()
	} else {
		st = r.readTurtleTriGDoc()
	}
	return r.errorFor(st)
}

// ReadChunk reads one top-level statement, directive, or graph block. It
// returns io.EOF once the input is exhausted, so callers can pull
// statements from a live stream one at a time.
func (r *Reader) ReadChunk() error {
	if r.source == nil {
		return fmt.Errorf("%w: no input started", ErrBadCall)
	}
	if !r.source.prepared {
		if st := r.prepare(); st > statusFailure {
			return r.errorFor(st)
		}
	}

	// Skip a leading null byte, for reading from a null-delimited socket.
	if r.peekByte() == 0 {
		r.skipByte(0)
	}

	mark := r.stack.mark()
	defer r.stack.popTo(mark)

	var st status
	if r.syntax == NQuads || r.syntax == NTriples {
		st = r.readLine()
	} else {
		st = r.readTurtleStatement()
	}
	if st == statusFailure {
		return io.EOF
	}
	return r.errorFor(st)
}

func (r *Reader) prepare() status {
	if r.source.prepared {
		return statusSuccess
	}
	st := r.source.prepare()
	if st == statusInternal {
		return r.err(st, "error preparing read: %v", r.source.ioErr)
	}
	if st := r.source.skipBOM(); st != statusSuccess {
		return r.err(st, "corrupt byte order mark")
	}
	return statusSuccess
}

// errorFor maps a final status to the reader's public error value.
func (r *Reader) errorFor(st status) error {
	if st <= statusFailure {
		return nil
	}
	if r.sinkErr != nil {
		return r.sinkErr
	}
	if r.lastErr != nil && r.lastErr.Err == st.err() {
		return r.lastErr
	}
	return st.err()
}

// err logs a diagnostic with the current caret and records it for the
// public error value, then returns the status so productions can use it in
// a single return expression.
func (r *Reader) err(st status, format string, args ...any) status {
	caret := Caret{}
	if r.source != nil {
		caret = r.source.caret
	}
	e := &SyntaxError{Caret: caret, Msg: fmt.Sprintf(format, args...), Err: st.err()}
	r.lastErr = e
	level := slog.LevelError
	if !r.strict && !st.fatal() {
		level = slog.LevelWarn
	}
	r.logger.Log(context.Background(), level, e.Msg,
		"document", caret.Name, "line", caret.Line, "col", caret.Col)
	return st
}

// tolerate reports whether the status may be recovered from under the
// current strictness policy.
func (r *Reader) tolerate(st status) bool {
	if st.fatal() {
		return false
	}
	return !r.strict || st <= statusFailure
}

// Byte-level helpers shared by every production.

func (r *Reader) peekByte() int { return r.source.peek() }

func (r *Reader) skipByte(c int) status {
	return r.source.advance()
}

func (r *Reader) eatByte() int {
	c := r.source.peek()
	if c != eofByte {
		r.source.advance()
	}
	return c
}

func (r *Reader) eatByteCheck(c byte) status {
	got := r.peekByte()
	if got != int(c) {
		if got == eofByte {
			return r.err(statusNoData, "expected %q, not end of input", c)
		}
		return r.err(statusBadSyntax, "expected %q, not %q", c, byte(got))
	}
	r.skipByte(got)
	return statusSuccess
}

func (r *Reader) eatString(str string) status {
	for i := 0; i < len(str); i++ {
		if st := r.eatByteCheck(str[i]); st != statusSuccess {
			return st
		}
	}
	return statusSuccess
}

func (r *Reader) pushByte(id nodeID, c byte) status {
	if st := r.stack.pushByte(id, c); st != statusSuccess {
		return r.err(st, "node stack exhausted")
	}
	return statusSuccess
}

func (r *Reader) pushBytes(id nodeID, bytes []byte) status {
	if st := r.stack.pushBytes(id, bytes); st != statusSuccess {
		return r.err(st, "node stack exhausted")
	}
	return statusSuccess
}

func (r *Reader) pushNode(typ NodeType, str string) (nodeID, status) {
	id, st := r.stack.pushNode(typ, []byte(str))
	if st != statusSuccess {
		return nodeNone, r.err(st, "node stack exhausted")
	}
	return id, statusSuccess
}

// Blank node identifier generation.

func (r *Reader) genidLen() int {
	return len(r.bprefix) + 1 + 10 // + "b" + UINT32_MAX digits
}

func (r *Reader) setBlankID(id nodeID) {
	buf := make([]byte, 0, r.genidLen())
	buf = append(buf, r.bprefix...)
	buf = append(buf, 'b')
	buf = strconv.AppendUint(buf, uint64(r.nextID), 10)
	r.nextID++
	r.stack.setContent(id, buf)
}

// blankID synthesizes a fresh blank node with a generated label.
func (r *Reader) blankID() (nodeID, status) {
	id, st := r.stack.pushNodePadded(NodeBlank, nil, r.genidLen())
	if st != statusSuccess {
		return nodeNone, r.err(st, "node stack exhausted")
	}
	r.setBlankID(id)
	return id, statusSuccess
}

// Event emission.

func (r *Reader) node(id nodeID) Node {
	if id == nodeNone {
		return Node{}
	}
	return Node{r.stack, id}
}

func (r *Reader) emitBase(uri nodeID) status {
	r.stack.zeroPad(uri)
	if err := r.sink.Base(r.node(uri)); err != nil {
		r.sinkErr = err
		return statusInternal
	}
	r.produced = true
	return statusSuccess
}

func (r *Reader) emitPrefix(name, uri nodeID) status {
	r.stack.zeroPad(name)
	r.stack.zeroPad(uri)
	if err := r.sink.Prefix(r.node(name), r.node(uri)); err != nil {
		r.sinkErr = err
		return statusInternal
	}
	r.produced = true
	return statusSuccess
}

func (r *Reader) emitEnd(node nodeID) status {
	if err := r.sink.End(r.node(node)); err != nil {
		r.sinkErr = err
		return statusInternal
	}
	return statusSuccess
}

// emitStatementAt delivers one statement, padding the object (the newest
// node, possibly still unpadded) first. The caret is the position recorded
// at the start of object parsing.
func (r *Reader) emitStatementAt(ctx readContext, object nodeID, caret Caret) status {
	r.stack.zeroPad(object)

	statement := Statement{
		subject:   r.node(ctx.subject),
		predicate: r.node(ctx.predicate),
		object:    r.node(object),
		graph:     r.node(ctx.graph),
		caret:     caret,
	}
	if err := r.sink.Statement(*ctx.flags, &statement); err != nil {
		r.sinkErr = err
		return statusInternal
	}
	*ctx.flags = 0
	r.produced = true
	return statusSuccess
}

func (r *Reader) emitStatement(ctx readContext, object nodeID) status {
	return r.emitStatementAt(ctx, object, r.source.caret)
}

// skipUntilByte consumes input up to and including the given byte, for
// lax-mode resynchronization at the next line.
func (r *Reader) skipUntilByte(b byte) {
	for c := r.peekByte(); c != eofByte && c != int(b); c = r.peekByte() {
		r.skipByte(c)
	}
	if r.peekByte() == int(b) {
		r.skipByte(int(b))
	}
}
