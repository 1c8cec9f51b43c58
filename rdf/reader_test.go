package rdf

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// eventLog collects every event a reader emits, copied out of the arena so
// assertions can run after the read completes.
type eventLog struct {
	quads    []Quad
	flags    []StatementFlags
	carets   []Caret
	prefixes map[string]string
	bases    []string
	ends     []string
}

func (l *eventLog) sink() EventFunc {
	return func(ev Event) error {
		switch ev := ev.(type) {
		case BaseEvent:
			l.bases = append(l.bases, ev.URI.String())
		case PrefixEvent:
			if l.prefixes == nil {
				l.prefixes = map[string]string{}
			}
			l.prefixes[ev.Name.String()] = ev.URI.String()
		case StatementEvent:
			l.quads = append(l.quads, ev.Statement.Quad())
			l.flags = append(l.flags, ev.Flags)
			l.carets = append(l.carets, ev.Statement.Caret())
		case EndEvent:
			l.ends = append(l.ends, ev.Node.String())
		}
		return nil
	}
}

// parseDoc reads an entire in-memory document and returns the collected
// events along with the reader's error, if any.
func parseDoc(t *testing.T, syntax Syntax, input string, opts ...ReaderOption) (*eventLog, error) {
	t.Helper()

	log := &eventLog{}
	opts = append([]ReaderOption{WithLogger(discardLogger())}, opts...)
	r, err := NewReader(syntax, log.sink(), opts...)
	require.NoError(t, err)
	require.NoError(t, r.StartString(input, "test"))

	err = r.ReadDocument()
	require.NoError(t, r.Finish())
	return log, err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReaderRejectsUnknownSyntax(t *testing.T) {
	_, err := NewReader("rdfxml", EventFunc(func(Event) error { return nil }))
	require.ErrorIs(t, err, ErrBadCall)
}

func TestNewReaderRejectsTinyStack(t *testing.T) {
	_, err := NewReader(Turtle, EventFunc(func(Event) error { return nil }),
		WithStackSize(16))
	require.ErrorIs(t, err, ErrBadCall)
}

func TestReadDocumentWithoutInput(t *testing.T) {
	r, err := NewReader(NTriples, EventFunc(func(Event) error { return nil }))
	require.NoError(t, err)
	require.ErrorIs(t, r.ReadDocument(), ErrBadCall)
}

func TestReaderProduced(t *testing.T) {
	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink(), WithLogger(discardLogger()))
	require.NoError(t, err)

	require.NoError(t, r.StartString("<http://example.org/s>", "bad"))
	require.Error(t, r.ReadDocument())
	require.False(t, r.Produced())

	require.NoError(t, r.StartString(
		"<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n",
		"good"))
	require.NoError(t, r.ReadDocument())
	require.True(t, r.Produced())
}

func TestReaderReuseAcrossInputs(t *testing.T) {
	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.StartString(
			"<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n",
			"doc"))
		require.NoError(t, r.ReadDocument())
	}
	require.NoError(t, r.Finish())
	require.Len(t, log.quads, 3)
}

func TestReadChunkOneStatementAtATime(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"one\" .\n" +
		"<http://example.org/s> <http://example.org/p> \"two\" .\n"

	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink())
	require.NoError(t, err)
	require.NoError(t, r.StartString(input, "chunks"))

	require.NoError(t, r.ReadChunk())
	require.Len(t, log.quads, 1)
	require.NoError(t, r.ReadChunk())
	require.Len(t, log.quads, 2)
	require.ErrorIs(t, r.ReadChunk(), io.EOF)
	require.NoError(t, r.Finish())
}

func TestReadChunkNullDelimited(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/a> .\n" +
		"\x00" +
		"<http://example.org/s> <http://example.org/p> <http://example.org/b> ."

	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink())
	require.NoError(t, err)
	require.NoError(t, r.StartString(input, "socket"))

	require.NoError(t, r.ReadChunk())
	require.NoError(t, r.ReadChunk())
	require.Len(t, log.quads, 2)
	require.Equal(t, IRI{Value: "http://example.org/b"}, log.quads[1].O)
	require.ErrorIs(t, r.ReadChunk(), io.EOF)
	require.NoError(t, r.Finish())
}

func TestReadChunkTurtleDirectiveThenStatement(t *testing.T) {
	input := "@prefix eg: <http://example.org/> .\neg:s eg:p eg:o .\n"

	log := &eventLog{}
	r, err := NewReader(Turtle, log.sink())
	require.NoError(t, err)
	require.NoError(t, r.StartString(input, "doc"))

	require.NoError(t, r.ReadChunk())
	require.Equal(t, map[string]string{"eg": "http://example.org/"}, log.prefixes)
	require.Empty(t, log.quads)

	require.NoError(t, r.ReadChunk())
	require.Len(t, log.quads, 1)
	require.ErrorIs(t, r.ReadChunk(), io.EOF)
	require.NoError(t, r.Finish())
}

func TestSinkErrorAbortsRead(t *testing.T) {
	sinkErr := io.ErrClosedPipe
	r, err := NewReader(NTriples, EventFunc(func(Event) error { return sinkErr }),
		WithLogger(discardLogger()))
	require.NoError(t, err)
	require.NoError(t, r.StartString(
		"<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n",
		"doc"))
	require.ErrorIs(t, r.ReadDocument(), sinkErr)
	require.NoError(t, r.Finish())
}

func TestStatementCaretPointsAtObject(t *testing.T) {
	log, err := parseDoc(t, NTriples,
		"<http://example.org/s> <http://example.org/p> \"o\" .\n")
	require.NoError(t, err)
	require.Len(t, log.carets, 1)
	require.Equal(t, "test", log.carets[0].Name)
	require.Equal(t, 1, log.carets[0].Line)
	require.Equal(t, 47, log.carets[0].Col)
}

func TestSyntaxErrorCarriesCaret(t *testing.T) {
	_, err := parseDoc(t, NTriples, "<http://example.org/s> nonsense\n")
	require.ErrorIs(t, err, ErrBadSyntax)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, 1, syntaxErr.Caret.Line)
	require.NotEmpty(t, syntaxErr.Msg)
}

func TestBlankPrefixAppliedToGeneratedLabels(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"[] <http://example.org/p> <http://example.org/o> .\n",
		WithBlankPrefix("doc1-"))
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, BlankNode{ID: "doc1-b1"}, log.quads[0].S)
}

func TestStackOverflowReported(t *testing.T) {
	long := strings.Repeat("x", 4096)
	_, err := parseDoc(t, NTriples,
		"<http://example.org/s> <http://example.org/p> \""+long+"\" .\n",
		WithStackSize(minStackSize))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestPageSizeOneStillParses(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\neg:s eg:p \"v\" .\n",
		WithPageSize(1))
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
}

func TestStackRestoredBetweenStatements(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"one\" .\n" +
		"this line does not parse\n" +
		"<http://example.org/s> <http://example.org/p> \"two\" .\n"

	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink(),
		WithLogger(discardLogger()), WithLaxParsing())
	require.NoError(t, err)
	require.NoError(t, r.StartString(input, "doc"))
	require.NoError(t, r.ReadDocument())

	// Every statement, including the discarded one, is popped back off the
	// stack, so the high-water mark returns to its starting point.
	require.Equal(t, r.bottom, r.stack.mark())
	require.Len(t, log.quads, 2)
	require.NoError(t, r.Finish())
}

func TestOverflowingStatementEmitsNothing(t *testing.T) {
	long := strings.Repeat("x", 4096)
	log, err := parseDoc(t, NTriples,
		"<http://example.org/s> <http://example.org/p> \"fits\" .\n"+
			"<http://example.org/s> <http://example.org/p> \""+long+"\" .\n",
		WithStackSize(minStackSize))
	require.ErrorIs(t, err, ErrOverflow)
	require.Len(t, log.quads, 1)
	require.Equal(t, Literal{Lexical: "fits"}, log.quads[0].O)
}

// shortReader returns its data in one short read per call and counts how
// many times Read is called.
type shortReader struct {
	data  []byte
	reads int
}

func (r *shortReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReadChunkAcceptsShortReads(t *testing.T) {
	src := &shortReader{
		data: []byte("<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n\x00"),
	}

	log := &eventLog{}
	r, err := NewReader(NTriples, log.sink(), WithLogger(discardLogger()))
	require.NoError(t, err)
	require.NoError(t, r.StartStream(src, "socket"))

	// One short read delivers a full statement, so the reader must not wait
	// for a whole page before parsing it.
	require.NoError(t, r.ReadChunk())
	require.Len(t, log.quads, 1)
	require.Equal(t, 1, src.reads)
}
