package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTurtlePrefixedNames(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/ns#> .\neg:s eg:p eg:o .\n")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"eg": "http://example.org/ns#"}, log.prefixes)
	require.Len(t, log.quads, 1)
	require.Equal(t, IRI{Value: "http://example.org/ns#s"}, log.quads[0].S)
	require.Equal(t, IRI{Value: "http://example.org/ns#p"}, log.quads[0].P)
	require.Equal(t, IRI{Value: "http://example.org/ns#o"}, log.quads[0].O)
}

func TestTurtleUnknownPrefix(t *testing.T) {
	_, err := parseDoc(t, Turtle, "eg:s eg:p eg:o .\n")
	require.ErrorIs(t, err, ErrBadCURIE)
}

func TestTurtleBaseResolution(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@base <http://example.org/dir/> .\n"+
			"<doc> <p> <#frag> .\n"+
			"<doc> <p> </abs> .\n"+
			"<doc> <p> <../up> .\n")
	require.NoError(t, err)
	require.Equal(t, []string{"http://example.org/dir/"}, log.bases)
	require.Len(t, log.quads, 3)
	require.Equal(t, IRI{Value: "http://example.org/dir/doc"}, log.quads[0].S)
	require.Equal(t, IRI{Value: "http://example.org/dir/#frag"}, log.quads[0].O)
	require.Equal(t, IRI{Value: "http://example.org/abs"}, log.quads[1].O)
	require.Equal(t, IRI{Value: "http://example.org/up"}, log.quads[2].O)
}

func TestTurtleInitialBaseOption(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"<s> <p> <o> .\n", WithBaseURI("http://example.org/"))
	require.NoError(t, err)
	require.Equal(t, IRI{Value: "http://example.org/s"}, log.quads[0].S)
}

func TestTurtleRelativeIRIWithoutBase(t *testing.T) {
	_, err := parseDoc(t, Turtle, "<s> <p> <o> .\n")
	require.ErrorIs(t, err, ErrBadSyntax)
}

func TestTurtleSparqlDirectives(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"PREFIX eg: <http://example.org/>\n"+
			"Base <http://example.org/>\n"+
			"eg:s eg:p <o> .\n")
	require.NoError(t, err)
	require.Equal(t, "http://example.org/", log.prefixes["eg"])
	require.Equal(t, []string{"http://example.org/"}, log.bases)
	require.Equal(t, IRI{Value: "http://example.org/o"}, log.quads[0].O)
}

func TestTurtleTypeKeyword(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\neg:s a eg:Thing .\n")
	require.NoError(t, err)
	require.Equal(t, IRI{Value: nsRDF + "type"}, log.quads[0].P)
	require.Equal(t, IRI{Value: "http://example.org/Thing"}, log.quads[0].O)
}

func TestTurtleSemicolonsAndCommas(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p1 \"a\", \"b\" ;\n"+
			"     eg:p2 \"c\" ;\n"+
			".\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 3)
	require.Equal(t, IRI{Value: "http://example.org/p1"}, log.quads[1].P)
	require.Equal(t, Literal{Lexical: "b"}, log.quads[1].O)
	require.Equal(t, IRI{Value: "http://example.org/p2"}, log.quads[2].P)
}

func TestTurtleNumericLiterals(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p 42, -1, 4.2, .5, 1e3, -1.2E-4 .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 6)

	integer := IRI{Value: nsXSD + "integer"}
	decimal := IRI{Value: nsXSD + "decimal"}
	double := IRI{Value: nsXSD + "double"}
	require.Equal(t, Literal{Lexical: "42", Datatype: integer}, log.quads[0].O)
	require.Equal(t, Literal{Lexical: "-1", Datatype: integer}, log.quads[1].O)
	require.Equal(t, Literal{Lexical: "4.2", Datatype: decimal}, log.quads[2].O)
	require.Equal(t, Literal{Lexical: ".5", Datatype: decimal}, log.quads[3].O)
	require.Equal(t, Literal{Lexical: "1e3", Datatype: double}, log.quads[4].O)
	require.Equal(t, Literal{Lexical: "-1.2E-4", Datatype: double}, log.quads[5].O)
}

// A dot after digits may close the statement rather than extend the number.
func TestTurtleIntegerThenStatementDot(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"<http://example.org/a> <http://example.org/b> 1.\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, Literal{
		Lexical:  "1",
		Datatype: IRI{Value: nsXSD + "integer"},
	}, log.quads[0].O)
}

func TestTurtleBooleanLiterals(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\neg:s eg:p true, false .\n")
	require.NoError(t, err)
	boolean := IRI{Value: nsXSD + "boolean"}
	require.Equal(t, Literal{Lexical: "true", Datatype: boolean}, log.quads[0].O)
	require.Equal(t, Literal{Lexical: "false", Datatype: boolean}, log.quads[1].O)
}

func TestTurtleStringForms(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p \"double\", 'single', \"\", '', \"\"\"long\n\"quoted\"\nlines\"\"\", '''other''' .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 6)
	require.Equal(t, Literal{Lexical: "double"}, log.quads[0].O)
	require.Equal(t, Literal{Lexical: "single"}, log.quads[1].O)
	require.Equal(t, Literal{Lexical: ""}, log.quads[2].O)
	require.Equal(t, Literal{Lexical: ""}, log.quads[3].O)
	require.Equal(t, Literal{Lexical: "long\n\"quoted\"\nlines"}, log.quads[4].O)
	require.Equal(t, Literal{Lexical: "other"}, log.quads[5].O)
}

func TestTurtleLanguageAndDatatype(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p \"chat\"@fr-CA, \"7\"^^eg:seven, \"8\"^^<http://example.org/eight> .\n")
	require.NoError(t, err)
	require.Equal(t, Literal{Lexical: "chat", Lang: "fr-CA"}, log.quads[0].O)
	require.Equal(t, Literal{
		Lexical:  "7",
		Datatype: IRI{Value: "http://example.org/seven"},
	}, log.quads[1].O)
	require.Equal(t, Literal{
		Lexical:  "8",
		Datatype: IRI{Value: "http://example.org/eight"},
	}, log.quads[2].O)
}

func TestTurtleAnonymousObject(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p [ eg:q \"v\" ] .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 2)

	anon := BlankNode{ID: "b1"}
	require.Equal(t, anon, log.quads[0].O)
	require.True(t, log.flags[0].AnonObject())
	require.Equal(t, anon, log.quads[1].S)
	require.Equal(t, Literal{Lexical: "v"}, log.quads[1].O)
	require.Equal(t, []string{"b1"}, log.ends)
}

func TestTurtleAnonymousSubject(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"[ eg:p eg:o ] .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, BlankNode{ID: "b1"}, log.quads[0].S)
	require.True(t, log.flags[0].AnonSubject())
	require.Equal(t, []string{"b1"}, log.ends)
}

func TestTurtleEmptyBlankSubject(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"[] eg:p eg:o .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, BlankNode{ID: "b1"}, log.quads[0].S)
	require.True(t, log.flags[0].EmptySubject())
	require.Empty(t, log.ends)
}

func TestTurtleCollection(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p (1 2) .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 5)

	first := IRI{Value: nsRDF + "first"}
	rest := IRI{Value: nsRDF + "rest"}
	nilIRI := IRI{Value: nsRDF + "nil"}
	integer := IRI{Value: nsXSD + "integer"}
	b1 := BlankNode{ID: "b1"}
	b2 := BlankNode{ID: "b2"}

	require.True(t, log.flags[0].ListObject())
	require.Equal(t, Quad{S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"}, O: b1}, log.quads[0])
	require.Equal(t, Quad{S: b1, P: first, O: Literal{Lexical: "1", Datatype: integer}}, log.quads[1])
	require.Equal(t, Quad{S: b1, P: rest, O: b2}, log.quads[2])
	require.Equal(t, Quad{S: b2, P: first, O: Literal{Lexical: "2", Datatype: integer}}, log.quads[3])
	require.Equal(t, Quad{S: b2, P: rest, O: nilIRI}, log.quads[4])
}

func TestTurtleEmptyCollection(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p () .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, IRI{Value: nsRDF + "nil"}, log.quads[0].O)
	require.False(t, log.flags[0].ListObject())
}

func TestTurtleCollectionSubject(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"(1) eg:p eg:o .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 3)
	require.True(t, log.flags[0].ListSubject())
	require.Equal(t, IRI{Value: nsRDF + "first"}, log.quads[0].P)
	require.Equal(t, IRI{Value: nsRDF + "rest"}, log.quads[1].P)
	require.Equal(t, BlankNode{ID: "b1"}, log.quads[2].S)
}

func TestTurtleEscapedLocalName(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			`eg:s eg:p eg:a\.b .`+"\n")
	require.NoError(t, err)
	require.Equal(t, IRI{Value: "http://example.org/a.b"}, log.quads[0].O)
}

func TestTurtleDotlessLocalNameAtEndOfInput(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\neg:s eg:p eg:o.")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, IRI{Value: "http://example.org/o"}, log.quads[0].O)
}

func TestTurtleLaxModeResynchronizes(t *testing.T) {
	log, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p eg:o extra garbage here\n"+
			"eg:s eg:p \"after\" .\n",
		WithLaxParsing())
	require.NoError(t, err)
	require.NotEmpty(t, log.quads)
	require.Equal(t, Literal{Lexical: "after"}, log.quads[len(log.quads)-1].O)
}

func TestTurtleRejectsGraphBlocks(t *testing.T) {
	_, err := parseDoc(t, Turtle,
		"{ <http://example.org/s> <http://example.org/p> <http://example.org/o> . }\n")
	require.ErrorIs(t, err, ErrBadSyntax)

	_, err = parseDoc(t, Turtle,
		"GRAPH <http://example.org/g> { }\n")
	require.ErrorIs(t, err, ErrBadSyntax)
}

func TestTurtleDotInsideBlankNode(t *testing.T) {
	_, err := parseDoc(t, Turtle,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p [ eg:q eg:o . ] .\n")
	require.ErrorIs(t, err, ErrBadSyntax)
}
