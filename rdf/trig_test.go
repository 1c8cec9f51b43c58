package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriGNamedGraph(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:g { eg:s eg:p eg:o . }\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, IRI{Value: "http://example.org/g"}, log.quads[0].G)
	require.Equal(t, IRI{Value: "http://example.org/s"}, log.quads[0].S)
}

func TestTriGDefaultGraphBlock(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"{ eg:s eg:p eg:o . }\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.True(t, log.quads[0].InDefaultGraph())
}

func TestTriGGraphKeyword(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"GRAPH eg:g { eg:s eg:p eg:o }\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, IRI{Value: "http://example.org/g"}, log.quads[0].G)
}

func TestTriGBlankGraphLabel(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"_:g { eg:s eg:p eg:o . }\n")
	require.NoError(t, err)
	require.Equal(t, BlankNode{ID: "g"}, log.quads[0].G)
}

func TestTriGTriplesOutsideGraphs(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:s eg:p eg:o .\n"+
			"eg:g { eg:s eg:p eg:o2 . }\n"+
			"eg:s eg:p eg:o3 .\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 3)
	require.True(t, log.quads[0].InDefaultGraph())
	require.Equal(t, IRI{Value: "http://example.org/g"}, log.quads[1].G)
	require.True(t, log.quads[2].InDefaultGraph())
}

func TestTriGMultipleStatementsInGraph(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:g {\n"+
			"  eg:s eg:p \"a\" .\n"+
			"  eg:s eg:q \"b\"\n"+
			"}\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 2)
	for _, q := range log.quads {
		require.Equal(t, IRI{Value: "http://example.org/g"}, q.G)
	}
}

func TestTriGGraphFollowedByDot(t *testing.T) {
	_, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"eg:g { eg:s eg:p eg:o . } .\n")
	require.ErrorIs(t, err, ErrBadSyntax)
}

func TestTriGCollectionGraphNameRejected(t *testing.T) {
	_, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"(eg:x) { eg:s eg:p eg:o . }\n")
	require.ErrorIs(t, err, ErrBadSyntax)
}

func TestTriGAnonymousGraphLabel(t *testing.T) {
	log, err := parseDoc(t, TriG,
		"@prefix eg: <http://example.org/> .\n"+
			"[] { eg:s eg:p eg:o . }\n")
	require.NoError(t, err)
	require.Len(t, log.quads, 1)
	require.Equal(t, BlankNode{ID: "b1"}, log.quads[0].G)
}
