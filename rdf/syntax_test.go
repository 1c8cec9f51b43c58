package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSyntaxNames(t *testing.T) {
	for value, want := range map[string]Syntax{
		"turtle":   Turtle,
		"ttl":      Turtle,
		"TriG":     TriG,
		"ntriples": NTriples,
		"nt":       NTriples,
		" nquads ": NQuads,
		"NQ":       NQuads,
	} {
		got, ok := ParseSyntax(value)
		require.True(t, ok, value)
		require.Equal(t, want, got)
	}

	_, ok := ParseSyntax("rdfxml")
	require.False(t, ok)
}

func TestSyntaxForPath(t *testing.T) {
	syntax, ok := SyntaxForPath("/data/dump.nq")
	require.True(t, ok)
	require.Equal(t, NQuads, syntax)

	syntax, ok = SyntaxForPath("doc.ttl")
	require.True(t, ok)
	require.Equal(t, Turtle, syntax)

	_, ok = SyntaxForPath("README")
	require.False(t, ok)
	_, ok = SyntaxForPath("archive.zip")
	require.False(t, ok)
}
