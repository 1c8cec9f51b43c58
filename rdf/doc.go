// Package rdf provides a streaming parser for the Turtle, TriG, NTriples,
// and NQuads RDF syntaxes, with a small writer for the line-based forms.
//
// The package is built for sustained throughput on large documents: parsed
// values are constructed directly into a fixed-capacity arena that is rolled
// back after every statement, so steady-state parsing does not allocate.
// Statements are pushed to a Sink as they are parsed; sinks receive Node
// handles into the arena and take self-contained Term or Quad copies only
// when they need to retain them.
//
// Example (pull one document into memory):
//
//	quads, err := rdf.ParseString(input, rdf.Turtle)
//	if err != nil {
//	    // handle error
//	}
//	for _, q := range quads {
//	    // process q.S, q.P, q.O, q.G
//	}
//
// Example (streaming with a sink):
//
//	sink := rdf.EventFunc(func(event rdf.Event) error {
//	    if s, ok := event.(rdf.StatementEvent); ok {
//	        // s.Statement is valid only inside this callback
//	    }
//	    return nil
//	})
//	reader, err := rdf.NewReader(rdf.TriG, sink, rdf.WithLaxParsing())
//	if err != nil {
//	    // handle error
//	}
//	if err := reader.StartFile("data.trig"); err != nil {
//	    // handle error
//	}
//	defer reader.Finish()
//	err = reader.ReadDocument()
//
// Readers resolve relative IRI references and expand prefixed names while
// parsing, so every emitted URI node is absolute. Parse failures unwrap to
// sentinel errors (ErrBadSyntax and friends) and carry a source position;
// in lax mode recoverable errors are logged and parsing resumes at the next
// line instead of aborting.
package rdf
