package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Handler processes statements in push mode.
type Handler func(Quad) error

// Parse reads input to completion and pushes a self-contained Quad to the
// handler for each statement. The context is checked between top-level
// statements, so a parse of a large or slow stream can be cancelled.
func Parse(ctx context.Context, input io.Reader, syntax Syntax, handler Handler, opts ...ReaderOption) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sink := EventFunc(func(event Event) error {
		if s, ok := event.(StatementEvent); ok {
			return handler(s.Statement.Quad())
		}
		return nil
	})

	reader, err := NewReader(syntax, sink, opts...)
	if err != nil {
		return err
	}
	if err = reader.StartStream(input, "input"); err != nil {
		return err
	}
	defer reader.Finish()

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = reader.ReadChunk(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ParseString parses a complete in-memory document and collects its
// statements.
func ParseString(input string, syntax Syntax, opts ...ReaderOption) ([]Quad, error) {
	var quads []Quad
	sink := EventFunc(func(event Event) error {
		if s, ok := event.(StatementEvent); ok {
			quads = append(quads, s.Statement.Quad())
		}
		return nil
	})

	reader, err := NewReader(syntax, sink, opts...)
	if err != nil {
		return nil, err
	}
	if err = reader.StartString(input, "string"); err != nil {
		return nil, err
	}
	defer reader.Finish()

	if err = reader.ReadDocument(); err != nil {
		return nil, err
	}
	return quads, nil
}

// ParseFile parses a document, guessing the syntax from the file extension,
// and collects its statements.
func ParseFile(path string, opts ...ReaderOption) ([]Quad, error) {
	syntax, ok := SyntaxForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: cannot guess syntax of %q", ErrBadCall, path)
	}

	var quads []Quad
	sink := EventFunc(func(event Event) error {
		if s, ok := event.(StatementEvent); ok {
			quads = append(quads, s.Statement.Quad())
		}
		return nil
	})

	reader, err := NewReader(syntax, sink, opts...)
	if err != nil {
		return nil, err
	}
	if err = reader.StartFile(path); err != nil {
		return nil, err
	}
	defer reader.Finish()

	if err = reader.ReadDocument(); err != nil {
		return nil, err
	}
	return quads, nil
}
