package rdf

import "fmt"

// Caret is a position in a source document, for error reporting.
// Line and column are 1-based; column counts bytes, not characters.
type Caret struct {
	// Name is the document name, usually a file path or URI.
	Name string
	// Line is the 1-based line number.
	Line int
	// Col is the 1-based column number.
	Col int
}

// String returns the caret in "name:line:col" form.
func (c Caret) String() string {
	return fmt.Sprintf("%s:%d:%d", c.Name, c.Line, c.Col)
}
