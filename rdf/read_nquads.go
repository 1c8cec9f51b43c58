package rdf

// readGraphLabel reads [6] graphLabel for NQuads.
func (r *Reader) readGraphLabel() (nodeID, status) {
	ateDot := false
	switch r.peekByte() {
	case '<':
		return r.readIRI()
	case '?', '$':
		return r.readVar()
	case '_':
		return r.readBlankNodeLabel(&ateDot)
	}
	return nodeNone, r.err(statusBadSyntax, "expected '<' or '_'")
}

// readQuadStatement reads [2] statement: a triple with an optional graph
// label before the final dot.
func (r *Reader) readQuadStatement() status {
	var flags StatementFlags
	ctx := readContext{flags: &flags}
	var st status
	ateDot := false

	// Read subject and predicate
	if ctx.subject, st = r.readNTSubject(); st != statusSuccess {
		return st
	}
	r.skipHorizontalWhitespace()
	if ctx.predicate, st = r.readNTPredicate(); st != statusSuccess {
		return st
	}
	r.skipHorizontalWhitespace()

	origCaret := r.source.caret
	object, st := r.readNTObject(&ateDot)
	if st != statusSuccess {
		return st
	}
	r.skipHorizontalWhitespace()

	if !ateDot && r.peekByte() != '.' {
		if ctx.graph, st = r.readGraphLabel(); st != statusSuccess {
			return st
		}
		r.skipHorizontalWhitespace()
	}

	if !ateDot {
		if st = r.eatByteCheck('.'); st != statusSuccess {
			return st
		}
	}

	return r.emitStatementAt(ctx, object, origCaret)
}
