package rdf

import "strings"

// The Turtle and TriG grammars, which extend the line-based syntaxes with
// prefixed names, abbreviated lists, anonymous nodes, and (for TriG) named
// graphs. Production names follow the published grammar rules.

// readWhitespace reads whitespace ::= #x9 | #xA | #xD | #x20 | comment
func (r *Reader) readWhitespace() status {
	switch c := r.peekByte(); c {
	case '\t', '\n', '\r', ' ':
		return r.skipByte(c)
	case '#':
		return r.readComment()
	}
	return statusFailure
}

func (r *Reader) readWsStar() bool {
	for r.readWhitespace() == statusSuccess {
	}
	return true
}

func (r *Reader) peekDelim(delim byte) bool {
	r.readWsStar()
	return r.peekByte() == int(delim)
}

func (r *Reader) eatDelim(delim byte) bool {
	if r.peekDelim(delim) {
		r.skipByte(int(delim))
		return r.readWsStar()
	}
	return false
}

// readStringLiteralLong reads STRING_LITERAL_LONG_QUOTE or
// STRING_LITERAL_LONG_SINGLE_QUOTE, after the opening triple quotes.
func (r *Reader) readStringLiteralLong(ref nodeID, q byte) status {
	st := statusSuccess
	for r.tolerate(st) {
		c := r.peekByte()
		switch {
		case c == '\\':
			r.skipByte(c)
			if est := r.readECHAR(ref); est != statusSuccess {
				if _, ust := r.readUCHAR(ref); ust != statusSuccess {
					return r.err(ust, "invalid escape '\\%c'", r.peekByte())
				}
			}
		case c == eofByte:
			st = r.err(statusNoData, "unexpected end of input")
		case c == int(q):
			r.skipByte(c)
			q2 := r.eatByte()
			q3 := r.peekByte()
			if q2 == int(q) && q3 == int(q) { // End of string
				r.skipByte(q3)
				return statusSuccess
			}
			r.stack.orFlags(ref, FlagHasQuote)
			if st = r.pushByte(ref, byte(c)); st == statusSuccess {
				st = r.readCharacter(ref, byte(q2))
			}
		default:
			st = r.readCharacter(ref, byte(r.eatByte()))
		}
	}

	if r.tolerate(st) {
		return statusSuccess
	}
	return st
}

// readString reads a quoted string of any of the four forms, and marks long
// strings on the node so writers can round-trip them.
func (r *Reader) readString(node nodeID) status {
	q1 := r.eatByte()
	q2 := r.peekByte()
	if q2 == eofByte {
		return r.err(statusBadSyntax, "unexpected end of input")
	}

	if q2 != q1 { // Short string (not triple quoted)
		return r.readStringLiteral(node, byte(q1))
	}

	r.skipByte(q2)
	q3 := r.peekByte()
	if q3 == eofByte {
		return r.err(statusBadSyntax, "unexpected end of input")
	}

	if q3 != q1 { // Empty short string ("" or '')
		return statusSuccess
	}

	r.skipByte(q3)
	r.stack.orFlags(node, FlagIsLong)
	return r.readStringLiteralLong(node, byte(q1))
}

func (r *Reader) readPERCENT(dest nodeID) status {
	if st := r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
		return st
	}

	h1 := r.readHex()
	h2 := r.readHex()
	if h1 == 0 || h2 == 0 {
		return statusBadSyntax
	}

	if st := r.pushByte(dest, h1); st != statusSuccess {
		return st
	}
	return r.pushByte(dest, h2)
}

func (r *Reader) readPNLocalEsc(dest nodeID) status {
	r.skipByte('\\')
	if c := r.peekByte(); isPNLocalEsc(c) {
		return r.pushByte(dest, byte(r.eatByte()))
	}
	return r.err(statusBadSyntax, "invalid escape")
}

func (r *Reader) readPLX(dest nodeID) status {
	switch r.peekByte() {
	case '%':
		return r.readPERCENT(dest)
	case '\\':
		return r.readPNLocalEsc(dest)
	}
	return statusFailure
}

// readPNLocal reads [168s] PN_LOCAL, popping a tentatively eaten trailing
// dot back off the node.
func (r *Reader) readPNLocal(dest nodeID, ateDot *bool) status {
	c := r.peekByte()
	st := statusSuccess
	if isDigit(c) || c == ':' || c == '_' {
		st = r.pushByte(dest, byte(r.eatByte()))
	} else if st = r.readPLX(dest); st > statusFailure {
		return r.err(st, "bad escape")
	} else if st != statusSuccess {
		if r.readPNCharsBase(dest) != statusSuccess {
			return statusFailure
		}
		st = statusSuccess
	}
	if st != statusSuccess {
		return st
	}

	// Middle: (PN_CHARS | '.' | ':')*
	trailingDot := false
	for c = r.peekByte(); c > 0; c = r.peekByte() {
		if c == '.' || c == ':' {
			if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
				return st
			}
		} else if st = r.readPLX(dest); st > statusFailure {
			return r.err(st, "bad escape")
		} else if st != statusSuccess {
			if st = r.readPNChars(dest); st != statusSuccess {
				break
			}
		}
		trailingDot = c == '.'
	}

	if trailingDot {
		// Ate trailing dot, pop it from the node and inform the caller
		r.stack.popByte(dest)
		*ateDot = true
	}

	if st > statusFailure {
		return st
	}
	return statusSuccess
}

// readPNPrefixTail reads the remainder of a PN_PREFIX after some initial
// characters.
func (r *Reader) readPNPrefixTail(dest nodeID) status {
	st := statusSuccess
	for c := r.peekByte(); c > 0; c = r.peekByte() { // Middle: (PN_CHARS | '.')*
		if c == '.' {
			if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
				return st
			}
		} else if st = r.readPNChars(dest); st != statusSuccess {
			break
		}
	}

	if st <= statusFailure {
		if buf := r.stack.bytes(dest); len(buf) > 0 && buf[len(buf)-1] == '.' {
			if st = r.readPNChars(dest); st != statusSuccess {
				if st <= statusFailure {
					st = statusBadSyntax
				}
				return r.err(st, "prefix ends with '.'")
			}
		}
	}

	return st
}

func (r *Reader) readPNPrefix(dest nodeID) status {
	if st := r.readPNCharsBase(dest); st != statusSuccess {
		return st
	}
	return r.readPNPrefixTail(dest)
}

// resolveIRIRef replaces a relative reference on top of the stack with its
// resolution against the environment's base URI.
func (r *Reader) resolveIRIRef(dest nodeID) status {
	ref := r.stack.string(dest)
	if uriHasScheme(ref) {
		return statusSuccess
	}

	resolved, st := r.env.Resolve(ref)
	if st != statusSuccess {
		return r.err(statusBadSyntax,
			"failed to resolve relative URI reference <%s>", ref)
	}

	if st = r.stack.replaceContent(dest, []byte(resolved)); st != statusSuccess {
		return r.err(st, "node stack exhausted")
	}
	return statusSuccess
}

// readIRIREF reads [18] IRIREF, which unlike the strict syntaxes may be a
// relative reference, resolved against the base URI.
func (r *Reader) readIRIREF() (nodeID, status) {
	if st := r.eatByteCheck('<'); st != statusSuccess {
		return nodeNone, st
	}

	dest, st := r.pushNode(NodeURI, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	if st = r.readIRIRefSuffix(dest); !r.tolerate(st) {
		return nodeNone, st
	}

	return dest, r.resolveIRIRef(dest)
}

// readPrefixedName reads [169s] PrefixedName into dest and expands it to an
// absolute URI. Returns failure, consuming nothing further, if no colon
// follows the prefix.
func (r *Reader) readPrefixedName(dest nodeID, readPrefix bool, ateDot *bool) status {
	if readPrefix {
		if st := r.readPNPrefix(dest); st > statusFailure {
			return st
		}
	}

	if r.peekByte() != ':' {
		return statusFailure
	}

	if st := r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
		return st
	}
	if st := r.readPNLocal(dest, ateDot); st > statusFailure {
		return st
	}

	// Expand to absolute URI
	curie := r.stack.string(dest)
	expanded, st := r.env.Expand(curie)
	if st != statusSuccess {
		return r.err(st, "failed to expand %q", curie)
	}

	if st = r.stack.replaceContent(dest, []byte(expanded)); st != statusSuccess {
		return r.err(st, "node stack exhausted")
	}
	r.stack.setType(dest, NodeURI)
	return statusSuccess
}

func (r *Reader) read09(dest nodeID, atLeastOne bool) status {
	count := 0
	for c := r.peekByte(); isDigit(c); c = r.peekByte() {
		if st := r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return st
		}
		count++
	}

	if atLeastOne && count == 0 {
		return r.err(statusBadSyntax, "expected digit")
	}
	return statusSuccess
}

// readNumber reads [16] NumericLiteral, typing the node as xsd:integer,
// xsd:decimal, or xsd:double. A trailing dot may turn out to terminate the
// statement instead, in which case ateDot is set.
func (r *Reader) readNumber(ateDot *bool) (nodeID, status) {
	dest, st := r.pushNode(NodeLiteral, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	c := r.peekByte()
	hasDecimal := false
	if c == '-' || c == '+' {
		if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return nodeNone, st
		}
	}

	if c = r.peekByte(); c == '.' {
		hasDecimal = true
		// Decimal with no integer part (e.g. ".0" or "-.0" or "+.0")
		if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return nodeNone, st
		}
		if st = r.read09(dest, true); st != statusSuccess {
			return nodeNone, st
		}
	} else {
		if st = r.read09(dest, true); st != statusSuccess {
			return nodeNone, st
		}
		if c = r.peekByte(); c == '.' {
			hasDecimal = true

			// Annoyingly, dot can be end of statement, so tentatively eat
			r.skipByte(c)
			c = r.peekByte()
			if !isDigit(c) && c != 'e' && c != 'E' {
				*ateDot = true // Next byte is not a number character
				r.stack.orFlags(dest, FlagHasDatatype)
				if _, st = r.pushNode(NodeURI, nsXSD+"integer"); st != statusSuccess {
					return nodeNone, st
				}
				return dest, statusSuccess
			}

			if st = r.pushByte(dest, '.'); st != statusSuccess {
				return nodeNone, st
			}
			r.read09(dest, false)
		}
	}

	datatype := nsXSD + "integer"
	if c = r.peekByte(); c == 'e' || c == 'E' {
		datatype = nsXSD + "double"
		if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return nodeNone, st
		}
		if c = r.peekByte(); c == '+' || c == '-' {
			if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
				return nodeNone, st
			}
		}
		if st = r.read09(dest, true); st != statusSuccess {
			return nodeNone, st
		}
	} else if hasDecimal {
		datatype = nsXSD + "decimal"
	}

	r.stack.orFlags(dest, FlagHasDatatype)
	if _, st = r.pushNode(NodeURI, datatype); st != statusSuccess {
		return nodeNone, st
	}
	return dest, statusSuccess
}

// readTurtleIRI reads [135s] iri: an IRI reference or a prefixed name. The
// partially-read node is returned even on failure so the caller can
// reinterpret the token.
func (r *Reader) readTurtleIRI(ateDot *bool) (nodeID, status) {
	if r.peekByte() == '<' {
		return r.readIRIREF()
	}

	dest, st := r.pushNode(NodeURI, "")
	if st != statusSuccess {
		return nodeNone, st
	}
	return dest, r.readPrefixedName(dest, true, ateDot)
}

// readLiteral reads [13] literal: a string with an optional language tag or
// datatype.
func (r *Reader) readLiteral(ateDot *bool) (nodeID, status) {
	dest, st := r.pushNode(NodeLiteral, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	if st = r.readString(dest); st != statusSuccess {
		return nodeNone, st
	}

	switch r.peekByte() {
	case '@':
		r.skipByte('@')
		r.stack.orFlags(dest, FlagHasLanguage)
		r.stack.zeroPad(dest)
		if st = r.readLangTag(); st != statusSuccess {
			return nodeNone, st
		}
	case '^':
		r.skipByte('^')
		if st = r.eatByteCheck('^'); st != statusSuccess {
			return nodeNone, st
		}
		r.stack.orFlags(dest, FlagHasDatatype)
		r.stack.zeroPad(dest)
		if _, st = r.readTurtleIRI(ateDot); st != statusSuccess {
			return nodeNone, st
		}
	}
	return dest, statusSuccess
}

// readVerb reads [9] verb: an IRI, a variable, or the keyword 'a'.
func (r *Reader) readVerb() (nodeID, status) {
	orig := r.stack.mark()

	switch r.peekByte() {
	case '$', '?':
		return r.readVar()
	case '<':
		return r.readIRIREF()
	}

	// Either a prefixed name, or the "a" shorthand for rdf:type. Read the
	// prefix first, and if it is in fact "a", produce that instead.
	dest, st := r.pushNode(NodeURI, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	if st = r.readPNPrefix(dest); st > statusFailure {
		return nodeNone, st
	}

	next := r.peekByte()
	if r.stack.len(dest) == 1 && r.stack.bytes(dest)[0] == 'a' &&
		next != ':' && !isPNCharsBase(rune(next)) {
		r.stack.popTo(orig)
		return r.rdfType, statusSuccess
	}

	ateDot := false
	if st = r.readPrefixedName(dest, false, &ateDot); st != statusSuccess || ateDot {
		if st <= statusFailure {
			st = statusBadSyntax
		}
		return nodeNone, r.err(st, "expected verb")
	}

	return dest, statusSuccess
}

// readAnon reads [14] blankNodePropertyList or [162s] ANON, emitting the
// node's description with it as subject, then an end event marking where
// the description closes.
func (r *Reader) readAnon(ctx readContext, subject bool) (nodeID, status) {
	r.skipByte('[')

	oldFlags := *ctx.flags
	empty := r.peekDelim(']')

	if !subject {
		*ctx.flags |= FlagAnonO
	} else if empty {
		*ctx.flags |= FlagEmptyS
	} else {
		*ctx.flags |= FlagAnonS
	}

	dest, st := r.blankID()
	if st != statusSuccess {
		return nodeNone, st
	}

	// Emit statement with this anonymous object first
	if ctx.subject != nodeNone {
		if st = r.emitStatement(ctx, dest); st != statusSuccess {
			return nodeNone, st
		}
	}

	// Switch the subject to the anonymous node and read its description
	ctx.subject = dest
	if !empty {
		ateDotInList := false
		if st = r.readPredicateObjectList(ctx, &ateDotInList); st != statusSuccess {
			return nodeNone, st
		}
		if ateDotInList {
			return nodeNone, r.err(statusBadSyntax, "'.' inside blank")
		}
		r.readWsStar()
		*ctx.flags = oldFlags
	}

	if !(subject && empty) {
		if st = r.emitEnd(dest); st != statusSuccess {
			return nodeNone, st
		}
	}

	return dest, r.eatByteCheck(']')
}

// readNamedObject reads an object that starts with letters: a boolean
// literal or a prefixed name. These cannot be told apart by the first
// character, so try a prefixed name and switch to a boolean if the token
// turns out to be "true" or "false" with no colon.
func (r *Reader) readNamedObject(ateDot *bool) (nodeID, status) {
	dest, st := r.pushNode(NodeURI, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	st = r.readPrefixedName(dest, true, ateDot)

	if st == statusFailure {
		if s := r.stack.string(dest); s == "true" || s == "false" {
			r.stack.setType(dest, NodeLiteral)
			r.stack.setFlags(dest, FlagHasDatatype)
			if _, st = r.pushNode(NodeURI, nsXSD+"boolean"); st != statusSuccess {
				return nodeNone, st
			}
			return dest, statusSuccess
		}
	}

	if st != statusSuccess {
		if st <= statusFailure {
			st = statusBadSyntax
		}
		return nodeNone, r.err(st, "expected prefixed name or boolean")
	}

	return dest, statusSuccess
}

// readObject reads [12] object and emits statements, possibly recursively
// for anonymous nodes and collections.
func (r *Reader) readObject(ctx *readContext, ateDot *bool) status {
	orig := r.stack.mark()
	origCaret := r.source.caret

	var o nodeID
	st := statusFailure
	simple := true

	switch c := r.peekByte(); c {
	case eofByte, ')':
		return r.err(statusBadSyntax, "expected object")
	case '$', '?':
		o, st = r.readVar()
	case '[':
		simple = false
		o, st = r.readAnon(*ctx, false)
	case '(':
		simple = false
		o, st = r.readCollection(*ctx)
	case '_':
		o, st = r.readBlankNodeLabel(ateDot)
	case '<':
		o, st = r.readIRIREF()
	case ':':
		o, st = r.readTurtleIRI(ateDot)
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		o, st = r.readNumber(ateDot)
	case '"', '\'':
		origCaret.Col++
		o, st = r.readLiteral(ateDot)
	default:
		// Either a boolean literal or a prefixed name
		o, st = r.readNamedObject(ateDot)
	}

	if st == statusSuccess && simple && o != nodeNone {
		st = r.emitStatementAt(*ctx, o, origCaret)
	}

	r.stack.popTo(orig)
	return st
}

// readObjectList reads [8] objectList.
func (r *Reader) readObjectList(ctx readContext, ateDot *bool) status {
	st := r.readObject(&ctx, ateDot)
	for st <= statusFailure && !*ateDot && r.eatDelim(',') {
		st = r.readObject(&ctx, ateDot)
	}
	return st
}

// readPredicateObjectList reads [7] predicateObjectList.
func (r *Reader) readPredicateObjectList(ctx readContext, ateDot *bool) status {
	orig := r.stack.mark()

	var st status
	for {
		if ctx.predicate, st = r.readVerb(); st != statusSuccess {
			break
		}
		r.readWsStar()
		if st = r.readObjectList(ctx, ateDot); st != statusSuccess {
			break
		}
		if *ateDot {
			r.stack.popTo(orig)
			return statusSuccess
		}

		ateSemi := false
		for delim := true; delim; {
			r.readWsStar()
			switch c := r.peekByte(); c {
			case eofByte:
				r.stack.popTo(orig)
				return r.err(statusBadSyntax, "unexpected end of input")
			case '.', ']', '}':
				r.stack.popTo(orig)
				return statusSuccess
			case ';':
				r.skipByte(c)
				ateSemi = true
			default:
				delim = false
			}
		}

		if !ateSemi {
			r.stack.popTo(orig)
			return r.err(statusBadSyntax, "missing ';' or '.'")
		}
		r.stack.popTo(orig)
	}

	r.stack.popTo(orig)
	return st
}

func (r *Reader) endCollection(st status) status {
	if st != statusSuccess {
		return st
	}
	return r.eatByteCheck(')')
}

// readCollection reads [15] collection, emitting the rdf:first/rdf:rest
// spine as it goes. Nodes cannot be allocated in stack order here, so two
// blank nodes are created and recycled throughout the list.
func (r *Reader) readCollection(ctx readContext) (nodeID, status) {
	r.skipByte('(')

	var st status
	end := r.peekDelim(')')

	dest := r.rdfNil
	if !end {
		if dest, st = r.blankID(); st != statusSuccess {
			return nodeNone, st
		}
	}

	if ctx.subject != nodeNone { // Reading a collection object
		if !end {
			*ctx.flags |= FlagListO
		}
		if st = r.emitStatement(ctx, dest); st != statusSuccess {
			return nodeNone, st
		}
	} else if !end { // Reading a collection subject
		*ctx.flags |= FlagListS
	}

	if end {
		return dest, r.endCollection(st)
	}

	n1, st := r.stack.pushNodePadded(NodeBlank, nil, r.genidLen())
	if st != statusSuccess {
		return nodeNone, r.err(st, "node stack exhausted")
	}

	node := n1
	rest := nodeNone

	ctx.subject = dest
	for !r.peekDelim(')') {
		// _:node rdf:first object
		ctx.predicate = r.rdfFirst
		ateDot := false
		if st = r.readObject(&ctx, &ateDot); st != statusSuccess || ateDot {
			return dest, r.endCollection(st)
		}

		if end = r.peekDelim(')'); !end {
			// Give rest a new ID, as late as possible so generated IDs
			// stay in document order.
			if rest == nodeNone {
				if rest, st = r.blankID(); st != statusSuccess {
					return nodeNone, st
				}
			} else {
				r.setBlankID(rest)
			}
		}

		// _:node rdf:rest _:rest
		ctx.predicate = r.rdfRest
		next := rest
		if end {
			next = r.rdfNil
		}
		if st = r.emitStatement(ctx, next); st != statusSuccess {
			return dest, r.endCollection(st)
		}

		ctx.subject = rest // _:node = _:rest
		rest = node        // _:rest = (old)_:node
		node = ctx.subject
	}

	return dest, r.endCollection(st)
}

// readSubject reads [10] subject. The partially-read token is returned
// even when reading fails recoverably, so the caller can reinterpret it as
// a directive keyword.
func (r *Reader) readSubject(ctx readContext, sType *int) (nodeID, status) {
	var dest nodeID
	var st status
	ateDot := false

	switch *sType = r.peekByte(); *sType {
	case '$', '?':
		dest, st = r.readVar()
	case '[':
		dest, st = r.readAnon(ctx, true)
	case '(':
		dest, st = r.readCollection(ctx)
	case '_':
		dest, st = r.readBlankNodeLabel(&ateDot)
	default:
		if dest, st = r.readTurtleIRI(&ateDot); st != statusSuccess {
			return dest, st
		}
	}

	if ateDot {
		return nodeNone, r.err(statusBadSyntax, "subject ends with '.'")
	}
	return dest, st
}

// readLabelOrSubject reads [7g] labelOrSubject, the graph label forms.
func (r *Reader) readLabelOrSubject() (nodeID, status) {
	ateDot := false

	switch r.peekByte() {
	case '[':
		r.skipByte('[')
		r.readWsStar()
		if st := r.eatByteCheck(']'); st != statusSuccess {
			return nodeNone, st
		}
		return r.blankID()
	case '_':
		return r.readBlankNodeLabel(&ateDot)
	}

	if dest, st := r.readTurtleIRI(&ateDot); st == statusSuccess {
		return dest, st
	}
	return nodeNone, r.err(statusBadSyntax, "expected label or subject")
}

// readTriples reads [6] triples once the subject is in hand.
func (r *Reader) readTriples(ctx readContext, ateDot *bool) status {
	st := statusFailure
	if ctx.subject != nodeNone {
		r.readWsStar()
		switch r.peekByte() {
		case '.':
			r.skipByte('.')
			*ateDot = true
			return statusFailure
		case '}':
			return statusFailure
		}
		st = r.readPredicateObjectList(ctx, ateDot)
	}

	if st > statusFailure {
		return st
	}
	return statusSuccess
}

// readBase reads [5] base or [5s] sparqlBase after any leading keyword.
func (r *Reader) readBase(sparql, token bool) status {
	var st status
	if token {
		if st = r.eatString("base"); st != statusSuccess {
			return st
		}
	}

	r.readWsStar()

	uri, st := r.readIRIREF()
	if st != statusSuccess {
		return st
	}

	r.stack.zeroPad(uri)
	r.env.SetBaseURI(r.stack.string(uri))
	if st = r.emitBase(uri); st != statusSuccess {
		return st
	}

	r.readWsStar()
	if !sparql {
		return r.eatByteCheck('.')
	}

	if r.peekByte() == '.' {
		return r.err(statusBadSyntax, "full stop after SPARQL BASE")
	}
	return statusSuccess
}

// readPrefixID reads [4] prefixID or [6s] sparqlPrefix after any leading
// keyword.
func (r *Reader) readPrefixID(sparql, token bool) status {
	var st status
	if token {
		if st = r.eatString("prefix"); st != statusSuccess {
			return st
		}
	}

	r.readWsStar()
	name, st := r.pushNode(NodeLiteral, "")
	if st != statusSuccess {
		return st
	}

	if st = r.readPNPrefix(name); st > statusFailure {
		return st
	}

	if st = r.eatByteCheck(':'); st != statusSuccess {
		return st
	}

	r.readWsStar()
	uri, st := r.readIRIREF()
	if st != statusSuccess {
		return st
	}

	r.stack.zeroPad(name)
	r.stack.zeroPad(uri)
	r.env.SetPrefix(r.stack.string(name), r.stack.string(uri))
	if st = r.emitPrefix(name, uri); st != statusSuccess {
		return st
	}

	if !sparql {
		r.readWsStar()
		return r.eatByteCheck('.')
	}
	return statusSuccess
}

// readWrappedGraph reads [5g] wrappedGraph, with ctx.graph already set to
// the graph label, or no node for the default graph.
func (r *Reader) readWrappedGraph(ctx *readContext) status {
	if st := r.eatByteCheck('{'); st != statusSuccess {
		return st
	}

	r.readWsStar()
	for r.peekByte() != '}' {
		mark := r.stack.mark()
		ateDot := false
		sType := 0

		ctx.subject = nodeNone
		subject, st := r.readSubject(*ctx, &sType)
		if st != statusSuccess {
			if st <= statusFailure {
				st = statusBadSyntax
			}
			return r.err(st, "expected subject")
		}

		ctx.subject = subject
		if ts := r.readTriples(*ctx, &ateDot); ts != statusSuccess {
			if ts > statusFailure {
				return ts
			}
			if sType != '[' {
				return r.err(statusBadSyntax, "missing predicate object list")
			}
		}

		r.stack.popTo(mark)
		r.readWsStar()
		if r.peekByte() == '.' {
			r.skipByte('.')
		}
		r.readWsStar()
	}

	r.skipByte('}')
	r.readWsStar()
	if r.peekByte() == '.' {
		return r.err(statusBadSyntax, "graph followed by '.'")
	}
	return statusSuccess
}

func (r *Reader) tokenEquals(token nodeID, word string) bool {
	return token != nodeNone && strings.EqualFold(r.stack.string(token), word)
}

// readTurtleDirective reads [3] directive.
func (r *Reader) readTurtleDirective() status {
	r.skipByte('@')

	switch r.peekByte() {
	case 'b':
		return r.readBase(false, true)
	case 'p':
		return r.readPrefixID(false, true)
	}

	return r.err(statusBadSyntax, `expected "base" or "prefix"`)
}

// readSparqlDirective reinterprets an already-read token as a SPARQL-style
// BASE, PREFIX, or GRAPH keyword, which match case-insensitively.
func (r *Reader) readSparqlDirective(ctx *readContext, token nodeID) status {
	if r.tokenEquals(token, "base") {
		return r.readBase(true, false)
	}
	if r.tokenEquals(token, "prefix") {
		return r.readPrefixID(true, false)
	}
	if r.tokenEquals(token, "graph") {
		if r.syntax != TriG {
			return r.err(statusBadSyntax, "syntax does not support graphs")
		}
		var st status
		r.readWsStar()
		if ctx.graph, st = r.readLabelOrSubject(); st != statusSuccess {
			return st
		}
		r.readWsStar()
		return r.readWrappedGraph(ctx)
	}
	return statusFailure
}

// readBlock reads a statement that starts with a subject-like token: plain
// triples, a SPARQL directive, or a TriG named graph.
func (r *Reader) readBlock(ctx *readContext) status {
	// Try to read a subject, though it may actually be a directive or a
	// graph name
	sType := 0
	token, st := r.readSubject(*ctx, &sType)
	if st > statusFailure {
		return st
	}

	// Try to interpret as a SPARQL "PREFIX" or "BASE" directive
	if st != statusSuccess {
		if dst := r.readSparqlDirective(ctx, token); dst != statusFailure {
			return dst
		}
	}

	// Try to interpret as a named TriG graph like "graphname { ..."
	r.readWsStar()
	if r.peekByte() == '{' {
		if r.syntax != TriG {
			return r.err(statusBadSyntax, "syntax does not support graphs")
		}
		if sType == '(' || (sType == '[' && *ctx.flags == 0) {
			return r.err(statusBadSyntax, "invalid graph name")
		}
		ctx.graph = token
		if sType == '[' {
			*ctx.flags |= FlagEmptyG
		}
		return r.readWrappedGraph(ctx)
	}

	if st != statusSuccess {
		return r.err(statusBadSyntax, "expected directive or subject")
	}

	// The token is really a subject, read some triples
	ateDot := false
	ctx.subject = token
	if st = r.readTriples(*ctx, &ateDot); st > statusFailure {
		return st
	}

	// Failure is only allowed for anonymous subjects like "[ ... ] ."
	if st != statusSuccess && sType != '[' {
		return r.err(statusBadSyntax, "expected triples")
	}

	// Ensure that triples are properly terminated
	if ateDot {
		return st
	}
	return r.eatByteCheck('.')
}

// readTurtleStatement reads one top-level Turtle or TriG statement.
func (r *Reader) readTurtleStatement() status {
	var flags StatementFlags
	ctx := readContext{flags: &flags}

	// Handle the cases distinguishable from the next byte
	r.readWsStar()
	switch r.peekByte() {
	case eofByte:
		return statusFailure

	case 0:
		r.eatByte()
		return statusFailure

	case '@':
		return r.readTurtleDirective()

	case '{':
		if r.syntax == TriG {
			return r.readWrappedGraph(&ctx)
		}
		return r.err(statusBadSyntax, "syntax does not support graphs")
	}

	// No such luck, figure out what to read from the first token
	return r.readBlock(&ctx)
}

// readTurtleTriGDoc reads statements until the input is exhausted,
// resynchronizing at the next line after a tolerated error.
func (r *Reader) readTurtleTriGDoc() status {
	for !r.source.eof {
		mark := r.stack.mark()
		st := r.readTurtleStatement()

		if r.source.ioErr != nil {
			r.stack.popTo(mark)
			return r.err(statusInternal, "read error: %v", r.source.ioErr)
		}

		if st > statusFailure {
			if !r.tolerate(st) {
				r.stack.popTo(mark)
				return st
			}
			r.skipUntilByte('\n')
		}

		r.stack.popTo(mark)
	}

	return statusSuccess
}
