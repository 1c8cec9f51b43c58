package rdf

// Terminals and line-based document structure shared by NTriples and
// NQuads, and reused by the Turtle/TriG grammar. Production names follow
// the rule names in the published grammars.

// readLangTag reads [144s] LANGTAG into a fresh node directly after the
// literal it annotates.
func (r *Reader) readLangTag() status {
	if !isAlpha(r.peekByte()) {
		return r.err(statusBadSyntax, "expected A-Z or a-z")
	}

	node, st := r.pushNode(NodeLiteral, "")
	if st != statusSuccess {
		return st
	}

	// First component must be all letters
	if st = r.pushByte(node, byte(r.eatByte())); st != statusSuccess {
		return st
	}
	for isAlpha(r.peekByte()) {
		if st = r.pushByte(node, byte(r.eatByte())); st != statusSuccess {
			return st
		}
	}

	// Following components can have letters and digits
	for r.peekByte() == '-' {
		if st = r.pushByte(node, byte(r.eatByte())); st != statusSuccess {
			return st
		}
		for isAlpha(r.peekByte()) || isDigit(r.peekByte()) {
			if st = r.pushByte(node, byte(r.eatByte())); st != statusSuccess {
				return st
			}
		}
	}

	r.stack.zeroPad(node)
	return statusSuccess
}

func isEOL(c int) bool {
	return c == '\n' || c == '\r'
}

// readEOL reads [7] EOL.
func (r *Reader) readEOL() status {
	if !isEOL(r.peekByte()) {
		return r.err(statusBadSyntax, "expected a line ending")
	}
	for isEOL(r.peekByte()) {
		r.eatByte()
	}
	return statusSuccess
}

// skipHorizontalWhitespace consumes spaces and tabs.
func (r *Reader) skipHorizontalWhitespace() status {
	for c := r.peekByte(); c == ' ' || c == '\t'; c = r.peekByte() {
		r.skipByte(c)
	}
	return statusSuccess
}

// readIRIScheme reads the required scheme of an absolute IRI, up to but not
// including the ':'. The strict syntaxes demand a scheme; handling that in
// the parser gives better errors than failing resolution later.
func (r *Reader) readIRIScheme(dest nodeID) status {
	c := r.peekByte()
	if !isAlpha(c) {
		return r.err(statusBadSyntax, "%q is not a valid first IRI character", byte(c))
	}

	for c = r.peekByte(); c != eofByte; c = r.peekByte() {
		if c == ':' {
			return statusSuccess // End of scheme
		}
		if !isURISchemeChar(c) {
			return r.err(statusBadSyntax,
				"U+%04X is not a valid IRI scheme character", c)
		}
		if st := r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return st
		}
	}
	return statusBadSyntax
}

// readIRIRefSuffix reads everything after the leading '<' of an IRI
// reference, decoding escapes and validating UTF-8 as it goes.
func (r *Reader) readIRIRefSuffix(node nodeID) status {
	st := statusSuccess
	for st <= statusFailure {
		c := r.eatByte()
		switch c {
		case eofByte:
			return r.err(statusNoData, "unexpected end of input")

		case ' ', '"', '<', '^', '`', '{', '|', '}':
			return r.err(statusBadSyntax,
				"%q is not a valid IRI character", byte(c))

		case '>':
			return statusSuccess

		case '\\':
			code, ust := r.readUCHAR(node)
			if ust != statusSuccess {
				return ust
			}
			if code == 0 || code == ' ' || code == '<' || code == '>' {
				return r.err(statusBadSyntax,
					"U+%04X is not a valid IRI character", code)
			}

		default:
			if c <= 0x20 {
				st = r.err(statusBadSyntax,
					"control character U+%04X is not a valid IRI character", c)
				if r.strict {
					return st
				}
			}
			if c&0x80 != 0 {
				st = r.readUTF8Continuation(node, byte(c))
			} else {
				st = r.pushByte(node, byte(c))
			}
		}
	}

	if r.tolerate(st) {
		return statusSuccess
	}
	return st
}

// readIRI reads an absolute IRI, the stricter subset of [8] IRIREF required
// by the non-abbreviating syntaxes.
func (r *Reader) readIRI() (nodeID, status) {
	r.skipByte('<')

	dest, st := r.pushNode(NodeURI, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	if st = r.readIRIScheme(dest); st != statusSuccess {
		return nodeNone, r.err(st, "expected IRI scheme")
	}

	return dest, r.readIRIRefSuffix(dest)
}

// readCharacter pushes one character starting with c, following UTF-8
// continuation bytes as needed.
func (r *Reader) readCharacter(dest nodeID, c byte) status {
	if c&0x80 == 0 {
		return r.pushByte(dest, c)
	}
	return r.readUTF8Continuation(dest, c)
}

// readStringLiteral reads [9] STRING_LITERAL_QUOTE or
// [23] STRING_LITERAL_SINGLE_QUOTE, after the opening quote q.
func (r *Reader) readStringLiteral(ref nodeID, q byte) status {
	st := statusSuccess
	for r.tolerate(st) {
		c := r.peekByte()
		switch c {
		case eofByte:
			return r.err(statusBadSyntax, "end of input in short string")
		case '\n', '\r':
			return r.err(statusBadSyntax, "line end in short string")
		case '\\':
			r.skipByte(c)
			if est := r.readECHAR(ref); est != statusSuccess {
				if _, ust := r.readUCHAR(ref); ust != statusSuccess {
					return r.err(ust, "invalid escape '\\%c'", r.peekByte())
				}
			}
		default:
			if c == int(q) {
				r.skipByte(c)
				return statusSuccess
			}
			if c == '"' {
				r.stack.orFlags(ref, FlagHasQuote)
			}
			st = r.readCharacter(ref, byte(r.eatByte()))
		}
	}

	if r.tolerate(st) {
		return statusSuccess
	}
	return st
}

// adjustBlankID rewrites the case of machine-generated-looking labels so
// they cannot collide with the IDs this reader synthesizes, and reports a
// clash when both case variants occur without an explicit prefix.
func (r *Reader) adjustBlankID(dest nodeID) status {
	if len(r.bprefix) > 0 {
		return statusSuccess
	}
	buf := r.stack.bytes(dest)
	if len(buf) < 2 || !isDigit(int(buf[1])) {
		return statusSuccess
	}
	switch buf[0] {
	case 'b':
		// Presumably generated ID like b123 in the input, adjust to B123
		buf[0] = 'B'
		r.seenGenID = true
	case 'B':
		if r.seenGenID {
			// Both b123 and B123 styles seen, abort due to possible clashes
			return r.err(statusBadLabel,
				"found both 'b' and 'B' blank IDs, prefix required")
		}
	}
	return statusSuccess
}

// readBlankNodeLabel reads [141s] BLANK_NODE_LABEL. ateDot is set if a
// trailing '.' was consumed and turned out to end the statement.
func (r *Reader) readBlankNodeLabel(ateDot *bool) (nodeID, status) {
	r.skipByte('_')
	if st := r.eatByteCheck(':'); st != statusSuccess {
		return nodeNone, st
	}

	dest, st := r.stack.pushNode(NodeBlank, r.bprefix)
	if st != statusSuccess {
		return nodeNone, r.err(st, "node stack exhausted")
	}

	// Read first: (PN_CHARS_U | [0-9])
	if c := r.peekByte(); isDigit(c) {
		if st = r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
			return nodeNone, st
		}
	} else if st = r.readPNCharsU(dest); st != statusSuccess {
		if st > statusFailure {
			return nodeNone, st
		}
		return nodeNone, r.err(statusBadSyntax, "expected blank node label")
	}

	// Read middle: (PN_CHARS | '.')*
	st = statusSuccess
	for st == statusSuccess {
		if c := r.peekByte(); c == '.' {
			st = r.pushByte(dest, byte(r.eatByte()))
		} else {
			st = r.readPNChars(dest)
		}
	}
	if st > statusFailure {
		return nodeNone, st
	}

	// Deal with the annoying edge case of having eaten the trailing dot
	buf := r.stack.bytes(dest)
	if len(buf) > 0 && buf[len(buf)-1] == '.' {
		r.stack.popByte(dest)
		*ateDot = true
	}

	// Adjust the label to avoid clashes with generated IDs if necessary
	if st = r.adjustBlankID(dest); st != statusSuccess && !r.tolerate(st) {
		return nodeNone, st
	}

	return dest, statusSuccess
}

// readUCHAR reads [10] UCHAR after the backslash, returning the decoded
// code point.
func (r *Reader) readUCHAR(node nodeID) (uint32, status) {
	var length int
	switch r.peekByte() {
	case 'U':
		length = 8
	case 'u':
		length = 4
	default:
		return 0, r.err(statusBadSyntax, "expected 'U' or 'u'")
	}
	r.skipByte(r.peekByte())

	var code uint32
	for i := 0; i < length; i++ {
		h := r.readHex()
		if h == 0 {
			return 0, statusBadSyntax
		}
		code = code<<4 | uint32(hexValue(h))
	}

	var buf [4]byte
	size := utf8FromCodePoint(&buf, code)
	if size == 0 {
		if r.strict {
			return 0xFFFD, r.err(statusBadSyntax, "U+%X is out of range", code)
		}
		return 0xFFFD, r.pushBytes(node, replacementChar)
	}

	return code, r.pushBytes(node, buf[:size])
}

func hexValue(h byte) byte {
	switch {
	case h >= '0' && h <= '9':
		return h - '0'
	case h >= 'A' && h <= 'F':
		return h - 'A' + 10
	}
	return h - 'a' + 10
}

// readECHAR reads [153s] ECHAR after the backslash.
func (r *Reader) readECHAR(dest nodeID) status {
	c := r.peekByte()
	switch c {
	case 't':
		r.skipByte(c)
		return r.pushByte(dest, '\t')
	case 'b':
		r.skipByte(c)
		return r.pushByte(dest, '\b')
	case 'n':
		r.skipByte(c)
		r.stack.orFlags(dest, FlagHasNewline)
		return r.pushByte(dest, '\n')
	case 'r':
		r.skipByte(c)
		r.stack.orFlags(dest, FlagHasNewline)
		return r.pushByte(dest, '\r')
	case 'f':
		r.skipByte(c)
		return r.pushByte(dest, '\f')
	case '\\', '\'':
		return r.pushByte(dest, byte(r.eatByte()))
	case '"':
		r.stack.orFlags(dest, FlagHasQuote)
		return r.pushByte(dest, byte(r.eatByte()))
	default:
		return statusBadSyntax
	}
}

// readPNCharsBase reads one [157s] PN_CHARS_BASE character.
func (r *Reader) readPNCharsBase(dest nodeID) status {
	c := r.peekByte()
	if isAlpha(c) {
		return r.pushByte(dest, byte(r.eatByte()))
	}
	if c == eofByte || c&0x80 == 0 {
		return statusFailure
	}

	code, st := r.readUTF8CodePoint(dest, byte(c))
	if st != statusSuccess {
		return st
	}
	if !isPNCharsBase(code) {
		st = r.err(statusBadSyntax, "U+%04X is not a valid name character", code)
		if r.strict {
			return st
		}
	}
	return statusSuccess
}

// readPNCharsU reads one [158s] PN_CHARS_U character.
func (r *Reader) readPNCharsU(dest nodeID) status {
	switch c := r.peekByte(); c {
	case ':', '_':
		return r.pushByte(dest, byte(r.eatByte()))
	}
	return r.readPNCharsBase(dest)
}

// readPNChars reads one [160s] PN_CHARS character.
func (r *Reader) readPNChars(dest nodeID) status {
	c := r.peekByte()
	if c == eofByte {
		return statusNoData
	}
	if isAlpha(c) || isDigit(c) || c == '_' || c == '-' {
		return r.pushByte(dest, byte(r.eatByte()))
	}
	if c&0x80 == 0 {
		return statusFailure
	}

	code, st := r.readUTF8CodePoint(dest, byte(c))
	if st != statusSuccess {
		return st
	}
	if !isPNChars(code) {
		return r.err(statusBadSyntax, "U+%04X is not a valid name character", code)
	}
	return statusSuccess
}

// readHex reads one [162s] HEX digit, or returns 0.
func (r *Reader) readHex() byte {
	c := r.peekByte()
	if isHexDigit(c) {
		return byte(r.eatByte())
	}
	r.err(statusBadSyntax, "invalid hexadecimal digit %q", byte(c))
	return 0
}

// readVarName reads VARNAME, simplified from SPARQL to
// (PN_CHARS_U | [0-9])+.
func (r *Reader) readVarName(dest nodeID) status {
	for {
		c := r.peekByte()
		if c == eofByte {
			return statusSuccess
		}
		if isDigit(c) || c == '_' {
			if st := r.pushByte(dest, byte(r.eatByte())); st != statusSuccess {
				return st
			}
			continue
		}
		if st := r.readPNChars(dest); st != statusSuccess {
			if st > statusFailure {
				return st
			}
			return statusSuccess
		}
	}
}

// readVar reads a ?name or $name variable, if the extension is enabled.
func (r *Reader) readVar() (nodeID, status) {
	if !r.variables {
		return nodeNone, r.err(statusBadSyntax, "syntax does not support variables")
	}

	dest, st := r.pushNode(NodeVariable, "")
	if st != statusSuccess {
		return nodeNone, st
	}
	r.skipByte(r.peekByte())
	return dest, r.readVarName(dest)
}

// readComment reads comment ::= '#' ( [^#xA #xD] )*
func (r *Reader) readComment() status {
	r.skipByte('#')
	for c := r.peekByte(); c != eofByte && c != '\n' && c != '\r'; c = r.peekByte() {
		r.skipByte(c)
	}
	return statusSuccess
}

// readNTLiteral reads [6] literal in the strict syntaxes, where only
// double-quoted short strings and absolute datatype IRIs are permitted.
func (r *Reader) readNTLiteral() (nodeID, status) {
	dest, st := r.pushNode(NodeLiteral, "")
	if st != statusSuccess {
		return nodeNone, st
	}

	r.skipByte('"')
	if st = r.readStringLiteral(dest, '"'); st != statusSuccess {
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
		if r.peekByte() != '<' {
			return nodeNone, r.err(statusBadSyntax, "expected datatype IRI")
		}
		if _, st = r.readIRI(); st != statusSuccess {
			return nodeNone, st
		}
	}
	return dest, statusSuccess
}

// readNTSubject reads [3] subject.
func (r *Reader) readNTSubject() (nodeID, status) {
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

// readNTPredicate reads [4] predicate.
func (r *Reader) readNTPredicate() (nodeID, status) {
	if c := r.peekByte(); c == '?' || c == '$' {
		return r.readVar()
	}
	if r.peekByte() != '<' {
		return nodeNone, r.err(statusBadSyntax, "expected '<'")
	}
	return r.readIRI()
}

// readNTObject reads [5] object.
func (r *Reader) readNTObject(ateDot *bool) (nodeID, status) {
	*ateDot = false
	switch r.peekByte() {
	case '"':
		return r.readNTLiteral()
	case '<':
		return r.readIRI()
	case '?', '$':
		return r.readVar()
	case '_':
		return r.readBlankNodeLabel(ateDot)
	}
	return nodeNone, r.err(statusBadSyntax, `expected '<', '_', or '"'`)
}

// readTriple reads [2] triple and emits it.
func (r *Reader) readTriple() status {
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

	// Preserve the caret for error reporting and read the object
	origCaret := r.source.caret
	object, st := r.readNTObject(&ateDot)
	if st != statusSuccess {
		return st
	}
	r.skipHorizontalWhitespace()

	if !ateDot {
		if st = r.eatByteCheck('.'); st != statusSuccess {
			return st
		}
	}

	return r.emitStatementAt(ctx, object, origCaret)
}

// readLine reads one line: a statement, a comment, or nothing.
func (r *Reader) readLine() status {
	r.skipHorizontalWhitespace()

	var st status
	switch r.peekByte() {
	case eofByte:
		return statusFailure
	case '\n', '\r':
		return r.readEOL()
	case '#':
		st = r.readComment()
	default:
		if r.syntax == NQuads {
			st = r.readQuadStatement()
		} else {
			st = r.readTriple()
		}
		if st == statusSuccess {
			r.skipHorizontalWhitespace()
			if r.peekByte() == '#' {
				st = r.readComment()
			}
		}
	}

	if st != statusSuccess || r.peekByte() == eofByte {
		return st
	}
	return r.readEOL()
}

// readLineDoc reads [1] ntriplesDoc / nquadsDoc: every line until the input
// is exhausted, resynchronizing after tolerated errors.
func (r *Reader) readLineDoc() status {
	mark := r.stack.mark()

	st := statusSuccess
	for st == statusSuccess {
		st = r.readLine()
		r.stack.popTo(mark)

		if r.source.ioErr != nil {
			return r.err(statusInternal, "read error: %v", r.source.ioErr)
		}
		if st > statusFailure && !r.strict && r.tolerate(st) {
			r.skipUntilByte('\n')
			st = statusSuccess
		}
	}

	if st > statusFailure {
		return st
	}
	return statusSuccess
}
