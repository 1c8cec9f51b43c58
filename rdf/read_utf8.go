package rdf

// Multi-byte UTF-8 handling shared by the string, IRI and name productions.
// In strict mode a malformed sequence is a syntax error; in lax mode the
// whole bad sequence is skipped and replaced with a single U+FFFD.

func (r *Reader) skipInvalidUTF8() status {
	for b := r.peekByte(); b != eofByte && b&0x80 != 0; b = r.peekByte() {
		r.skipByte(b)
	}
	if r.strict {
		return statusBadSyntax
	}
	return statusFailure
}

func (r *Reader) badChar(format string, c byte) status {
	r.err(statusBadSyntax, format, c)
	return r.skipInvalidUTF8()
}

// readUTF8ContinuationBytes fills bytes with the full sequence started by
// lead, whose leading byte has already been consumed.
func (r *Reader) readUTF8ContinuationBytes(bytes *[4]byte, lead byte) (int, status) {
	size := utf8NumBytes(lead)
	if size < 2 {
		return 0, r.badChar("0x%X is not a UTF-8 leading byte", lead)
	}

	bytes[0] = lead
	for i := 1; i < size; i++ {
		b := r.peekByte()
		if b == eofByte {
			return 0, r.err(statusNoData, "unexpected end of input")
		}
		if b&0xC0 != 0x80 {
			return 0, r.badChar("0x%X is not a UTF-8 continuation byte", byte(b))
		}
		r.skipByte(b)
		bytes[i] = byte(b)
	}
	return size, statusSuccess
}

// readUTF8Continuation pushes the multi-byte sequence started by the
// already-consumed lead byte onto dest.
func (r *Reader) readUTF8Continuation(dest nodeID, lead byte) status {
	var bytes [4]byte
	size, st := r.readUTF8ContinuationBytes(&bytes, lead)
	if st != statusSuccess {
		if r.strict || st.fatal() {
			return st
		}
		return r.pushBytes(dest, replacementChar)
	}
	return r.pushBytes(dest, bytes[:size])
}

// readUTF8CodePoint is readUTF8Continuation for callers that also need the
// decoded code point, to validate it against a character class. The lead
// byte has not yet been consumed.
func (r *Reader) readUTF8CodePoint(dest nodeID, lead byte) (rune, status) {
	r.skipByte(int(lead))

	var bytes [4]byte
	size, st := r.readUTF8ContinuationBytes(&bytes, lead)
	if st != statusSuccess {
		if r.strict || st.fatal() {
			return 0, st
		}
		return 0xFFFD, r.pushBytes(dest, replacementChar)
	}
	if st := r.pushBytes(dest, bytes[:size]); st != statusSuccess {
		return 0, st
	}
	return parseUTF8(bytes[:size]), statusSuccess
}
