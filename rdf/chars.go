package rdf

// Character classes from the Turtle and NTriples grammars. These operate on
// single bytes where the grammar is ASCII-only, and on decoded code points
// for the PN_CHARS family.

func isAlpha(c int) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isURISchemeChar matches scheme ::= ALPHA (ALPHA | DIGIT | '+' | '-' | '.')*
// after the leading character.
func isURISchemeChar(c int) bool {
	return isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.'
}

// isPNCharsBase matches [157s] PN_CHARS_BASE on a decoded code point.
func isPNCharsBase(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= 0x00C0 && c <= 0x00D6) || (c >= 0x00D8 && c <= 0x00F6) ||
		(c >= 0x00F8 && c <= 0x02FF) || (c >= 0x0370 && c <= 0x037D) ||
		(c >= 0x037F && c <= 0x1FFF) || (c >= 0x200C && c <= 0x200D) ||
		(c >= 0x2070 && c <= 0x218F) || (c >= 0x2C00 && c <= 0x2FEF) ||
		(c >= 0x3001 && c <= 0xD7FF) || (c >= 0xF900 && c <= 0xFDCF) ||
		(c >= 0xFDF0 && c <= 0xFFFD) || (c >= 0x10000 && c <= 0xEFFFF)
}

// isPNChars matches [160s] PN_CHARS on a decoded code point.
func isPNChars(c rune) bool {
	return isPNCharsBase(c) || c == '-' || c == '_' ||
		(c >= '0' && c <= '9') || c == 0x00B7 ||
		(c >= 0x0300 && c <= 0x036F) || (c >= 0x203F && c <= 0x2040)
}

// isPNLocalEsc matches the characters that may follow a backslash in a
// prefixed name's local part ([172s] PN_LOCAL_ESC).
func isPNLocalEsc(c int) bool {
	switch c {
	case '!', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.',
		'/', ';', '=', '?', '@', '_', '~':
		return true
	}
	return false
}

// utf8NumBytes returns the sequence length implied by a UTF-8 leading byte,
// or 0 if the byte cannot start a multi-byte sequence.
func utf8NumBytes(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// utf8NumBytesForCodePoint returns the encoded length of a code point, or 0
// if it is a surrogate or beyond the Unicode range.
func utf8NumBytesForCodePoint(code uint32) int {
	switch {
	case code < 0x80:
		return 1
	case code < 0x800:
		return 2
	case code >= 0xD800 && code <= 0xDFFF:
		return 0 // surrogate
	case code < 0x10000:
		return 3
	case code <= 0x10FFFF:
		return 4
	}
	return 0
}

// utf8FromCodePoint writes the UTF-8 encoding of code into out and returns
// the number of bytes written, or 0 for invalid code points.
func utf8FromCodePoint(out *[4]byte, code uint32) int {
	size := utf8NumBytesForCodePoint(code)
	c := code
	if size == 4 {
		out[3] = byte(0x80 | (c & 0x3F))
		c >>= 6
		c |= 0x10000
	}
	if size >= 3 {
		out[2] = byte(0x80 | (c & 0x3F))
		c >>= 6
		c |= 0x800
	}
	if size >= 2 {
		out[1] = byte(0x80 | (c & 0x3F))
		c >>= 6
		c |= 0xC0
	}
	if size >= 1 {
		out[0] = byte(c)
	}
	return size
}

// parseUTF8 decodes a complete, already-validated UTF-8 sequence.
func parseUTF8(bytes []byte) rune {
	switch len(bytes) {
	case 2:
		return rune(bytes[0]&0x1F)<<6 | rune(bytes[1]&0x3F)
	case 3:
		return rune(bytes[0]&0x0F)<<12 | rune(bytes[1]&0x3F)<<6 |
			rune(bytes[2]&0x3F)
	case 4:
		return rune(bytes[0]&0x07)<<18 | rune(bytes[1]&0x3F)<<12 |
			rune(bytes[2]&0x3F)<<6 | rune(bytes[3]&0x3F)
	}
	return rune(bytes[0])
}

// replacementChar is the UTF-8 encoding of U+FFFD, substituted for
// unrecoverable byte sequences in lax mode.
var replacementChar = []byte{0xEF, 0xBF, 0xBD}
