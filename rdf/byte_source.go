package rdf

import (
	"io"
	"os"
)

// eofByte is returned by peek when the input is exhausted.
const eofByte = -1

// byteSource is a buffered, page-oriented byte stream with one byte of
// lookahead. The grammar never looks further ahead than that, which is what
// permits a page size of one for interactive or socket sources.
type byteSource struct {
	r        io.Reader // nil when reading from an in-memory string
	closer   io.Closer
	buf      []byte
	pageSize int
	bufLen   int // bytes valid in buf
	head     int // offset of the next unread byte
	caret    Caret
	prepared bool
	eof      bool
	ioErr    error
	readErr  error // error returned alongside data, reported once consumed
}

// newStringByteSource reads from an in-memory string in a single page.
func newStringByteSource(input, name string) *byteSource {
	if name == "" {
		name = "string"
	}
	return &byteSource{
		buf:      []byte(input),
		pageSize: len(input),
		bufLen:   len(input),
		caret:    Caret{Name: name, Line: 1, Col: 1},
		eof:      len(input) == 0,
	}
}

// newFileByteSource reads pages of pageSize bytes from a file.
func newFileByteSource(path string, pageSize int) (*byteSource, error) {
	if pageSize < 1 {
		return nil, ErrBadCall
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := newStreamByteSource(f, path, pageSize)
	s.closer = f
	return s, nil
}

// newStreamByteSource reads pages from an arbitrary reader, for sockets,
// pipes, and caller-supplied sources. A page size of one reads the stream
// byte-at-a-time, so statements can be parsed as soon as they arrive.
func newStreamByteSource(r io.Reader, name string, pageSize int) *byteSource {
	if pageSize < 1 {
		pageSize = 1
	}
	if name == "" {
		name = "stream"
	}
	return &byteSource{
		r:        r,
		buf:      make([]byte, pageSize),
		pageSize: pageSize,
		caret:    Caret{Name: name, Line: 1, Col: 1},
	}
}

// page refills the buffer with a single read from the backend. Short reads
// are accepted as partial pages, so slow sources like sockets stay
// responsive at any page size. A read of zero bytes distinguishes clean
// end-of-input (statusFailure) from a stream error (statusInternal).
func (s *byteSource) page() status {
	s.head = 0
	if s.readErr != nil {
		s.bufLen = 0
		s.eof = true
		if s.readErr == io.EOF {
			return statusFailure
		}
		s.ioErr = s.readErr
		return statusInternal
	}
	for retries := 0; retries < 100; retries++ {
		n, err := s.r.Read(s.buf[:s.pageSize])
		s.bufLen = n
		if n > 0 {
			s.eof = false
			// Consume the bytes now, report any error with the next page.
			s.readErr = err
			return statusSuccess
		}
		if err == io.EOF {
			s.eof = true
			return statusFailure
		}
		if err != nil {
			s.ioErr = err
			s.eof = true
			return statusInternal
		}
	}
	s.bufLen = 0
	s.eof = true
	s.ioErr = io.ErrNoProgress
	return statusInternal
}

// prepare readies the source for its first read.
func (s *byteSource) prepare() status {
	s.prepared = true
	if s.r == nil {
		return statusSuccess
	}
	return s.page()
}

// peek returns the byte at the current offset, or eofByte.
func (s *byteSource) peek() int {
	if s.eof || s.head >= s.bufLen {
		return eofByte
	}
	return int(s.buf[s.head])
}

// advance consumes the peeked byte, updating the caret and refilling the
// page at the boundary. Advancing while already at end-of-input is a
// failure; a backend error during refill is internal.
func (s *byteSource) advance() status {
	if s.eof || s.head >= s.bufLen {
		return statusFailure
	}

	if s.buf[s.head] == '\n' {
		s.caret.Line++
		s.caret.Col = 1
	} else {
		s.caret.Col++
	}

	s.head++
	if s.head >= s.bufLen {
		if s.r == nil {
			s.eof = true
			return statusSuccess
		}
		if st := s.page(); st == statusInternal {
			return st
		}
	}
	return statusSuccess
}

// close releases the backing stream, if this source owns one.
func (s *byteSource) close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

// skipBOM consumes a leading UTF-8 byte order mark, if present.
func (s *byteSource) skipBOM() status {
	if s.peek() != 0xEF {
		return statusSuccess
	}
	s.advance()
	if s.peek() != 0xBB {
		return statusBadSyntax
	}
	s.advance()
	if s.peek() != 0xBF {
		return statusBadSyntax
	}
	s.advance()
	return statusSuccess
}
