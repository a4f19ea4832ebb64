// Package source provides the byte-stream contract the ingest layer reads
// from, plus adapters for plain and compressed files.
//
// Every backend is an io.Reader layered under a single bufio.Reader, so
// parsing code never knows where the bytes came from.
package source

import (
	"bufio"
	"io"
)

// EOF is the lookahead value returned by Peek at end of stream.
const EOF = -1

// Source is a buffered byte stream with one byte of lookahead.
type Source interface {
	// Peek returns the next byte without consuming it, or EOF.
	Peek() int
	// PeekN returns up to n buffered bytes without consuming them.
	PeekN(n int) []byte
	ReadByte() (byte, error)
	// ReadSlice reads through delim; see bufio.Reader.ReadSlice.
	ReadSlice(delim byte) ([]byte, error)
	Close() error
}

// Opener opens a named input. Open is the default.
type Opener func(path string) (Source, error)

const bufSize = 64 << 10

type bufSource struct {
	r       *bufio.Reader
	closers []io.Closer // innermost last
}

func (s *bufSource) Peek() int {
	b, err := s.r.Peek(1)
	if err != nil || len(b) == 0 {
		return EOF
	}
	return int(b[0])
}

func (s *bufSource) PeekN(n int) []byte {
	b, _ := s.r.Peek(n)
	return b
}

func (s *bufSource) ReadByte() (byte, error) { return s.r.ReadByte() }

func (s *bufSource) ReadSlice(delim byte) ([]byte, error) { return s.r.ReadSlice(delim) }

// Close closes every layer and returns the first error.
func (s *bufSource) Close() error {
	var err error
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	s.closers = nil
	return err
}

// FromReader wraps an already-decoded stream. If r is an io.Closer it is
// closed by Close.
func FromReader(r io.Reader) Source {
	s := &bufSource{r: bufio.NewReaderSize(r, bufSize)}
	if c, ok := r.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	return s
}
