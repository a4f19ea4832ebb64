// Package lineio tokenizes a source.Source into lines using per-instance
// scratch space.
package lineio

import (
	"bufio"

	"readprep/internal/source"
)

// InlineCap is the capacity of the inline line buffer. Longer lines fall
// back to a freshly allocated growable buffer.
const InlineCap = 300

// Reader reads lines from a stream whose next byte is already known to
// the caller. A Reader is not safe for concurrent use; give each
// goroutine its own.
type Reader struct {
	src    source.Source
	inline [InlineCap]byte
	long   int // lines that overflowed InlineCap
}

func New(src source.Source) *Reader { return &Reader{src: src} }

// Reset points the reader at a new stream, keeping its scratch space.
func (r *Reader) Reset(src source.Source) { r.src = src }

// Peek returns the current lookahead byte or source.EOF.
func (r *Reader) Peek() int {
	if r.src == nil {
		return source.EOF
	}
	return r.src.Peek()
}

// LongLines reports how many lines took the overflow path.
func (r *Reader) LongLines() int { return r.long }

// ReadSequence reads one line, drops the line terminator and deletes
// every space character. An inline result aliases the reader's scratch
// and is valid until the next call; owned reports a separately allocated
// result. next is the first byte of the following line or source.EOF.
func (r *Reader) ReadSequence() (line []byte, owned bool, next int) {
	return r.read(false)
}

// ReadHeader is ReadSequence without space deletion.
func (r *Reader) ReadHeader() (line []byte, owned bool, next int) {
	return r.read(true)
}

func (r *Reader) read(keepSpaces bool) ([]byte, bool, int) {
	line, err := r.src.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return r.readLong(line, keepSpaces)
	}
	// any other error ends the line with whatever was read
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if len(line) > InlineCap {
		return r.readLong(line, keepSpaces)
	}
	n := copy(r.inline[:], line)
	return clean(r.inline[:n], keepSpaces), false, r.src.Peek()
}

// readLong continues a line that did not fit inline, starting from the
// part already read.
func (r *Reader) readLong(head []byte, keepSpaces bool) ([]byte, bool, int) {
	r.long++
	buf := make([]byte, 0, 4*InlineCap+len(head))
	buf = append(buf, head...)
	for len(buf) == 0 || buf[len(buf)-1] != '\n' {
		more, err := r.src.ReadSlice('\n')
		buf = append(buf, more...)
		if err != nil && err != bufio.ErrBufferFull {
			break
		}
	}
	if n := len(buf); n > 0 && buf[n-1] == '\n' {
		buf = buf[:n-1]
	}
	return clean(buf, keepSpaces), true, r.src.Peek()
}

// SkipLine discards the rest of the current line.
func (r *Reader) SkipLine() int {
	for {
		b, err := r.src.ReadByte()
		if err != nil || b == '\n' {
			return r.src.Peek()
		}
	}
}

// SkipBlank consumes control characters, spaces and empty lines.
func (r *Reader) SkipBlank() int {
	for {
		c := r.src.Peek()
		if c == source.EOF || c > ' ' {
			return c
		}
		if _, err := r.src.ReadByte(); err != nil {
			return source.EOF
		}
	}
}

func clean(line []byte, keepSpaces bool) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if keepSpaces {
		return line
	}
	w := 0
	for _, b := range line {
		if b != ' ' {
			line[w] = b
			w++
		}
	}
	return line[:w]
}
