// internal/read/build.go
package read

import "readprep/internal/seq"

// Status is the outcome of Builder.Build.
type Status int

const (
	Built     Status = iota
	Empty            // zero-length sequence; caller moves on to the next record
	Skipped          // skip mode; nothing was kept
	Malformed        // quality length disagrees with sequence length
)

func (s Status) String() string {
	switch s {
	case Built:
		return "built"
	case Empty:
		return "empty"
	case Skipped:
		return "skipped"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Builder turns one parsed header+sequence(+quality) unit into a Read.
// A zero Builder keeps the sequence as-is.
type Builder struct {
	BarcodeLength int
	EndTrimLength int
	// Invert reverse-complements the sequence (and reverses the quality)
	// so that a second mate reads on the same strand as the first.
	Invert bool
	// PolyTrim, when set, runs as the last step of construction.
	PolyTrim func(*Read)
}

// Build copies its inputs; none of the argument slices are retained.
// qual may be nil. acc may be nil for a second mate without its own
// accession.
func (b Builder) Build(acc, remainder []byte, filter bool, sequence, qual []byte, skip bool) (*Read, Status) {
	if len(sequence) == 0 {
		return nil, Empty
	}
	if skip {
		return nil, Skipped
	}
	if qual != nil && len(qual) != len(sequence) {
		return nil, Malformed
	}

	bc := clamp(b.BarcodeLength, len(sequence))
	et := clamp(b.EndTrimLength, len(sequence)-bc)

	r := &Read{
		accession: clone(acc),
		remainder: clone(remainder),
		filter:    filter,
		inverted:  b.Invert,
		barcode:   clone(sequence[:bc]),
		endtrim:   clone(sequence[len(sequence)-et:]),
		overlap:   OverlapUnknown,
	}
	if acc != nil && r.accession == nil {
		r.accession = []byte{}
	}
	if r.remainder == nil {
		r.remainder = []byte{}
	}

	body := sequence[bc : len(sequence)-et]
	n := len(body)
	r.n, r.lo, r.hi = n, 0, n
	r.buf = make([]byte, 4*n)

	contents := r.buf[:n]
	if b.Invert {
		seq.RevComp(contents, body)
	} else {
		copy(contents, body)
	}
	seq.ToUpper(r.buf[n:2*n], contents)
	seq.RevComp(r.buf[2*n:3*n], r.buf[n:2*n])

	if qual != nil {
		r.hasQual = true
		q := qual[bc : len(qual)-et]
		if b.Invert {
			seq.Reverse(r.buf[3*n:], q)
		} else {
			copy(r.buf[3*n:], q)
		}
	}

	if b.PolyTrim != nil {
		b.PolyTrim(r)
	}
	return r, Built
}

func clamp(k, max int) int {
	if k < 0 {
		return 0
	}
	if k > max {
		return max
	}
	return k
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
