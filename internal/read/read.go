// internal/read/read.go
package read

// OverlapUnknown marks a mate-overlap length that has not been computed.
const OverlapUnknown = -1

// Read is one sequencing read after normalization.
type Read struct {
	accession []byte // nil = absent (suppressed second mate)
	remainder []byte
	filter    bool
	inverted  bool

	buf     []byte // contents | upper | revcomp | quality, n bytes each
	n       int
	hasQual bool
	lo, hi  int // active window over contents

	barcode []byte
	endtrim []byte

	overlap int
}

func (r *Read) Accession() []byte { return r.accession }
func (r *Read) HasAccession() bool { return r.accession != nil }
func (r *Read) Remainder() []byte { return r.remainder }

// Filter reports whether downstream stages should skip this read.
func (r *Read) Filter() bool   { return r.filter }
func (r *Read) Inverted() bool { return r.inverted }

// SetAccession replaces the accession; nil marks it absent.
func (r *Read) SetAccession(acc []byte) { r.accession = acc }

// FullLength is the length of the active region.
func (r *Read) FullLength() int { return r.hi - r.lo }

// Contents is the active sequence as parsed (case preserved).
func (r *Read) Contents() []byte { return r.buf[r.lo:r.hi] }

// Upper is the upper-cased active sequence.
func (r *Read) Upper() []byte { return r.buf[r.n+r.lo : r.n+r.hi] }

// RevComp is the reverse complement of Upper.
func (r *Read) RevComp() []byte {
	base := 2 * r.n
	return r.buf[base+r.n-r.hi : base+r.n-r.lo]
}

// Quality is the active quality string, or nil when the read has none.
func (r *Read) Quality() []byte {
	if !r.hasQual {
		return nil
	}
	return r.buf[3*r.n+r.lo : 3*r.n+r.hi]
}

func (r *Read) HasQuality() bool { return r.hasQual }

func (r *Read) LeftChop() []byte     { return r.buf[:r.lo] }
func (r *Read) RightChop() []byte    { return r.buf[r.hi:r.n] }
func (r *Read) LeftChopLength() int  { return r.lo }
func (r *Read) RightChopLength() int { return r.n - r.hi }

func (r *Read) LeftChopQuality() []byte {
	if !r.hasQual {
		return nil
	}
	return r.buf[3*r.n : 3*r.n+r.lo]
}

func (r *Read) RightChopQuality() []byte {
	if !r.hasQual {
		return nil
	}
	return r.buf[3*r.n+r.hi : 4*r.n]
}

func (r *Read) Barcode() []byte    { return r.barcode }
func (r *Read) BarcodeLength() int { return len(r.barcode) }
func (r *Read) EndTrim() []byte    { return r.endtrim }
func (r *Read) EndTrimLength() int { return len(r.endtrim) }

// ChopLeft excises k bases from the start of the active region and
// returns the number actually removed.
func (r *Read) ChopLeft(k int) int {
	if k <= 0 {
		return 0
	}
	if k > r.FullLength() {
		k = r.FullLength()
	}
	r.lo += k
	return k
}

// ChopRight excises k bases from the end of the active region.
func (r *Read) ChopRight(k int) int {
	if k <= 0 {
		return 0
	}
	if k > r.FullLength() {
		k = r.FullLength()
	}
	r.hi -= k
	return k
}

// Overlap returns the cached mate-overlap length or OverlapUnknown.
func (r *Read) Overlap() int { return r.overlap }

func (r *Read) SetOverlap(n int) { r.overlap = n }
