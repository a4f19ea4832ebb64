package writers

import (
	"errors"
	"io"
	"syscall"

	"readprep/internal/read"
	"readprep/pkg/api"
)

// MissingQuality fills the quality line of FASTQ output for reads that
// were ingested without one.
const MissingQuality = 'I'

// Record is one single-end read or one pair.
type Record struct {
	Mate1 *read.Read
	Mate2 *read.Read // nil for single-end
}

// Accession is the record name: mate 1's accession, or "" when absent.
func (r Record) Accession() []byte { return r.Mate1.Accession() }

// mate2Accession is mate 2's own accession when it has one.
func (r Record) mate2Accession() []byte {
	if r.Mate2.HasAccession() {
		return r.Mate2.Accession()
	}
	return r.Mate1.Accession()
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// ToAPI converts a Record to its v1 wire form.
func ToAPI(r Record) api.ReadV1 {
	v := api.ReadV1{
		Accession: string(r.Mate1.Accession()),
		Remainder: string(r.Mate1.Remainder()),
		Mate1:     toAPIMate(r.Mate1),
	}
	if r.Mate2 != nil {
		m2 := toAPIMate(r.Mate2)
		v.Mate2 = &m2
		if ov := r.Mate1.Overlap(); ov > 0 {
			v.Overlap = ov
		}
	}
	return v
}

func toAPIMate(m *read.Read) api.MateV1 {
	return api.MateV1{
		Sequence:  string(m.Contents()),
		Quality:   string(m.Quality()),
		Barcode:   string(m.Barcode()),
		EndTrim:   string(m.EndTrim()),
		LeftChop:  string(m.LeftChop()),
		RightChop: string(m.RightChop()),
		Inverted:  m.Inverted(),
		Filtered:  m.Filter(),
		Length:    m.FullLength(),
	}
}
