// Package header extracts the accession, the rest of the header, and the
// chastity filter flag from a read header line.
package header

// Format selects the header grammar.
type Format int

const (
	FASTA Format = iota
	FASTQ
	Interleaved
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	case Interleaved:
		return "tsv"
	}
	return "unknown"
}

// FieldRange selects the whitespace-delimited tokens, 0-based and
// inclusive, that make up a FASTQ accession. The zero value is the first
// token.
type FieldRange struct {
	Start, End int
}

// ChastityMode controls the Illumina pass/fail flag in FASTQ headers.
type ChastityMode int

const (
	ChastityOff ChastityMode = iota
	// ChastityFilter marks reads flagged Y as filtered.
	ChastityFilter
	// ChastityKeep filters like ChastityFilter and also strips the
	// "<read>:<Y|N>:" prefix from the stored remainder.
	ChastityKeep
)

func (m ChastityMode) String() string {
	switch m {
	case ChastityFilter:
		return "filter"
	case ChastityKeep:
		return "keep"
	}
	return "off"
}

// Header is a parsed header. Accession and Remainder never alias the
// input line.
type Header struct {
	Accession []byte
	Remainder []byte
	Filter    bool
	skipped   bool
}

// Skipped is returned for headers parsed in skip mode.
var Skipped = Header{skipped: true}

func (h Header) IsSkipped() bool { return h.skipped }

// Parser parses header lines of one format.
type Parser struct {
	Format   Format
	Fields   FieldRange
	Chastity ChastityMode
}

type span struct{ s, e int }

// Parse parses line, which may still carry its leading '>' or '@'.
func (p Parser) Parse(line []byte, skip bool) Header {
	if skip {
		return Skipped
	}
	if len(line) > 0 && (line[0] == '>' || line[0] == '@') {
		line = line[1:]
	}
	if p.Format == Interleaved {
		return Header{Accession: append([]byte{}, line...), Remainder: []byte{}}
	}

	toks := tokens(line)
	if len(toks) == 0 {
		return Header{Accession: []byte{}, Remainder: []byte{}}
	}
	first, last := 0, 0
	if p.Format == FASTQ {
		first, last = p.Fields.Start, p.Fields.End
		if first >= len(toks) {
			first = len(toks) - 1
		}
		if first < 0 {
			first = 0
		}
		if last >= len(toks) {
			last = len(toks) - 1
		}
		if last < first {
			last = first
		}
	}
	acc := line[toks[first].s:toks[last].e]
	before := trim(line[:toks[first].s])
	after := trim(line[toks[last].e:])

	// the chastity token is the one right after the accession
	var filter bool
	if p.Format == FASTQ && p.Chastity != ChastityOff {
		filter = chastityFailed(after)
		if p.Chastity == ChastityKeep && hasChastityPrefix(after) {
			after = after[4:]
		}
	}

	// one allocation backs both slices
	buf := make([]byte, 0, len(acc)+len(before)+len(after)+1)
	buf = append(buf, acc...)
	h := Header{Accession: buf[:len(acc):len(acc)]}
	rest := buf[len(acc):]
	rest = append(rest, before...)
	if len(before) > 0 && len(after) > 0 {
		rest = append(rest, ' ')
	}
	rest = append(rest, after...)
	h.Remainder = rest
	h.Filter = filter
	return h
}

// chastityFailed reads the flag after the first colon: "1:Y:0:ACGT".
func chastityFailed(rem []byte) bool {
	for i, b := range rem {
		if b == ':' {
			return i+1 < len(rem) && rem[i+1] == 'Y'
		}
		if isSpace(b) {
			return false
		}
	}
	return false
}

func hasChastityPrefix(rem []byte) bool {
	return len(rem) >= 4 &&
		rem[0] >= '0' && rem[0] <= '9' &&
		rem[1] == ':' &&
		(rem[2] == 'Y' || rem[2] == 'N') &&
		rem[3] == ':'
}

func tokens(line []byte) []span {
	var out []span
	i := 0
	for i < len(line) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}
		s := i
		for i < len(line) && !isSpace(line[i]) {
			i++
		}
		out = append(out, span{s, i})
	}
	return out
}

func trim(b []byte) []byte {
	for len(b) > 0 && isSpace(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && isSpace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
