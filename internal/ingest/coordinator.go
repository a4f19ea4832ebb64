// internal/ingest/coordinator.go
package ingest

import (
	"bytes"
	"errors"
	"fmt"

	"readprep/internal/header"
	"readprep/internal/lineio"
	"readprep/internal/read"
	"readprep/internal/source"
	"readprep/internal/trim"
)

var (
	// ErrMalformedRecord reports a record whose quality length differs
	// from its sequence length. It is not recoverable.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrAccessionMismatch reports FASTQ mates whose accessions disagree
	// after normalization.
	ErrAccessionMismatch = errors.New("paired accession mismatch")
)

// Kind tags a Result.
type Kind int

const (
	// KindEnd means every input is exhausted.
	KindEnd Kind = iota
	// KindRecord carries Mate1 and, for pairs, Mate2.
	KindRecord
	// KindSkipped is a valid record that was intentionally not built.
	KindSkipped
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSkipped:
		return "skipped"
	}
	return "end"
}

// Result is one unit returned by Next.
type Result struct {
	Kind  Kind
	Mate1 *read.Read
	Mate2 *read.Read // nil for single-end records
}

func (r Result) Paired() bool { return r.Mate2 != nil }

// State is the position of the record state machine.
type State int

const (
	StateFileClosed State = iota
	StateAwaitingRecord
	StateInHeader
	StateInSequence
	StateInQuality
	StateRecordComplete
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFileClosed:
		return "file-closed"
	case StateAwaitingRecord:
		return "awaiting-record"
	case StateInHeader:
		return "in-header"
	case StateInSequence:
		return "in-sequence"
	case StateInQuality:
		return "in-quality"
	case StateRecordComplete:
		return "record-complete"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Stats counts what a Coordinator has seen so far.
type Stats struct {
	Records     int // KindRecord results
	Pairs       int // of which paired
	Skipped     int // KindSkipped results
	Filtered    int // records with a filtered mate
	Empty       int // zero-length records dropped
	PrimerChops int
	Unopenable  int
	LongLines   int
}

type status int

const (
	statusOK status = iota
	statusRetry
	statusEnd
)

// side is the per-stream state: lookahead, open handle, remaining files.
type side struct {
	files  []string
	path   string
	src    source.Source
	lr     *lineio.Reader
	next   int
	format header.Format

	// scratch; unit slices alias these until the next read on this side
	seq, qual [2][]byte
}

// unit is one header with its sequence(s) as read off a single stream.
type unit struct {
	hdr   header.Header
	seq   [2][]byte
	qual  [2][]byte
	mates int
}

// Coordinator reads records from one stream, or from two parallel streams
// for paired-end input. It is not safe for concurrent use.
type Coordinator struct {
	cfg      Config
	sides    [2]side
	paired   bool
	builders [2]read.Builder
	state    State
	index    int
	stats    Stats
}

// New returns a Coordinator over files1 and, for paired input, files2.
// Files are opened lazily.
func New(cfg Config, files1, files2 []string) *Coordinator {
	if cfg.Open == nil {
		cfg.Open = source.Open
	}
	c := &Coordinator{
		cfg:    cfg,
		paired: len(files2) > 0 && !cfg.ForceSingleEnd,
	}
	for i, files := range [2][]string{files1, files2} {
		c.sides[i] = side{
			files: append([]string(nil), files...),
			lr:    lineio.New(nil),
			next:  source.EOF,
		}
		b := read.Builder{
			BarcodeLength: cfg.BarcodeLength,
			EndTrimLength: cfg.EndTrimLength,
			Invert:        cfg.Invert[i],
		}
		if cfg.PolyTrim[i] {
			b.PolyTrim = polyTrim
		}
		c.builders[i] = b
	}
	return c
}

func polyTrim(r *read.Read) { trim.PolyAT(r) }

// State returns the current state of the record state machine.
func (c *Coordinator) State() State { return c.state }

// Stats returns a snapshot of the counters.
func (c *Coordinator) Stats() Stats {
	s := c.stats
	s.LongLines = c.sides[0].lr.LongLines() + c.sides[1].lr.LongLines()
	return s
}

// Next returns the next unit. Blank lines, empty sequences, truncated
// records and unopenable files are absorbed; the only errors are
// ErrMalformedRecord and ErrAccessionMismatch, both wrapped with a
// diagnostic. After a KindEnd result every further call returns KindEnd.
func (c *Coordinator) Next() (Result, error) {
	for {
		if c.state == StateExhausted {
			return Result{Kind: KindEnd}, nil
		}
		if !c.ready(0) {
			c.exhaust()
			return Result{Kind: KindEnd}, nil
		}
		c.state = StateAwaitingRecord
		res, st, err := c.record(!c.cfg.Part.Keeps(c.index))
		if err != nil {
			return Result{}, err
		}
		switch st {
		case statusRetry:
			continue
		case statusEnd:
			c.exhaust()
			return Result{Kind: KindEnd}, nil
		}
		c.index++
		c.state = StateRecordComplete
		c.count(res)
		return res, nil
	}
}

// Close closes any open streams. It is safe to call more than once.
func (c *Coordinator) Close() error {
	var err error
	for i := range c.sides {
		if cerr := c.closeSide(&c.sides[i]); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Coordinator) exhaust() {
	_ = c.Close()
	c.state = StateExhausted
}

func (c *Coordinator) count(res Result) {
	if res.Kind == KindSkipped {
		c.stats.Skipped++
		return
	}
	c.stats.Records++
	if res.Paired() {
		c.stats.Pairs++
	}
	if res.Mate1.Filter() || (res.Mate2 != nil && res.Mate2.Filter()) {
		c.stats.Filtered++
	}
}

func (c *Coordinator) warn(format string, args ...any) {
	if c.cfg.Warn != nil {
		c.cfg.Warn(format, args...)
	}
}

// record assembles one Result from one or both streams.
func (c *Coordinator) record(skip bool) (Result, status, error) {
	u1, st, err := c.readUnit(0, skip, !c.paired)
	if st != statusOK || err != nil {
		return Result{}, st, err
	}

	var u2 unit
	if c.paired {
		if u2, st, err = c.mate2(skip); st != statusOK || err != nil {
			return Result{}, st, err
		}
	}

	if len(u1.seq[0]) == 0 {
		c.stats.Empty++
		return Result{}, statusRetry, nil
	}
	if skip {
		return Result{Kind: KindSkipped}, statusOK, nil
	}

	acc1 := u1.hdr.Accession
	var (
		acc2, rem2 []byte
		filt2      bool
		seq2, q2   []byte
		have2      bool
	)
	switch {
	case c.paired:
		seq2, q2, have2 = u2.seq[0], u2.qual[0], true
		if c.sides[1].format == header.FASTQ {
			rem2, filt2 = u2.hdr.Remainder, u2.hdr.Filter
			if c.cfg.AllowPairedMismatch {
				acc2 = u2.hdr.Accession
			} else {
				n1, n2, _ := NormalizeAccessions(acc1, u2.hdr.Accession)
				if !bytes.Equal(n1, n2) {
					return Result{}, statusOK, fmt.Errorf("%w: %q (%s) vs %q (%s)",
						ErrAccessionMismatch, acc1, c.sides[0].path, u2.hdr.Accession, c.sides[1].path)
				}
				acc1 = n1
			}
		}
	case u1.mates == 2 && !c.cfg.ForceSingleEnd:
		seq2, q2, have2 = u1.seq[1], u1.qual[1], true
		filt2 = u1.hdr.Filter
	}

	m1, bs := c.builders[0].Build(acc1, u1.hdr.Remainder, u1.hdr.Filter, u1.seq[0], u1.qual[0], false)
	if bs == read.Malformed {
		return Result{}, statusOK, c.malformed(&c.sides[0], acc1, u1.seq[0], u1.qual[0])
	}
	res := Result{Kind: KindRecord, Mate1: m1}

	if have2 {
		m2, bs := c.builders[1].Build(acc2, rem2, filt2, seq2, q2, false)
		switch bs {
		case read.Built:
			res.Mate2 = m2
		case read.Malformed:
			return Result{}, statusOK, c.malformed(&c.sides[1], acc1, seq2, q2)
		}
	}

	if c.cfg.ChopPrimers && res.Mate2 != nil && trim.ChopPrimers(res.Mate1, res.Mate2) {
		c.stats.PrimerChops++
	}
	return res, statusOK, nil
}

// mate2 reads the next unit from the second stream, opening it on first
// use and stepping over stray lines.
func (c *Coordinator) mate2(skip bool) (unit, status, error) {
	for {
		if !c.ready(1) {
			c.warn("%s: second input ended before the first", c.sides[0].path)
			return unit{}, statusEnd, nil
		}
		u, st, err := c.readUnit(1, skip, false)
		if st == statusRetry && err == nil {
			continue
		}
		return u, st, err
	}
}

func (c *Coordinator) malformed(sd *side, acc, s, q []byte) error {
	return fmt.Errorf("%w: %s: %q: sequence length %d, quality length %d",
		ErrMalformedRecord, sd.path, acc, len(s), len(q))
}

// ready makes sure side i is positioned at a non-blank byte, moving on
// through its file list as streams run dry.
func (c *Coordinator) ready(i int) bool {
	sd := &c.sides[i]
	for {
		if sd.src != nil {
			if sd.next = sd.lr.SkipBlank(); sd.next != source.EOF {
				return true
			}
			_ = c.closeSide(sd)
		}
		if !c.open(sd) {
			return false
		}
	}
}

func (c *Coordinator) open(sd *side) bool {
	c.state = StateFileClosed
	for len(sd.files) > 0 {
		path := sd.files[0]
		sd.files = sd.files[1:]
		src, err := c.cfg.Open(path)
		if err != nil {
			c.stats.Unopenable++
			c.warn("skipping %s: %v", path, err)
			continue
		}
		sd.src, sd.path = src, path
		sd.lr.Reset(src)
		sd.next = sd.lr.SkipBlank()
		sd.format = c.resolve(sd.next, src.PeekN(sniffLen))
		return true
	}
	return false
}

func (c *Coordinator) closeSide(sd *side) error {
	if sd.src == nil {
		return nil
	}
	err := sd.src.Close()
	sd.src = nil
	sd.next = source.EOF
	return err
}

// sniffLen bounds how much of the leading lines auto-detection inspects.
const sniffLen = 4 << 10

func (c *Coordinator) resolve(first int, head []byte) header.Format {
	switch c.cfg.Format {
	case FormatFASTA:
		return header.FASTA
	case FormatFASTQ:
		return header.FASTQ
	case FormatInterleaved:
		return header.Interleaved
	}
	switch first {
	case '>':
		return header.FASTA
	case '@':
		if !tabbedLines(head) {
			return header.FASTQ
		}
	}
	return header.Interleaved
}

// tabbedLines reports whether head starts like an interleaved file: a
// tab on the first line and, when present, on the second one too. A FASTQ
// header may carry a tab but its sequence line never does.
func tabbedLines(head []byte) bool {
	line, rest, more := bytes.Cut(head, []byte{'\n'})
	if bytes.IndexByte(line, '\t') < 0 {
		return false
	}
	if !more || len(rest) == 0 {
		return true
	}
	line, _, _ = bytes.Cut(rest, []byte{'\n'})
	return bytes.IndexByte(line, '\t') >= 0
}

func (c *Coordinator) parser(sd *side) header.Parser {
	return header.Parser{Format: sd.format, Fields: c.cfg.Fields, Chastity: c.cfg.Chastity}
}

func (c *Coordinator) readUnit(i int, skip, inline bool) (unit, status, error) {
	sd := &c.sides[i]
	switch sd.format {
	case header.FASTQ:
		return c.readFASTQ(sd, skip)
	case header.Interleaved:
		return c.readInterleaved(sd, skip, inline)
	}
	return c.readFASTA(sd, skip, inline)
}

func (c *Coordinator) readFASTA(sd *side, skip, inline bool) (unit, status, error) {
	if sd.next != '>' {
		sd.next = sd.lr.SkipLine()
		return unit{}, statusRetry, nil
	}
	c.state = StateInHeader
	line, _, _ := sd.lr.ReadHeader()
	u := unit{hdr: c.parser(sd).Parse(line, skip), mates: 1}

	// blank lines around sequence lines are not records of their own
	c.state = StateInSequence
	if sd.next = sd.lr.SkipBlank(); sd.next == source.EOF || sd.next == '>' {
		return u, statusOK, nil
	}
	u.seq[0] = sd.readLine(&sd.seq[0])
	sd.next = sd.lr.SkipBlank()
	if inline && sd.next != source.EOF && sd.next != '>' && sd.next != '+' {
		u.seq[1] = sd.readLine(&sd.seq[1])
		u.mates = 2
	}
	if sd.next != '+' {
		return u, statusOK, nil
	}

	c.state = StateInQuality
	sd.next = sd.lr.SkipLine()
	for m := 0; m < u.mates; m++ {
		if sd.next == source.EOF {
			return unit{}, statusRetry, nil
		}
		u.qual[m] = sd.readLine(&sd.qual[m])
		if len(u.qual[m]) != len(u.seq[m]) {
			return unit{}, statusOK, c.malformed(sd, u.hdr.Accession, u.seq[m], u.qual[m])
		}
	}
	return u, statusOK, nil
}

func (c *Coordinator) readFASTQ(sd *side, skip bool) (unit, status, error) {
	if sd.next != '@' {
		sd.next = sd.lr.SkipLine()
		return unit{}, statusRetry, nil
	}
	c.state = StateInHeader
	line, _, next := sd.lr.ReadHeader()
	sd.next = next
	if next == source.EOF {
		return unit{}, statusRetry, nil
	}
	u := unit{hdr: c.parser(sd).Parse(line, skip), mates: 1}

	c.state = StateInSequence
	u.seq[0] = sd.readLine(&sd.seq[0])
	if sd.next != '+' {
		// no separator: a sequence without quality
		return u, statusOK, nil
	}

	c.state = StateInQuality
	if sd.next = sd.lr.SkipLine(); sd.next == source.EOF {
		return unit{}, statusRetry, nil
	}
	u.qual[0] = sd.readLine(&sd.qual[0])
	if len(u.qual[0]) != len(u.seq[0]) {
		return unit{}, statusOK, c.malformed(sd, u.hdr.Accession, u.seq[0], u.qual[0])
	}
	return u, statusOK, nil
}

// readInterleaved parses "acc \t seq1 \t qual1 \t seq2 \t qual2". Missing
// trailing fields are fine and a quality of the wrong length is dropped.
func (c *Coordinator) readInterleaved(sd *side, skip, inline bool) (unit, status, error) {
	c.state = StateInHeader
	line, _, next := sd.lr.ReadHeader()
	sd.next = next

	var f [5][]byte
	nf := 0
	for nf < len(f)-1 {
		k := bytes.IndexByte(line, '\t')
		if k < 0 {
			break
		}
		f[nf], line = line[:k], line[k+1:]
		nf++
	}
	f[nf] = line

	u := unit{hdr: c.parser(sd).Parse(f[0], skip), mates: 1}
	c.state = StateInSequence
	u.seq[0] = setField(&sd.seq[0], f[1])
	if len(f[2]) == len(u.seq[0]) && len(f[2]) > 0 {
		u.qual[0] = setField(&sd.qual[0], f[2])
	}
	if inline && len(f[3]) > 0 {
		u.seq[1] = setField(&sd.seq[1], f[3])
		u.mates = 2
		if len(f[4]) == len(u.seq[1]) {
			u.qual[1] = setField(&sd.qual[1], f[4])
		}
	}
	return u, statusOK, nil
}

// readLine reads one sequence or quality line into buf.
func (sd *side) readLine(buf *[]byte) []byte {
	line, owned, next := sd.lr.ReadSequence()
	sd.next = next
	if owned {
		*buf = line
	} else {
		*buf = append((*buf)[:0], line...)
	}
	return *buf
}

// setField copies a tab field into buf, dropping spaces and a trailing CR.
func setField(buf *[]byte, field []byte) []byte {
	b := (*buf)[:0]
	for _, x := range field {
		if x != ' ' && x != '\r' {
			b = append(b, x)
		}
	}
	*buf = b
	return b
}
