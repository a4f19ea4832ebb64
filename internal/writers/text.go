package writers

import (
	"bufio"
	"io"

	"readprep/internal/read"
)

func init() {
	Register(FormatFASTQ, WriteFASTQ)
	Register(FormatFASTA, WriteFASTA)
	Register(FormatTSV, WriteTSV)
}

// WriteFASTQ writes each mate as its own four-line record, mate 1 first.
func WriteFASTQ(w io.Writer, r Record) error {
	bw := asBuffered(w)
	writeFASTQ(bw, r.Accession(), r.Mate1)
	if r.Mate2 != nil {
		writeFASTQ(bw, r.mate2Accession(), r.Mate2)
	}
	return flush(w, bw)
}

func writeFASTQ(bw *bufio.Writer, acc []byte, m *read.Read) {
	bw.WriteByte('@')
	writeName(bw, acc, m.Remainder())
	bw.Write(m.Contents())
	bw.WriteString("\n+\n")
	if m.HasQuality() {
		bw.Write(m.Quality())
	} else {
		for i := 0; i < m.FullLength(); i++ {
			bw.WriteByte(MissingQuality)
		}
	}
	bw.WriteByte('\n')
}

// WriteFASTA writes each mate as a single-line FASTA record.
func WriteFASTA(w io.Writer, r Record) error {
	bw := asBuffered(w)
	writeFASTA(bw, r.Accession(), r.Mate1)
	if r.Mate2 != nil {
		writeFASTA(bw, r.mate2Accession(), r.Mate2)
	}
	return flush(w, bw)
}

func writeFASTA(bw *bufio.Writer, acc []byte, m *read.Read) {
	bw.WriteByte('>')
	writeName(bw, acc, m.Remainder())
	bw.Write(m.Contents())
	bw.WriteByte('\n')
}

// WriteTSV writes "accession \t seq1 \t qual1 [\t seq2 \t qual2]", the
// interleaved layout the ingest side reads back.
func WriteTSV(w io.Writer, r Record) error {
	bw := asBuffered(w)
	bw.Write(r.Accession())
	bw.WriteByte('\t')
	bw.Write(r.Mate1.Contents())
	bw.WriteByte('\t')
	bw.Write(r.Mate1.Quality())
	if r.Mate2 != nil {
		bw.WriteByte('\t')
		bw.Write(r.Mate2.Contents())
		bw.WriteByte('\t')
		bw.Write(r.Mate2.Quality())
	}
	bw.WriteByte('\n')
	return flush(w, bw)
}

func writeName(bw *bufio.Writer, acc, rem []byte) {
	bw.Write(acc)
	if len(rem) > 0 {
		bw.WriteByte(' ')
		bw.Write(rem)
	}
	bw.WriteByte('\n')
}

// asBuffered reuses w when it already buffers; errors surface on flush.
func asBuffered(w io.Writer) *bufio.Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return bw
	}
	return bufio.NewWriterSize(w, 4096)
}

func flush(w io.Writer, bw *bufio.Writer) error {
	if _, ok := w.(*bufio.Writer); ok {
		// caller flushes; report any sticky error now
		_, err := bw.Write(nil)
		return err
	}
	return bw.Flush()
}
