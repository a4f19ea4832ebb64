// internal/ingest/config.go
package ingest

import (
	"readprep/internal/header"
	"readprep/internal/runutil"
	"readprep/internal/source"
)

// Format selects the record grammar of the input.
type Format int

const (
	// FormatAuto picks the grammar per file from its first byte:
	// '>' FASTA, '@' FASTQ unless the first two lines both hold a tab,
	// anything else interleaved.
	FormatAuto Format = iota
	FormatFASTA
	FormatFASTQ
	FormatInterleaved
)

// ParseFormat maps a CLI name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "auto":
		return FormatAuto, true
	case "fasta", "fa":
		return FormatFASTA, true
	case "fastq", "fq":
		return FormatFASTQ, true
	case "tsv", "interleaved":
		return FormatInterleaved, true
	}
	return FormatAuto, false
}

func (f Format) String() string {
	switch f {
	case FormatFASTA:
		return "fasta"
	case FormatFASTQ:
		return "fastq"
	case FormatInterleaved:
		return "tsv"
	}
	return "auto"
}

// Config is everything a Coordinator needs besides its file lists.
type Config struct {
	Format   Format
	Fields   header.FieldRange
	Chastity header.ChastityMode

	// ForceSingleEnd ignores the second file list and drops inline mates.
	ForceSingleEnd bool
	// AllowPairedMismatch skips FASTQ accession normalization and
	// comparison; mate 2 keeps its own accession.
	AllowPairedMismatch bool

	BarcodeLength int
	EndTrimLength int
	Invert        [2]bool // per mate
	PolyTrim      [2]bool // per mate
	ChopPrimers   bool

	Part runutil.Part

	// Open defaults to source.Open.
	Open source.Opener
	// Warn receives non-fatal diagnostics (unopenable files, truncated
	// pairs). Nil discards them.
	Warn func(format string, args ...any)
}
