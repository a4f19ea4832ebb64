// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"readprep/internal/header"
	"readprep/internal/ingest"
	"readprep/internal/runutil"
	"readprep/internal/writers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Files1 []string // positional arguments
	Files2 []string // --mate2, the parallel second stream
	Format string

	// Header parsing
	FieldStart     int
	FieldEnd       int
	Chastity       string
	AllowMismatch  bool
	ForceSingleEnd bool

	// Read construction and trimming
	BarcodeLength int
	EndTrimLength int
	InvertFirst   bool
	InvertSecond  bool
	PolyAFirst    bool
	PolyASecond   bool
	ChopPrimers   bool

	Part string

	// Output
	Output       string
	KeepFiltered bool
	Progress     bool
	Quiet        bool

	Config string
}

// Register binds every flag to o on fs.
func Register(fs *pflag.FlagSet, o *Options) {
	fs.StringSliceVar(&o.Files2, "mate2", nil, "second-mate file(s), read in parallel with the inputs (repeatable)")
	fs.StringVar(&o.Format, "format", "auto", "input format: auto | fasta | fastq | tsv (auto: '>' fasta, '@' fastq unless lines 1-2 are tab-separated, else tsv)")

	fs.IntVar(&o.FieldStart, "fastq-id-start", 0, "first header token (0-based) of a FASTQ accession")
	fs.IntVar(&o.FieldEnd, "fastq-id-end", 0, "last header token (0-based, inclusive) of a FASTQ accession")
	fs.StringVar(&o.Chastity, "filter-chastity", "off", "Illumina chastity flag: off | filter | keep")
	fs.BoolVar(&o.AllowMismatch, "allow-pe-name-mismatch", false, "do not require FASTQ mate accessions to agree")
	fs.BoolVar(&o.ForceSingleEnd, "force-single-end", false, "ignore second mates")

	fs.IntVar(&o.BarcodeLength, "barcode-length", 0, "bases removed from the 5' end as barcode")
	fs.IntVar(&o.EndTrimLength, "endtrim-length", 0, "bases removed from the 3' end")
	fs.BoolVar(&o.InvertFirst, "invert-first", false, "reverse-complement the first mate")
	fs.BoolVar(&o.InvertSecond, "invert-second", false, "reverse-complement the second mate")
	fs.BoolVar(&o.PolyAFirst, "polya-first", false, "trim poly-A/T runs from the first mate")
	fs.BoolVar(&o.PolyASecond, "polya-second", false, "trim poly-A/T runs from the second mate")
	fs.BoolVar(&o.ChopPrimers, "chop-primers", false, "chop adapter read-through from pairs")

	fs.StringVar(&o.Part, "part", "", "process only records k with k % n == i (i/n)")

	fs.StringVarP(&o.Output, "output", "o", writers.FormatFASTQ, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.BoolVar(&o.KeepFiltered, "keep-filtered", false, "also write reads that failed the chastity filter")
	fs.BoolVar(&o.Progress, "progress", false, "show a progress counter on stderr")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "suppress warnings")

	fs.StringVar(&o.Config, "config", "", "YAML/TOML/JSON file with flag defaults")
}

// Validate checks flag values and their combinations.
func (o Options) Validate() error {
	if len(o.Files1) == 0 {
		return errors.New("at least one input file is required ('-' for stdin)")
	}
	if _, ok := ingest.ParseFormat(o.Format); !ok {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if _, err := ParseChastity(o.Chastity); err != nil {
		return err
	}
	if o.FieldStart < 0 || o.FieldEnd < 0 {
		return errors.New("--fastq-id-start and --fastq-id-end must be ≥ 0")
	}
	if o.FieldEnd < o.FieldStart {
		return errors.New("--fastq-id-end must be ≥ --fastq-id-start")
	}
	if o.BarcodeLength < 0 {
		return errors.New("--barcode-length must be ≥ 0")
	}
	if o.EndTrimLength < 0 {
		return errors.New("--endtrim-length must be ≥ 0")
	}
	if o.Part != "" {
		if _, err := runutil.ParsePart(o.Part); err != nil {
			return fmt.Errorf("--part: %w", err)
		}
	}
	if !writers.Known(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.ChopPrimers && o.ForceSingleEnd {
		return errors.New("--chop-primers needs pairs; drop --force-single-end")
	}
	return nil
}

// ParseChastity maps a --filter-chastity value to its mode.
func ParseChastity(s string) (header.ChastityMode, error) {
	switch s {
	case "", "off":
		return header.ChastityOff, nil
	case "filter":
		return header.ChastityFilter, nil
	case "keep":
		return header.ChastityKeep, nil
	}
	return header.ChastityOff, fmt.Errorf("invalid --filter-chastity %q", s)
}

// IngestConfig maps validated options onto an ingest.Config.
func (o Options) IngestConfig(warn func(format string, args ...any)) ingest.Config {
	format, _ := ingest.ParseFormat(o.Format)
	chastity, _ := ParseChastity(o.Chastity)
	var part runutil.Part
	if o.Part != "" {
		part, _ = runutil.ParsePart(o.Part)
	}
	return ingest.Config{
		Format:              format,
		Fields:              header.FieldRange{Start: o.FieldStart, End: o.FieldEnd},
		Chastity:            chastity,
		ForceSingleEnd:      o.ForceSingleEnd,
		AllowPairedMismatch: o.AllowMismatch,
		BarcodeLength:       o.BarcodeLength,
		EndTrimLength:       o.EndTrimLength,
		Invert:              [2]bool{o.InvertFirst, o.InvertSecond},
		PolyTrim:            [2]bool{o.PolyAFirst, o.PolyASecond},
		ChopPrimers:         o.ChopPrimers,
		Part:                part,
		Warn:                warn,
	}
}
