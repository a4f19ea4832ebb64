// internal/cli/options_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"readprep/internal/header"
	"readprep/internal/ingest"
)

func parse(t *testing.T, args ...string) (Options, *pflag.FlagSet) {
	t.Helper()
	var o Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Register(fs, &o)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse err: %v", err)
	}
	o.Files1 = fs.Args()
	return o, fs
}

func mustValid(t *testing.T, args ...string) Options {
	t.Helper()
	o, _ := parse(t, args...)
	if err := o.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return o
}

func TestDefaults(t *testing.T) {
	o := mustValid(t, "reads.fq")
	if o.Output != "fastq" || o.Format != "auto" || o.Chastity != "off" {
		t.Errorf("bad defaults %+v", o)
	}
	cfg := o.IngestConfig(nil)
	if cfg.Format != ingest.FormatAuto || cfg.Fields != (header.FieldRange{}) || cfg.Part.Modulus != 0 {
		t.Errorf("bad ingest config %+v", cfg)
	}
}

func TestPairedAndTrimming(t *testing.T) {
	o := mustValid(t,
		"--mate2", "r2a.fq", "--mate2", "r2b.fq",
		"--invert-second", "--polya-first", "--chop-primers",
		"--barcode-length", "6", "--endtrim-length", "2",
		"--fastq-id-start", "1", "--fastq-id-end", "2",
		"--filter-chastity", "keep", "--part", "1/4",
		"r1a.fq", "r1b.fq",
	)
	if len(o.Files1) != 2 || len(o.Files2) != 2 {
		t.Fatalf("files %v / %v", o.Files1, o.Files2)
	}
	cfg := o.IngestConfig(nil)
	if cfg.Invert != [2]bool{false, true} || cfg.PolyTrim != [2]bool{true, false} || !cfg.ChopPrimers {
		t.Errorf("mate switches %+v", cfg)
	}
	if cfg.BarcodeLength != 6 || cfg.EndTrimLength != 2 {
		t.Errorf("lengths %+v", cfg)
	}
	if cfg.Fields != (header.FieldRange{Start: 1, End: 2}) || cfg.Chastity != header.ChastityKeep {
		t.Errorf("header config %+v", cfg)
	}
	if cfg.Part.Index != 1 || cfg.Part.Modulus != 4 {
		t.Errorf("part %+v", cfg.Part)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"--format", "bam", "x"},
		{"--filter-chastity", "maybe", "x"},
		{"--fastq-id-start", "2", "--fastq-id-end", "1", "x"},
		{"--fastq-id-start", "-1", "x"},
		{"--barcode-length", "-3", "x"},
		{"--endtrim-length", "-1", "x"},
		{"--part", "4/4", "x"},
		{"--output", "sam", "x"},
		{"--chop-primers", "--force-single-end", "x"},
	}
	for _, args := range cases {
		o, _ := parse(t, args...)
		if err := o.Validate(); err == nil {
			t.Errorf("%v: expected validation error", args)
		}
	}
}

func TestMergeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readprep.yaml")
	yaml := "output: fasta\nbarcode-length: 4\nmate2: [m2.fq]\npolya-first: true\ninputs: [m1.fq]\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	o, fs := parse(t, "--config", path, "--barcode-length", "7")
	if err := o.MergeConfig(fs); err != nil {
		t.Fatal(err)
	}
	if o.Output != "fasta" || !o.PolyAFirst {
		t.Errorf("config values not applied: %+v", o)
	}
	if o.BarcodeLength != 7 {
		t.Errorf("command line must win, barcode=%d", o.BarcodeLength)
	}
	if len(o.Files2) != 1 || o.Files2[0] != "m2.fq" || len(o.Files1) != 1 || o.Files1[0] != "m1.fq" {
		t.Errorf("files %v / %v", o.Files1, o.Files2)
	}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMergeConfigMissingFile(t *testing.T) {
	o, fs := parse(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "x")
	if err := o.MergeConfig(fs); err == nil {
		t.Fatal("expected error for missing config")
	}
}
