// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Output format names.
const (
	FormatFASTQ = "fastq"
	FormatFASTA = "fasta"
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// WriteFunc serializes one record.
type WriteFunc func(w io.Writer, r Record) error

// Record writer registry (format → handler). Text formats register in
// init(); JSONL is streamed by StartJSONLWriter instead.
var recordWriters = map[string]WriteFunc{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn WriteFunc) { recordWriters[format] = fn }

// Write dispatches r to the writer registered for format.
func Write(format string, w io.Writer, r Record) error {
	fn, ok := recordWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r)
}

// Formats lists every accepted output format, JSONL included.
func Formats() []string {
	out := []string{FormatJSONL}
	for f := range recordWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format can be written.
func Known(format string) bool {
	_, ok := recordWriters[format]
	return ok || format == FormatJSONL
}
