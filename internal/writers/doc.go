// Package writers turns finished reads into serialized outputs.
//
// Design:
//   - Writers read reads through their accessors only; nothing here
//     mutates a read.
//   - FASTQ, FASTA and TSV are plain registry entries; JSONL goes through
//     pkg/api (v1) for a stable wire format.
package writers
