// Package ingest pulls read records out of one or two input streams.
//
// A Coordinator owns its file handles, its file-name cursors and every
// scratch buffer it parses into, so independent Coordinators can run in
// separate goroutines. Each call to Next blocks on the underlying
// streams and yields exactly one logical unit: a read, a mate pair, a
// skipped record, or the end of input.
//
// Formats:
//
//	FASTA        >header / sequence [/ sequence2] [/ + / quality [/ quality2]]
//	FASTQ        @header / sequence / +[header] / quality
//	interleaved  accession \t seq1 \t qual1 \t seq2 \t qual2
//
// Two FASTA sequence lines under one header form an inline mate pair.
// With a second file list, mate 2 comes from the second stream and, for
// FASTQ, its accession is checked against mate 1.
package ingest
