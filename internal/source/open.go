// internal/source/open.go
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/shenwei356/xopen"
)

// Codec identifies a compression backend.
type Codec int

const (
	Plain Codec = iota
	Gzip
	Zstd
	Snappy
	Bzip2
)

func (c Codec) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	case Bzip2:
		return "bzip2"
	}
	return "plain"
}

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
	bzip2Magic  = []byte("BZh")
)

// Detect picks a codec from the leading bytes of a stream, falling back
// to the file suffix.
func Detect(head []byte, path string) Codec {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, snappyMagic):
		return Snappy
	case bytes.HasPrefix(head, bzip2Magic):
		return Bzip2
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".sz"):
		return Snappy
	case strings.HasSuffix(path, ".bz2"):
		return Bzip2
	}
	return Plain
}

// Open opens path ("-" is stdin) and layers the matching decompressor.
func Open(path string) (Source, error) {
	var fh io.ReadCloser
	if path == "-" {
		fh = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		fh = f
	}
	s, err := wrap(fh, path)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func wrap(fh io.ReadCloser, path string) (Source, error) {
	raw := bufio.NewReaderSize(fh, bufSize)
	head, _ := raw.Peek(len(snappyMagic))

	var (
		r       io.Reader
		closers []io.Closer
	)
	switch Detect(head, path) {
	case Gzip:
		gr, err := pgzip.NewReader(raw)
		if err != nil {
			return nil, err
		}
		r, closers = gr, []io.Closer{gr}
	case Zstd:
		zr, err := zstd.NewReader(raw, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		rc := zr.IOReadCloser()
		r, closers = rc, []io.Closer{rc}
	case Snappy:
		r = snappy.NewReader(raw)
	case Bzip2:
		xr, err := xopen.Buf(raw)
		if err != nil {
			return nil, err
		}
		r, closers = xr, []io.Closer{xr}
	default:
		r = raw
	}
	return &bufSource{
		r:       bufio.NewReaderSize(r, bufSize),
		closers: append(closers, fh),
	}, nil
}
