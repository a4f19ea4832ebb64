package writers

import (
	"fmt"
	"io"
)

// StartWriter spins up a writer goroutine for format. Records must not be
// touched by the sender after they are handed over.
func StartWriter(out io.Writer, format string, bufSize int) (chan<- Record, <-chan error) {
	if format == FormatJSONL {
		return StartJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan Record, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := recordWriters[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
			return
		}
		var err error
		for r := range in {
			if err != nil {
				continue // drain so the sender never blocks
			}
			err = fn(out, r)
		}
		errCh <- err
	}()

	return in, errCh
}
