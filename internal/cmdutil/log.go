// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes a "WARN: " line to dst unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Infof writes an "INFO: " line to dst unless quiet is set.
func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "INFO: "+format+"\n", a...)
}

// Logger binds a destination and the quiet switch so library code can be
// handed a plain printf-style callback.
type Logger struct {
	Dst   io.Writer
	Quiet bool
}

func (l Logger) Warnf(format string, a ...any) { Warnf(l.Dst, l.Quiet, format, a...) }
func (l Logger) Infof(format string, a ...any) { Infof(l.Dst, l.Quiet, format, a...) }
