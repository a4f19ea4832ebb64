// internal/seq/rc.go
package seq

// ToUpper writes the case-folded src into dst (len(dst) >= len(src)).
func ToUpper(dst, src []byte) {
	for i, b := range src {
		dst[i] = UpperByte(b)
	}
}

// RevComp writes the reverse complement of src into dst. dst and src
// must not overlap.
func RevComp(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = ComplementByte(src[n-1-i])
	}
}

// Reverse writes src reversed (no complement) into dst.
func Reverse(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}

// RevCompString is a convenience for tests and small callers.
func RevCompString(s string) string {
	out := make([]byte, len(s))
	RevComp(out, []byte(s))
	return string(out)
}

// IsACGTN reports whether every byte of s is one of ACGTN (either case).
func IsACGTN(s []byte) bool {
	for _, b := range s {
		switch UpperByte(b) {
		case 'A', 'C', 'G', 'T', 'N', 'n':
		default:
			return false
		}
	}
	return true
}
