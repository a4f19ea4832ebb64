// internal/runutil/part.go
package runutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Part selects every Modulus-th record starting at Index, so that several
// processes can split one input. The zero value keeps everything.
type Part struct {
	Index   int
	Modulus int
}

// ParsePart parses "i/n" with 0 <= i < n. An empty string is the zero Part.
func ParsePart(s string) (Part, error) {
	if s == "" {
		return Part{}, nil
	}
	i, n, ok := strings.Cut(s, "/")
	if !ok {
		return Part{}, fmt.Errorf("invalid part %q (want i/n)", s)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(i))
	if err != nil {
		return Part{}, fmt.Errorf("invalid part index %q: %w", i, err)
	}
	mod, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		return Part{}, fmt.Errorf("invalid part modulus %q: %w", n, err)
	}
	if mod < 1 || idx < 0 || idx >= mod {
		return Part{}, fmt.Errorf("invalid part %q: need 0 <= i < n", s)
	}
	return Part{Index: idx, Modulus: mod}, nil
}

// Keeps reports whether the record with 0-based index k belongs to p.
func (p Part) Keeps(k int) bool {
	if p.Modulus <= 1 {
		return true
	}
	return k%p.Modulus == p.Index
}

func (p Part) String() string {
	if p.Modulus <= 1 {
		return ""
	}
	return fmt.Sprintf("%d/%d", p.Index, p.Modulus)
}
