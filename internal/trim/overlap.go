// internal/trim/overlap.go
package trim

import "readprep/internal/read"

// MinOverlap is the shortest mate overlap considered.
const MinOverlap = 10

// overlapScan is swapped in tests to count scans.
var overlapScan = scanOverlap

// scanOverlap slides the start of mate 2 along mate 1 and returns the
// length of the best-scoring overlap, 0 if none completes.
func scanOverlap(s1, s2 []byte) int {
	best, bestScore := 0, 0
	for start := 0; start < len(s1); start++ {
		length := len(s1) - start
		if len(s2) < length {
			length = len(s2)
		}
		if length < MinOverlap {
			break
		}
		m, mm, ok := walk(s1[start:], s2)
		if !ok {
			continue
		}
		if sc := score(m, mm); sc > bestScore {
			best, bestScore = length, sc
		}
	}
	return best
}

// FindOverlap returns the mate-overlap length of the pair, scanning at
// most once: the result is cached on both mates.
func FindOverlap(m1, m2 *read.Read) int {
	if v := m1.Overlap(); v != read.OverlapUnknown {
		return v
	}
	if v := m2.Overlap(); v != read.OverlapUnknown {
		m1.SetOverlap(v)
		return v
	}
	v := overlapScan(m1.Upper(), m2.Upper())
	m1.SetOverlap(v)
	m2.SetOverlap(v)
	return v
}
