// internal/trim/primer.go
package trim

import "readprep/internal/read"

const (
	// MinPrimerInsert is the shortest insert kept by primer chopping.
	MinPrimerInsert = 20
	// MaxMismatches is the mismatch budget of every sliding scan.
	MaxMismatches = 1
)

// walk compares a against b position by position until either runs out.
// ok is false when the walk was abandoned over budget.
func walk(a, b []byte) (matches, mismatches int, ok bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		} else if mismatches++; mismatches > MaxMismatches {
			return matches, mismatches, false
		}
	}
	return matches, mismatches, true
}

func score(matches, mismatches int) int { return 3*matches - mismatches }

// primerOffset returns the best offset into mate 2 at which mate 1's
// start lines up, or -1. Ties keep the earliest offset.
func primerOffset(s1, s2 []byte) int {
	limit := len(s1)
	if len(s2) < limit {
		limit = len(s2)
	}
	limit -= MinPrimerInsert

	best, bestScore := -1, 0
	for j := 0; j <= limit; j++ {
		m, mm, ok := walk(s1, s2[j:])
		if !ok {
			continue
		}
		if sc := score(m, mm); sc > bestScore {
			best, bestScore = j, sc
		}
	}
	return best
}

// FindPrimers reports whether the pair shows 3' adapter read-through.
// Mate 2 is expected in mate-1 orientation (see read.Builder.Invert).
func FindPrimers(m1, m2 *read.Read) bool {
	return primerOffset(m1.Upper(), m2.Upper()) > 0
}

// ChopPrimers removes the adapter read-through found by FindPrimers: the
// winning offset comes off the end of mate 1 and off the start of mate 2.
// A chop invalidates any cached overlap.
func ChopPrimers(m1, m2 *read.Read) bool {
	j := primerOffset(m1.Upper(), m2.Upper())
	if j <= 0 {
		return false
	}
	m1.ChopRight(j)
	m2.ChopLeft(j)
	m1.SetOverlap(read.OverlapUnknown)
	m2.SetOverlap(read.OverlapUnknown)
	return true
}
