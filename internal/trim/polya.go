// internal/trim/polya.go
package trim

import "readprep/internal/read"

// polyStart is the initial value of every poly-A/T running score.
const polyStart = 15

// polyScore tracks one running score and the position of its minimum.
type polyScore struct {
	v, min, pos int
}

func newPolyScore() polyScore { return polyScore{v: polyStart, min: polyStart, pos: -1} }

func (p *polyScore) step(hit bool, i int) {
	if hit {
		p.v--
	} else {
		p.v += 3
	}
	if p.v < p.min {
		p.min, p.pos = p.v, i
	}
}

// valid reports whether the score ever went negative.
func (p polyScore) valid() bool { return p.min < 0 }

// PolyAT trims a poly-A or poly-T run from either end of r and returns
// the lengths chopped from the left and right.
//
// Decision order: a read that is poly-A end to end goes entirely, then
// the same for poly-T, otherwise the single side (left-A, right-A,
// left-T, right-T) reaching furthest into the read is cut. Equal reaches
// keep the earlier side in that order.
func PolyAT(r *read.Read) (left, right int) {
	s := r.Upper()
	n := len(s)
	if n == 0 {
		return 0, 0
	}

	leftA, leftT := newPolyScore(), newPolyScore()
	for i := 0; i < n; i++ {
		leftA.step(s[i] == 'A', i)
		leftT.step(s[i] == 'T', i)
	}
	rightA, rightT := newPolyScore(), newPolyScore()
	for i := n - 1; i >= 0; i-- {
		rightA.step(s[i] == 'A', i)
		rightT.step(s[i] == 'T', i)
	}

	if leftA.valid() && rightA.valid() && leftA.pos >= rightA.pos {
		return r.ChopLeft(n), 0
	}
	if leftT.valid() && rightT.valid() && leftT.pos >= rightT.pos {
		return r.ChopLeft(n), 0
	}

	type cut struct {
		s     polyScore
		reach int
		left  bool
	}
	cuts := [4]cut{
		{leftA, leftA.pos, true},
		{rightA, n - 1 - rightA.pos, false},
		{leftT, leftT.pos, true},
		{rightT, n - 1 - rightT.pos, false},
	}
	best := -1
	for k, c := range cuts {
		if !c.s.valid() {
			continue
		}
		if best < 0 || c.reach > cuts[best].reach {
			best = k
		}
	}
	if best < 0 {
		return 0, 0
	}
	if cuts[best].left {
		return r.ChopLeft(cuts[best].reach), 0
	}
	return 0, r.ChopRight(cuts[best].reach)
}

// IsLeftPolyT reports whether T is the strict majority of the first
// window bases of s.
func IsLeftPolyT(s []byte, window int) bool {
	if window > len(s) {
		window = len(s)
	}
	return window > 0 && count(s[:window], 'T')*2 > window
}

// IsRightPolyA reports whether A is the strict majority of the last
// window bases of s.
func IsRightPolyA(s []byte, window int) bool {
	if window > len(s) {
		window = len(s)
	}
	return window > 0 && count(s[len(s)-window:], 'A')*2 > window
}

func count(s []byte, b byte) int {
	c := 0
	for _, x := range s {
		if x == b {
			c++
		}
	}
	return c
}
