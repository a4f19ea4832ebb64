// internal/ingest/accession.go
package ingest

import "bytes"

// NormalizeAccessions strips matching mate suffixes so that the two
// accessions of a pair can be compared:
//
//	read7;1 / read7;1  ->  read7 / read7   (then the /1 /2 test below)
//	read7:3 / read7:3  ->  read7 / read7
//	read7/1 / read7/2  ->  read7 / read7   (/3 accepted for mate 2)
//
// Both accessions must be longer than 2 bytes. If the final two bytes do
// not form a valid /1 + /2|/3 pair the original accessions are returned
// with ok == false.
func NormalizeAccessions(a1, a2 []byte) (n1, n2 []byte, ok bool) {
	if len(a1) <= 2 || len(a2) <= 2 {
		return a1, a2, false
	}
	n1, n2 = a1, a2
	switch {
	case digitSuffix(n1, ';') && digitSuffix(n2, ';'):
		n1, n2 = n1[:len(n1)-2], n2[:len(n2)-2]
	case digitSuffix(n1, ':') && digitSuffix(n2, ':') && n1[len(n1)-1] == n2[len(n2)-1]:
		n1, n2 = n1[:len(n1)-2], n2[:len(n2)-2]
	}
	if len(n1) < 2 || len(n2) < 2 {
		return a1, a2, false
	}
	sep1, sep2 := n1[len(n1)-2], n2[len(n2)-2]
	d1, d2 := n1[len(n1)-1], n2[len(n2)-1]
	if sep1 != sep2 || isAlnum(sep1) || !isDigit(d1) || !isDigit(d2) {
		return a1, a2, false
	}
	if !(d1 == '1' && (d2 == '2' || d2 == '3')) && !(d2 == '1' && (d1 == '2' || d1 == '3')) {
		return a1, a2, false
	}
	return n1[:len(n1)-2], n2[:len(n2)-2], true
}

// AccessionsMatch normalizes and compares two mate accessions.
func AccessionsMatch(a1, a2 []byte) bool {
	n1, n2, _ := NormalizeAccessions(a1, a2)
	return bytes.Equal(n1, n2)
}

func digitSuffix(a []byte, sep byte) bool {
	n := len(a)
	return n >= 2 && a[n-2] == sep && isDigit(a[n-1])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
