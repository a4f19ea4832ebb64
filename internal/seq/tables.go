// internal/seq/tables.go
package seq

// Upper maps the lowercase nucleotides a/c/g/t to upper case and leaves
// every other 7-bit code untouched.
var Upper [128]byte

// Complement maps a 7-bit nucleotide code to its complement. IUPAC
// ambiguity codes are paired, gaps map to themselves, unknown codes to N.
var Complement [128]byte

func init() {
	for i := range Upper {
		Upper[i] = byte(i)
		Complement[i] = 'N'
	}
	for _, b := range []byte("acgt") {
		Upper[b] = b - 'a' + 'A'
	}

	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, // A/G  <->  C/T
		{'K', 'M'},
		{'B', 'V'},
		{'D', 'H'},
		{'S', 'S'}, {'W', 'W'}, {'N', 'N'},
	}
	for _, p := range pairs {
		Complement[p.a] = p.b
		Complement[p.b] = p.a
		Complement[p.a+'a'-'A'] = p.b + 'a' - 'A'
		Complement[p.b+'a'-'A'] = p.a + 'a' - 'A'
	}
	Complement['-'] = '-'
	Complement['.'] = '.'
}

// UpperByte returns Upper[b], passing bytes outside the table through.
func UpperByte(b byte) byte {
	if b >= 128 {
		return b
	}
	return Upper[b]
}

// ComplementByte returns Complement[b]; bytes outside the table become N.
func ComplementByte(b byte) byte {
	if b >= 128 {
		return 'N'
	}
	return Complement[b]
}
