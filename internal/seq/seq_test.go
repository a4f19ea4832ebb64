package seq

import (
	"bytes"
	"testing"
)

func TestUpperTable(t *testing.T) {
	for c := 0; c < 128; c++ {
		want := byte(c)
		switch c {
		case 'a', 'c', 'g', 't':
			want = byte(c) - 'a' + 'A'
		}
		if got := UpperByte(byte(c)); got != want {
			t.Fatalf("UpperByte(%q)=%q want %q", c, got, want)
		}
		if UpperByte(byte(c)) != Upper[c] {
			t.Fatalf("UpperByte disagrees with table at %d", c)
		}
	}
	if UpperByte(200) != 200 {
		t.Fatal("high bytes must pass through")
	}
	if UpperByte('n') != 'n' {
		t.Fatal("non-ACGT lowercase codes are left unchanged")
	}
}

func TestRevCompRoundTrip(t *testing.T) {
	cases := []string{"", "A", "ACGT", "NNNACGTTGCAN", "acgtn", "GATTACAGATTACA"}
	for _, s := range cases {
		rc := make([]byte, len(s))
		RevComp(rc, []byte(s))
		back := make([]byte, len(s))
		RevComp(back, rc)
		if !bytes.Equal(back, []byte(s)) {
			t.Errorf("revcomp(revcomp(%q)) = %q", s, back)
		}
	}
}

func TestRevCompKnown(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ACGT", "ACGT"},
		{"AACG", "CGTT"},
		{"RYKM", "KMRY"},
		{"acgX", "Ncgt"},
	}
	for _, tt := range tests {
		if got := RevCompString(tt.in); got != tt.want {
			t.Errorf("RevCompString(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestReverse(t *testing.T) {
	dst := make([]byte, 4)
	Reverse(dst, []byte("IJKL"))
	if string(dst) != "LKJI" {
		t.Fatalf("Reverse=%q", dst)
	}
}

func TestIsACGTN(t *testing.T) {
	if !IsACGTN([]byte("ACGTNacgtn")) {
		t.Fatal("expected ACGTN")
	}
	if IsACGTN([]byte("ACGR")) {
		t.Fatal("R is not ACGTN")
	}
}
