package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a_1.fq", "b_1.fq", "a_2.fq"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("@r\nA\n+\nI\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	o := Options{
		Files1: []string{filepath.Join(dir, "*_1.fq"), "-"},
		Files2: []string{filepath.Join(dir, "a_2.fq")},
	}
	if err := o.ExpandInputs(); err != nil {
		t.Fatal(err)
	}
	if len(o.Files1) != 3 || filepath.Base(o.Files1[0]) != "a_1.fq" || o.Files1[2] != "-" {
		t.Fatalf("files1=%v", o.Files1)
	}
	if len(o.Files2) != 1 {
		t.Fatalf("files2=%v", o.Files2)
	}

	o = Options{Files1: []string{filepath.Join(dir, "*.fa")}}
	if err := o.ExpandInputs(); err == nil {
		t.Fatal("expected no-match error")
	}
}
