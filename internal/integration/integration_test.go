// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"

	"readprep/internal/app"
	"readprep/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, want int, argv ...string) (string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	if code := app.Run(argv, &out, &errBuf); code != want {
		t.Fatalf("exit %d want %d, stderr=%s", code, want, errBuf.String())
	}
	return out.String(), errBuf.String()
}

func TestEndToEndFASTQ(t *testing.T) {
	fq := write(t, "r.fq", "@r1 x\nACGT\n+\nIIII\n@r2\nGGCC\n+\nJJJJ\n")
	out, _ := run(t, 0, "--quiet", fq)
	if out != "@r1 x\nACGT\n+\nIIII\n@r2\nGGCC\n+\nJJJJ\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPairedGzipAndZstdToTSV(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "r1.fq.gz")
	p2 := filepath.Join(dir, "r2.fq.zst")

	var gz bytes.Buffer
	gw := pgzip.NewWriter(&gz)
	_, _ = gw.Write([]byte("@p/1\nACGTAA\n+\nABCDEF\n"))
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p1, gz.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zs := enc.EncodeAll([]byte("@p/2\nCCGG\n+\nKLMN\n"), nil)
	_ = enc.Close()
	if err := os.WriteFile(p2, zs, 0644); err != nil {
		t.Fatal(err)
	}

	out, _ := run(t, 0, "-q", "--output", "tsv", "--mate2", p2, "--invert-second", p1)
	if out != "p\tACGTAA\tABCDEF\tCCGG\tNMLK\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInterleavedToJSONLWithTrimming(t *testing.T) {
	in := write(t, "r.tsv", "a\tNNN"+strings.Repeat("A", 20)+"\t\tTTTT\n")
	out, _ := run(t, 0, "-q", "--output", "jsonl", "--barcode-length", "3", "--polya-first", in)

	sc := bufio.NewScanner(strings.NewReader(out))
	var got []api.ReadV1
	for sc.Scan() {
		var v api.ReadV1
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("bad json line %q: %v", sc.Text(), err)
		}
		got = append(got, v)
	}
	if len(got) != 1 || got[0].Mate2 == nil {
		t.Fatalf("records %+v", got)
	}
	m1 := got[0].Mate1
	if m1.Barcode != "NNN" || m1.Sequence != "" || m1.LeftChop != strings.Repeat("A", 20) {
		t.Fatalf("mate1 %+v", m1)
	}
}

func TestChastityFilterDropsReads(t *testing.T) {
	fq := write(t, "r.fq", "@a 1:Y:0:X\nACGT\n+\nIIII\n@b 1:N:0:X\nACGT\n+\nIIII\n")
	out, _ := run(t, 0, "-q", "--filter-chastity", "keep", "--output", "fasta", fq)
	if out != ">b 0:X\nACGT\n" {
		t.Fatalf("unexpected output %q", out)
	}
	out, _ = run(t, 0, "-q", "--filter-chastity", "filter", "--keep-filtered", "--output", "fasta", fq)
	if strings.Count(out, ">") != 2 {
		t.Fatalf("--keep-filtered output %q", out)
	}
}

func TestPartSplitsInput(t *testing.T) {
	fa := write(t, "r.fa", ">r0\nA\n>r1\nC\n>r2\nG\n")
	even, _ := run(t, 0, "-q", "--part", "0/2", "--output", "fasta", fa)
	odd, _ := run(t, 0, "-q", "--part", "1/2", "--output", "fasta", fa)
	if even != ">r0\nA\n>r2\nG\n" || odd != ">r1\nC\n" {
		t.Fatalf("even=%q odd=%q", even, odd)
	}
}

func TestConfigFile(t *testing.T) {
	fa := write(t, "r.fa", ">r\nGGACGT\n")
	cfg := write(t, "c.yaml", "output: fasta\nbarcode-length: 2\nquiet: true\ninputs: ["+fa+"]\n")
	out, _ := run(t, 0, "--config", cfg)
	if out != ">r\nACGT\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExitCodes(t *testing.T) {
	bad := write(t, "bad.fq", "@x\nACGT\n+\nII\n")
	_, stderr := run(t, 1, "-q", bad)
	if !strings.Contains(stderr, "malformed record") {
		t.Fatalf("stderr=%q", stderr)
	}

	r1 := write(t, "a.fq", "@x/1\nACGT\n+\nIIII\n")
	r2 := write(t, "b.fq", "@y/2\nACGT\n+\nIIII\n")
	_, stderr = run(t, 1, "-q", "--mate2", r2, r1)
	if !strings.Contains(stderr, "paired accession mismatch") {
		t.Fatalf("stderr=%q", stderr)
	}
	run(t, 0, "-q", "--allow-pe-name-mismatch", "--mate2", r2, r1)

	run(t, 2, "--no-such-flag", r1)
	run(t, 2, "--output", "sam", r1)
	run(t, 2)
}

func TestMissingFileWarns(t *testing.T) {
	fa := write(t, "r.fa", ">r\nACGT\n")
	out, stderr := run(t, 0, "--output", "fasta", filepath.Join(t.TempDir(), "missing.fa"), fa)
	if out != ">r\nACGT\n" || !strings.Contains(stderr, "WARN: skipping") {
		t.Fatalf("out=%q stderr=%q", out, stderr)
	}
}

func TestVersionAndHelp(t *testing.T) {
	out, _ := run(t, 0, "--version")
	if !strings.Contains(out, "version") {
		t.Fatalf("version output %q", out)
	}
	out, _ = run(t, 0, "--help")
	if !strings.Contains(out, "--chop-primers") {
		t.Fatalf("help output %q", out)
	}
}

func TestCancelledContextExit130(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 1000; i++ {
		b.WriteString(">r\nACGTACGTACGT\n")
	}
	fa := write(t, "big.fa", b.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	if code := app.RunContext(ctx, []string{"-q", fa}, &out, &errBuf); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d (%s)", code, errBuf.String())
	}
}
