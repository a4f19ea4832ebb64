package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"readprep/internal/ingest"
	"readprep/internal/source"
)

func TestWarnfQuiet(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, true, "x %d", 1)
	if b.Len() != 0 {
		t.Fatalf("quiet wrote %q", b.String())
	}
	Logger{Dst: &b}.Warnf("skipping %s", "a.fq")
	Infof(&b, false, "done")
	if b.String() != "WARN: skipping a.fq\nINFO: done\n" {
		t.Fatalf("got %q", b.String())
	}
}

func coordinator(text string) *ingest.Coordinator {
	open := func(string) (source.Source, error) {
		return source.FromReader(strings.NewReader(text)), nil
	}
	return ingest.New(ingest.Config{Open: open}, []string{"in"}, nil)
}

func TestRunStreamCountsKept(t *testing.T) {
	c := coordinator(">a\nACGT\n>b\nGG\n>c\nTTTTT\n")
	var got []string
	n, err := RunStream(context.Background(), c,
		func(r ingest.Result) (bool, string, error) {
			return r.Mate1.FullLength() > 2, string(r.Mate1.Accession()), nil
		},
		func(s string) error { got = append(got, s); return nil },
	)
	if err != nil || n != 2 || strings.Join(got, ",") != "a,c" {
		t.Fatalf("n=%d err=%v got=%v", n, err, got)
	}
}

func TestRunStreamStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := coordinator(">a\nACGT\n")
	n, err := RunStream(ctx, c,
		func(r ingest.Result) (bool, int, error) { return true, 1, nil },
		func(int) error { return nil },
	)
	if n != 0 || !errors.Is(err, context.Canceled) {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRunStreamPropagatesInputErrors(t *testing.T) {
	c := coordinator("@x\nACGT\n+\nII\n")
	_, err := RunStream(context.Background(), c,
		func(r ingest.Result) (bool, int, error) { return true, 1, nil },
		func(int) error { return nil },
	)
	if !errors.Is(err, ingest.ErrMalformedRecord) {
		t.Fatalf("err=%v", err)
	}
}
