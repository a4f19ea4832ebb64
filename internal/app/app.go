// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"readprep/internal/cli"
	"readprep/internal/cmdutil"
	"readprep/internal/ingest"
	"readprep/internal/trim"
	"readprep/internal/version"
	"readprep/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitInput       = 1
	ExitUsage       = 2
	ExitOutput      = 3
	ExitInterrupted = 130
)

// exitError carries the exit code for an error out of cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usage(err error) error { return &exitError{ExitUsage, err} }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts cli.Options
	cmd := &cobra.Command{
		Use:   "readprep [flags] FILE...",
		Short: "Normalize and trim FASTA/FASTQ/TSV sequencing reads",
		Long: `readprep reads single-end or paired-end reads from FASTA, FASTQ or
interleaved TSV files (plain, gzip, zstd, snappy or bzip2), builds
normalized reads and writes them back out after barcode, end, adapter and
poly-A/T trimming. '-' reads stdin.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files1 = args
			if err := opts.MergeConfig(cmd.Flags()); err != nil {
				return usage(err)
			}
			if err := opts.ExpandInputs(); err != nil {
				return usage(err)
			}
			if err := opts.Validate(); err != nil {
				return usage(err)
			}
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })
	cli.Register(cmd.Flags(), &opts)
	return cmd
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	if argv == nil {
		argv = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(parent)
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if !errors.As(err, &ee) {
		ee = &exitError{ExitUsage, err}
	}
	if ee.code == ExitInterrupted {
		return ee.code
	}
	_, _ = fmt.Fprintln(stderr, "error:", ee.err)
	if ee.code == ExitUsage {
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
	}
	return ee.code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(parent context.Context, opts cli.Options, stdout, stderr io.Writer) error {
	log := cmdutil.Logger{Dst: stderr, Quiet: opts.Quiet}
	coord := ingest.New(opts.IngestConfig(log.Warnf), opts.Files1, opts.Files2)
	defer func() { _ = coord.Close() }()

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := writers.StartWriter(outw, opts.Output, 256)

	var bar *pb.ProgressBar
	if opts.Progress {
		bar = pb.Simple.New(0).SetWriter(stderr).Start()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	needOverlap := opts.Output == writers.FormatJSONL
	total, perr := cmdutil.RunStream(ctx, coord,
		func(res ingest.Result) (bool, writers.Record, error) {
			if bar != nil {
				bar.Increment()
			}
			if !opts.KeepFiltered && (res.Mate1.Filter() || (res.Mate2 != nil && res.Mate2.Filter())) {
				return false, writers.Record{}, nil
			}
			if needOverlap && res.Mate2 != nil {
				trim.FindOverlap(res.Mate1, res.Mate2)
			}
			return true, writers.Record{Mate1: res.Mate1, Mate2: res.Mate2}, nil
		},
		func(r writers.Record) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(inCh)
	if bar != nil {
		bar.Finish()
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return nil
	} else if werr != nil {
		return &exitError{ExitOutput, werr}
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return nil
	} else if e != nil {
		return &exitError{ExitOutput, e}
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return &exitError{ExitInterrupted, perr}
		}
		return &exitError{ExitInput, perr}
	}

	s := coord.Stats()
	log.Infof("%d records (%d pairs), %d written, %d filtered, %d empty, %d skipped, %d primer chops",
		s.Records, s.Pairs, total, s.Filtered, s.Empty, s.Skipped, s.PrimerChops)
	if s.Unopenable > 0 {
		log.Warnf("%d input file(s) could not be opened", s.Unopenable)
	}
	return nil
}
