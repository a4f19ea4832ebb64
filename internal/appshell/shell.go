package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Runner is the signature shared by app.RunContext and friends.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// exitInterrupted is the conventional 128+SIGINT exit status.
const exitInterrupted = 130

// Main runs run with a context cancelled on SIGINT/SIGTERM and exits with
// its code. With no arguments the help text is shown.
func Main(run Runner) {
	os.Exit(mainCode(run, os.Args[1:], os.Stdout, os.Stderr))
}

func mainCode(run Runner, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	// a run that noticed cancellation late still reports it
	if ctx.Err() != nil && code == 0 {
		code = exitInterrupted
	}
	return code
}
