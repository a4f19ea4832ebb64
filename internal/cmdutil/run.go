package cmdutil

import (
	"context"

	"readprep/internal/ingest"
)

// RunStream drains c, applies a visitor to every built record, and streams
// the kept outputs via send. Skipped partition records are not visited.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	c *ingest.Coordinator,
	visit func(ingest.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		res, err := c.Next()
		if err != nil {
			return total, err
		}
		switch res.Kind {
		case ingest.KindEnd:
			return total, nil
		case ingest.KindSkipped:
			continue
		}
		keep, out, vErr := visit(res)
		if vErr != nil {
			return total, vErr
		}
		if !keep {
			continue
		}
		if err := send(out); err != nil {
			return total, err
		}
		total++
	}
}
