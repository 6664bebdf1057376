package nissen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Accumulate returns the net force on every node of p. The law is evaluated
// exactly once per unordered pair (i, j) with i < j; the result is applied
// to i and its opposite to j.
//
// Rows of pairs are spread over GOMAXPROCS workers, each with its own
// buffer. Buffers are reduced in worker order so the result does not depend
// on scheduling. The first error cancels the remaining work.
func Accumulate(ctx context.Context, law Law, p Population) ([]r3.Vec, error) {
	n := p.Len()
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		return make([]r3.Vec, n), nil
	}

	bufs := make([][]r3.Vec, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		bufs[w] = make([]r3.Vec, n)
		g.Go(func() error {
			buf := bufs[w]
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < n; j++ {
					f, err := law.ForceBetween(i, j, p)
					if err != nil {
						return err
					}
					buf[i] = r3.Add(buf[i], f)
					buf[j] = r3.Sub(buf[j], f)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	forces := bufs[0]
	for _, buf := range bufs[1:] {
		for i := range forces {
			forces[i] = r3.Add(forces[i], buf[i])
		}
	}
	return forces, nil
}
