package sc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachIndex runs fn(i) for i in [0, n) and collects the results in
// order. When parallel is true the calls fan out across a worker pool sized
// to GOMAXPROCS, bounded by errgroup.SetLimit; when false they run serially
// on the calling goroutine. Either way, the first error returned by any fn
// call aborts the remaining work and is returned to the caller — there is no
// partial-results path, matching the engine's no-cancellation-support
// contract.
func forEachIndex[T any](parallel bool, n int, fn func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	if !parallel {
		for i := 0; i < n; i++ {
			v, err := fn(i)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			v, err := fn(i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
