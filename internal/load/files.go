package load

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Files loads several CSV files concurrently, bounded by Options.Workers.
// Each file gets its own table (unless Options.Table pins one, which only
// makes sense for a single file). The returned stats follow the input
// order. The first failure cancels the remaining loads.
func Files(ctx context.Context, opts Options, paths []string) ([]*Stats, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*Stats, len(paths))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			st, err := File(ctx, opts, p)
			if err != nil {
				return err
			}
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
