// Package reduce folds a slice of values into accumulators in parallel.
//
// The input is cut into contiguous chunks, each chunk is folded into its own
// accumulator on its own goroutine, and the partial accumulators are merged
// in chunk order once every chunk is done. No accumulator is ever touched by
// more than one goroutine.
package reduce

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/primstats/internal/core/summary"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers      = 8
	defaultMinChunkSize = 1024
)

// Options controls how values are split across goroutines.
type Options struct {
	// Workers caps the number of chunks folded concurrently.
	Workers int
	// MinChunkSize is the smallest chunk worth a goroutine of its own.
	MinChunkSize int
}

// DefaultOptions returns the defaults used when fields are left zero.
func DefaultOptions() Options {
	return Options{
		Workers:      defaultWorkers,
		MinChunkSize: defaultMinChunkSize,
	}
}

func (o Options) normalized() Options {
	n := o
	if n.Workers <= 0 {
		n.Workers = defaultWorkers
	}
	if n.MinChunkSize <= 0 {
		n.MinChunkSize = defaultMinChunkSize
	}
	return n
}

// chunks returns the number of chunks n values are split into.
func (o Options) chunks(n int) int {
	c := (n + o.MinChunkSize - 1) / o.MinChunkSize
	if c > o.Workers {
		c = o.Workers
	}
	if c < 1 {
		c = 1
	}
	return c
}

// Accumulator is satisfied by the typed accumulators in the stats package,
// e.g. *stats.IntStats[int16] with V = int16.
type Accumulator[V any, A any] interface {
	Record(v V)
	Merge(other A)
}

// Reduce folds values into a single accumulator created by newAcc.
func Reduce[V any, A Accumulator[V, A]](
	ctx context.Context,
	values []V,
	opts Options,
	newAcc func() A,
) (A, error) {
	partials, err := foldChunks(ctx, len(values), opts, func(_ context.Context, lo, hi int) (A, error) {
		acc := newAcc()
		for _, v := range values[lo:hi] {
			acc.Record(v)
		}
		return acc, nil
	})
	if err != nil {
		var zero A
		return zero, err
	}

	result := partials[0]
	for _, p := range partials[1:] {
		result.Merge(p)
	}
	return result, nil
}

// ReduceTokens parses and folds tokens into an accumulator of kind. The first
// token that fails to parse aborts the reduction; its error names the
// token's position.
func ReduceTokens(ctx context.Context, kind summary.Kind, tokens []string, opts Options) (summary.Accumulator, error) {
	if !summary.ValidKind(kind) {
		return nil, fmt.Errorf("%w: %q", summary.ErrUnknownKind, kind)
	}

	partials, err := foldChunks(ctx, len(tokens), opts, func(ctx context.Context, lo, hi int) (summary.Accumulator, error) {
		acc, err := summary.New(kind)
		if err != nil {
			return nil, err
		}
		for i, tok := range tokens[lo:hi] {
			if err := acc.RecordString(tok); err != nil {
				return nil, fmt.Errorf("value %d: %w", lo+i, err)
			}
		}
		return acc, ctx.Err()
	})
	if err != nil {
		return nil, err
	}

	result := partials[0]
	for _, p := range partials[1:] {
		if err := result.Merge(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// foldChunks runs fold over contiguous [lo, hi) chunks of n items and returns
// the partial results in chunk order. It always returns at least one partial.
func foldChunks[P any](
	ctx context.Context,
	n int,
	opts Options,
	fold func(ctx context.Context, lo, hi int) (P, error),
) ([]P, error) {
	opts = opts.normalized()
	chunks := opts.chunks(n)
	partials := make([]P, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < chunks; i++ {
		i := i
		lo, hi := i*n/chunks, (i+1)*n/chunks
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := fold(gctx, lo, hi)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("[Reducer] Reduction aborted", "items", n, "chunks", chunks, "error", err)
		return nil, err
	}

	slog.Debug("[Reducer] Reduction complete", "items", n, "chunks", chunks, "workers", opts.Workers)
	return partials, nil
}
