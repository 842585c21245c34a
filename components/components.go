package components

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/friendgraph/core"
)

var tracer = otel.Tracer("github.com/katalvlaran/friendgraph/components")

// Analyze computes the weakly connected components of g.
//
// Steps:
//  1. Validate: g != nil, |V| > 0, options valid.
//  2. Union the endpoints of every edge; with Workers > 1 each contiguous
//     edge partition is unioned into its own forest and merged afterwards.
//  3. Label each set with its minimum vertex ID.
//
// The graph is only read. Cancellation is checked before and after the union
// phase and by each worker before it starts.
func Analyze(ctx context.Context, g *core.Graph, opts ...Option) (*Assignment, error) {
	if g == nil {
		return nil, core.ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g.VertexCount() == 0 {
		return nil, core.ErrEmptyGraph
	}

	ctx, span := tracer.Start(ctx, "components.Analyze",
		trace.WithAttributes(
			attribute.Int("vertices", g.VertexCount()),
			attribute.Int("edges", g.EdgeCount()),
			attribute.Int("workers", o.Workers),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		f   *forest
		err error
	)
	if o.Workers > 1 && g.EdgeCount() > 0 {
		f, err = unionParallel(ctx, g, o.Workers)
	} else {
		f = unionSequential(g)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := newAssignment(g, f)
	span.SetAttributes(attribute.Int("components", a.Count()))

	return a, nil
}

// unionSequential unions every edge into one forest.
func unionSequential(g *core.Graph) *forest {
	f := newForest(g.VertexCount())
	g.Undirected().ForEachEdge(f.union)

	return f
}

// unionParallel splits the edge list into contiguous partitions, unions each
// partition into a private forest, then folds the forests together.
func unionParallel(ctx context.Context, g *core.Graph, workers int) (*forest, error) {
	n, m := g.VertexCount(), g.EdgeCount()
	workers = min(workers, m)
	view := g.Undirected()

	parts := make([]*forest, workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*m/workers, (w+1)*m/workers
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := newForest(n)
			view.ForEachEdgeIn(lo, hi, f.union)
			parts[w] = f

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	root := parts[0]
	for _, f := range parts[1:] {
		root.absorb(f)
	}

	return root, nil
}
