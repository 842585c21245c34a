package centrality

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/friendgraph/core"
)

var tracer = otel.Tracer("github.com/katalvlaran/friendgraph/centrality")

// PageRank scores every vertex of g by power iteration.
//
// Every vertex starts at 1/N. One round computes, from the previous vector
// old:
//
//	new[v] = (1-d)/N + d·Σ_{u→v} old[u]/outdeg(u) + d·D/N
//
// where D is the total old score of zero out-degree vertices (Redistribute;
// Leak drops the last term). Duplicate edges count once per occurrence.
// A round never reads values written in the same round; with Workers > 1 each
// worker owns a contiguous destination range and the errgroup wait is the
// barrier between rounds.
//
// Errors:
//   - core.ErrGraphNil, core.ErrEmptyGraph
//   - ErrOptionViolation for invalid options
//   - ctx.Err() if cancelled between rounds
//
// Hitting the cap under StopOnTolerance is not an error: the Result carries
// a *ConvergenceError in Warning() and the warning is logged.
func PageRank(ctx context.Context, g *core.Graph, opts ...Option) (*Result, error) {
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
	n := g.VertexCount()
	if n == 0 {
		return nil, core.ErrEmptyGraph
	}
	limit := o.iterationCap()

	ctx, span := tracer.Start(ctx, "centrality.PageRank",
		trace.WithAttributes(
			attribute.Int("vertices", n),
			attribute.Int("edges", g.EdgeCount()),
			attribute.Float64("damping", o.Damping),
			attribute.Float64("tolerance", o.Tolerance),
			attribute.Int("max_iterations", limit),
			attribute.String("stop_rule", o.StopRule.String()),
			attribute.String("dangling", o.Dangling.String()),
			attribute.Int("workers", o.Workers),
		),
	)
	defer span.End()

	it := newIterator(g, o)
	res := &Result{vertices: g.Vertices(), Options: o}
	for res.Iterations < limit {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}
		delta, err := it.step(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		res.Iterations++
		res.Delta = delta
		o.Logger.Debug("pagerank iteration",
			zap.Int("iteration", res.Iterations),
			zap.Float64("delta", delta),
		)
		if o.StopRule == StopOnTolerance && delta < o.Tolerance {
			res.Converged = true
			break
		}
	}
	if o.StopRule == StopAfterIterations {
		res.Converged = true
	}
	if !res.Converged {
		res.warning = &ConvergenceError{Iterations: res.Iterations, Delta: res.Delta, Tolerance: o.Tolerance}
		o.Logger.Warn("pagerank hit iteration cap",
			zap.Int("iterations", res.Iterations),
			zap.Float64("delta", res.Delta),
			zap.Float64("tolerance", o.Tolerance),
		)
		span.SetStatus(codes.Error, res.warning.Error())
	}
	res.scores = it.cur

	span.SetAttributes(
		attribute.Int("iterations", res.Iterations),
		attribute.Float64("delta", res.Delta),
		attribute.Bool("converged", res.Converged),
	)

	return res, nil
}

// iterator holds the two score vectors and the per-round scratch space.
type iterator struct {
	g       *core.Graph
	o       Options
	n       int
	cur     []float64 // snapshot read by the round
	next    []float64 // written by the round
	contrib []float64 // cur[u]/outdeg(u), 0 for dangling u
}

func newIterator(g *core.Graph, o Options) *iterator {
	n := g.VertexCount()
	it := &iterator{
		g:       g,
		o:       o,
		n:       n,
		cur:     make([]float64, n),
		next:    make([]float64, n),
		contrib: make([]float64, n),
	}
	floats.AddConst(1/float64(n), it.cur)

	return it
}

// step performs one round and returns the distance between the old and the
// new vector. On return cur holds the new vector.
func (it *iterator) step(ctx context.Context) (float64, error) {
	d, n := it.o.Damping, float64(it.n)

	var dangling float64
	for u := 0; u < it.n; u++ {
		if deg := it.g.OutDegreeAt(u); deg > 0 {
			it.contrib[u] = it.cur[u] / float64(deg)
		} else {
			it.contrib[u] = 0
			dangling += it.cur[u]
		}
	}
	base := (1 - d) / n
	if it.o.Dangling == Redistribute {
		base += d * dangling / n
	}

	if err := it.pull(ctx, base); err != nil {
		return 0, err
	}

	delta := floats.Distance(it.next, it.cur, it.o.Norm.order())
	it.cur, it.next = it.next, it.cur

	return delta, nil
}

// pull fills next from contrib, splitting the destination range over workers.
func (it *iterator) pull(ctx context.Context, base float64) error {
	workers := min(it.o.Workers, it.n)
	if workers <= 1 {
		it.pullRange(0, it.n, base)
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*it.n/workers, (w+1)*it.n/workers
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			it.pullRange(lo, hi, base)
			return nil
		})
	}

	return eg.Wait()
}

func (it *iterator) pullRange(lo, hi int, base float64) {
	d := it.o.Damping
	for v := lo; v < hi; v++ {
		var s float64
		for _, u := range it.g.InIndices(v) {
			s += it.contrib[u]
		}
		it.next[v] = base + d*s
	}
}
