// Package bfs provides breadth-first search over a core.Graph,
// returning hop distances, parent links, and visit order.
//
// BFS explores vertices in increasing distance from a start vertex, along
// out-edges or, with WithUndirected, along edges in both directions.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/friendgraph/core"
)

// walker encapsulates mutable BFS state over dense indices.
type walker struct {
	g     *core.Graph
	view  *core.UndirectedView
	opts  Options
	ctx   context.Context
	queue []int
	depth []int // -1 until discovered
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns core.ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ctx.Err() on cancellation, or any
// OnVisit error.
func BFS(ctx context.Context, g *core.Graph, start int64, opts ...Option) (*Result, error) {
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
	si, ok := g.Index(start)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}

	n := g.VertexCount()
	w := &walker{
		g:     g,
		view:  g.Undirected(),
		opts:  o,
		ctx:   ctx,
		queue: make([]int, 0, 16),
		depth: make([]int, n),
		res: &Result{
			Depth:  make(map[int64]int),
			Parent: make(map[int64]int64),
		},
	}
	for i := range w.depth {
		w.depth[i] = -1
	}

	w.enqueue(si, 0, -1)

	return w.res, w.loop()
}

// enqueue marks i discovered at depth d with the given parent index.
func (w *walker) enqueue(i, d, parent int) {
	w.depth[i] = d
	id := w.g.VertexAt(i)
	w.res.Depth[id] = d
	if parent >= 0 {
		w.res.Parent[id] = w.g.VertexAt(parent)
	}
	w.queue = append(w.queue, i)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		i := w.queue[head]
		d := w.depth[i]
		id := w.g.VertexAt(i)
		w.res.Order = append(w.res.Order, id)
		if err := w.opts.OnVisit(id, d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", id, err)
		}

		if w.opts.MaxDepth > 0 && d >= w.opts.MaxDepth {
			continue
		}
		w.expand(i, d)
	}

	return nil
}

// expand enqueues every undiscovered neighbor of i.
func (w *walker) expand(i, d int) {
	visit := func(j int) {
		if w.depth[j] < 0 {
			w.enqueue(j, d+1, i)
		}
	}
	if w.opts.Undirected {
		w.view.NeighborIndices(i, visit)
		return
	}
	for _, j := range w.g.OutIndices(i) {
		visit(j)
	}
}
