// Tunable options, result accessors and error definitions for BFS.

package bfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start ID is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it is recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Undirected follows edges in both directions (friend-of-friend
	// reachability regardless of who listed whom).
	Undirected bool

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 disables the depth limit.
	MaxDepth int

	// OnVisit is called when visiting a vertex. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id int64, depth int) error

	err error
}

// DefaultOptions returns Options with sane defaults:
//   - directed traversal along out-edges
//   - no depth limit
//   - no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		OnVisit: func(int64, int) error { return nil },
	}
}

// WithUndirected makes BFS follow edges in both directions.
func WithUndirected() Option {
	return func(o *Options) { o.Undirected = true }
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnVisit registers a callback run on each visit; returning an error
// from it stops the BFS.
func WithOnVisit(fn func(id int64, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	// Order lists vertices in visitation order, start first.
	Order []int64

	// Depth maps each visited vertex to its hop distance from the start.
	Depth map[int64]int

	// Parent maps each visited vertex except the start to the vertex it was
	// discovered from.
	Parent map[int64]int64
}

// PathTo returns the hop path from the start to id, or nil if id was not
// reached.
func (r *Result) PathTo(id int64) []int64 {
	if _, ok := r.Depth[id]; !ok {
		return nil
	}
	path := []int64{id}
	for {
		p, ok := r.Parent[id]
		if !ok {
			break
		}
		path = append(path, p)
		id = p
	}
	// Reverse into start→id order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// AtDepth returns the visited vertices whose distance is exactly d, in
// visitation order.
func (r *Result) AtDepth(d int) []int64 {
	var out []int64
	for _, id := range r.Order {
		if r.Depth[id] == d {
			out = append(out, id)
		}
	}

	return out
}
