package components

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/friendgraph/core"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("components: invalid option supplied")

// Option configures Analyze via functional arguments.
type Option func(*Options)

// Options holds parameters for Analyze.
type Options struct {
	// Workers is the number of edge partitions unioned concurrently.
	// 1 runs single-threaded.
	Workers int

	err error
}

// DefaultOptions returns single-threaded Options.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// WithWorkers sets the number of concurrent edge partitions (n ≥ 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// Assignment maps every vertex of a graph to its component label, the
// minimum vertex ID of the component.
type Assignment struct {
	g       *core.Graph
	labels  []int64 // by dense index
	members map[int64][]int64
	order   []int64 // component labels ascending
}

// newAssignment derives labels and member lists from a finished forest.
// Dense indices ascend with vertex ID, so the first index seen for a root is
// the component minimum and member lists come out sorted.
func newAssignment(g *core.Graph, f *forest) *Assignment {
	n := g.VertexCount()
	a := &Assignment{
		g:       g,
		labels:  make([]int64, n),
		members: make(map[int64][]int64),
	}

	rootLabel := make(map[int]int64)
	for i := 0; i < n; i++ {
		r := f.find(i)
		label, ok := rootLabel[r]
		if !ok {
			label = g.VertexAt(i)
			rootLabel[r] = label
			a.order = append(a.order, label)
		}
		a.labels[i] = label
		a.members[label] = append(a.members[label], g.VertexAt(i))
	}

	return a
}

// Graph returns the analyzed graph.
func (a *Assignment) Graph() *core.Graph { return a.g }

// Count returns the number of distinct components.
func (a *Assignment) Count() int { return len(a.order) }

// Component returns the label of id's component.
func (a *Assignment) Component(id int64) (int64, bool) {
	i, ok := a.g.Index(id)
	if !ok {
		return 0, false
	}

	return a.labels[i], true
}

// Same reports whether u and v are in the same component. Unknown IDs are
// never in any component.
func (a *Assignment) Same(u, v int64) bool {
	cu, ok := a.Component(u)
	if !ok {
		return false
	}
	cv, ok := a.Component(v)

	return ok && cu == cv
}

// Labels returns every component label in ascending order.
func (a *Assignment) Labels() []int64 { return slices.Clone(a.order) }

// Sizes returns component label → member count.
func (a *Assignment) Sizes() map[int64]int {
	sizes := make(map[int64]int, len(a.members))
	for label, m := range a.members {
		sizes[label] = len(m)
	}

	return sizes
}

// Size returns the member count of the component labeled comp, or 0.
func (a *Assignment) Size(comp int64) int { return len(a.members[comp]) }

// Members returns the vertex IDs of component comp in ascending order, or nil
// if comp is not a component label.
func (a *Assignment) Members(comp int64) []int64 {
	return slices.Clone(a.members[comp])
}

// Mapping returns vertex ID → component label for every vertex.
func (a *Assignment) Mapping() map[int64]int64 {
	m := make(map[int64]int64, len(a.labels))
	for i, label := range a.labels {
		m[a.g.VertexAt(i)] = label
	}

	return m
}
