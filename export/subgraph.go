// Package export extracts induced subgraphs from a core.Graph, relabels
// their vertices to the dense range [0, N) and writes them as CSV artifacts
// (a "node" vertex list and a "source,target" edge list).
package export

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/friendgraph/core"
)

// Pair is a relabeled edge.
type Pair struct {
	Source int
	Target int
}

// Subgraph is an induced subgraph with dense labels.
type Subgraph struct {
	// Vertices holds the original IDs, ascending; label i is Vertices[i].
	Vertices []int64
	// Edges holds the retained edges, relabeled, in original encounter order.
	Edges []Pair
}

// Induce builds the subgraph of g induced by subset.
// The subset is sorted and deduplicated first; every edge with both
// endpoints inside it is kept, duplicates included.
//
// Errors:
//   - core.ErrGraphNil if g is nil
//   - core.ErrVertexNotFound if a subset ID is not in g
func Induce(g *core.Graph, subset []int64) (*Subgraph, error) {
	if g == nil {
		return nil, core.ErrGraphNil
	}
	vs := slices.Clone(subset)
	slices.Sort(vs)
	vs = slices.Compact(vs)

	// label[denseIndex] = rank+1, so zero means "outside the subset".
	label := make([]int, g.VertexCount())
	for r, id := range vs {
		i, ok := g.Index(id)
		if !ok {
			return nil, fmt.Errorf("export: %w: %d", core.ErrVertexNotFound, id)
		}
		label[i] = r + 1
	}

	sg := &Subgraph{Vertices: vs, Edges: []Pair{}}
	for _, e := range g.Edges() {
		si, _ := g.Index(e.Src)
		di, _ := g.Index(e.Dst)
		if label[si] == 0 || label[di] == 0 {
			continue
		}
		sg.Edges = append(sg.Edges, Pair{Source: label[si] - 1, Target: label[di] - 1})
	}

	return sg, nil
}

// Rank returns the dense label of an original ID.
func (sg *Subgraph) Rank(id int64) (int, bool) {
	i := sort.Search(len(sg.Vertices), func(k int) bool { return sg.Vertices[k] >= id })
	if i == len(sg.Vertices) || sg.Vertices[i] != id {
		return 0, false
	}
	return i, true
}

// Original maps a dense label back to its original ID.
// It panics if label is out of range, like a slice index.
func (sg *Subgraph) Original(label int) int64 { return sg.Vertices[label] }

// OriginalEdges maps every relabeled edge back to original IDs.
func (sg *Subgraph) OriginalEdges() []core.Edge {
	out := make([]core.Edge, len(sg.Edges))
	for i, p := range sg.Edges {
		out[i] = core.Edge{Src: sg.Original(p.Source), Dst: sg.Original(p.Target)}
	}
	return out
}
