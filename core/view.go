// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - Neighbor order is out-neighbors (encounter order) followed by in-neighbors.
// Concurrency:
//   - Views hold no state of their own and are safe for concurrent readers.

package core

// UndirectedView treats every directed edge as bidirectional for connectivity
// purposes. It reads the underlying Graph directly; the stored directed edge
// list is never copied or mutated.
type UndirectedView struct {
	g *Graph
}

// Undirected returns the connectivity view of g.
func (g *Graph) Undirected() *UndirectedView {
	return &UndirectedView{g: g}
}

// Graph returns the directed graph behind the view.
func (v *UndirectedView) Graph() *Graph { return v.g }

// Neighbors returns every vertex adjacent to id through an edge in either
// direction. An edge u→v contributes v to u's list and u to v's list, so
// mutual friendships and duplicates appear more than once.
//
// Errors:
//   - ErrVertexNotFound: id is not in the graph.
func (v *UndirectedView) Neighbors(id int64) ([]int64, error) {
	i, ok := v.g.index[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out, in := v.g.OutIndices(i), v.g.InIndices(i)
	ids := make([]int64, 0, len(out)+len(in))
	for _, j := range out {
		ids = append(ids, v.g.vertices[j])
	}
	for _, j := range in {
		ids = append(ids, v.g.vertices[j])
	}

	return ids, nil
}

// NeighborIndices calls fn for every dense neighbor of dense index i in the
// undirected sense.
func (v *UndirectedView) NeighborIndices(i int, fn func(j int)) {
	for _, j := range v.g.OutIndices(i) {
		fn(j)
	}
	for _, j := range v.g.InIndices(i) {
		fn(j)
	}
}

// Degree returns the undirected degree of id: in-degree plus out-degree.
// A self-loop counts twice.
func (v *UndirectedView) Degree(id int64) int {
	return v.g.InDegree(id) + v.g.OutDegree(id)
}

// ForEachEdge calls fn with the dense endpoints of every stored edge, in
// encounter order. Endpoint order carries no meaning in this view.
func (v *UndirectedView) ForEachEdge(fn func(a, b int)) {
	v.ForEachEdgeIn(0, len(v.g.edges), fn)
}

// ForEachEdgeIn is ForEachEdge restricted to edge positions [lo, hi).
// It lets callers partition the edge list across workers.
func (v *UndirectedView) ForEachEdgeIn(lo, hi int, fn func(a, b int)) {
	for k := lo; k < hi; k++ {
		fn(v.g.srcIdx[k], v.g.dstIdx[k])
	}
}
