package core

import (
	"slices"
)

// New builds a Graph from a vertex set and a directed edge list.
//
// Steps:
//  1. Copy, sort and deduplicate vertices; assign dense indices in that order.
//  2. Verify every edge endpoint is a known vertex; the first violation is
//     returned as *GraphIntegrityError.
//  3. Build out- and in-adjacency in CSR form, preserving edge encounter order.
//
// The input slices are not retained. An empty vertex set is valid here;
// analyzers that need vertices reject it with ErrEmptyGraph.
//
// Complexity: O(V log V + E) time, O(V + E) memory.
func New(vertices []int64, edges []Edge) (*Graph, error) {
	vs := slices.Clone(vertices)
	slices.Sort(vs)
	vs = slices.Compact(vs)

	g := &Graph{
		vertices: vs,
		index:    make(map[int64]int, len(vs)),
		edges:    slices.Clone(edges),
	}
	for i, id := range vs {
		g.index[id] = i
	}

	// Integrity: no edge may reference a vertex outside the vertex set.
	g.srcIdx = make([]int, len(g.edges))
	g.dstIdx = make([]int, len(g.edges))
	for pos, e := range g.edges {
		s, ok := g.index[e.Src]
		if !ok {
			return nil, &GraphIntegrityError{Vertex: e.Src, Edge: e, Position: pos}
		}
		d, ok := g.index[e.Dst]
		if !ok {
			return nil, &GraphIntegrityError{Vertex: e.Dst, Edge: e, Position: pos}
		}
		g.srcIdx[pos], g.dstIdx[pos] = s, d
	}

	g.outOffsets, g.outTargets = g.buildCSR(g.srcIdx, g.dstIdx)
	g.inOffsets, g.inSources = g.buildCSR(g.dstIdx, g.srcIdx)

	return g, nil
}

// buildCSR lays out adjacency rows keyed by from[k] holding to[k].
// Entries keep edge encounter order within each row.
func (g *Graph) buildCSR(from, to []int) ([]int, []int) {
	n := len(g.vertices)
	offsets := make([]int, n+1)
	for _, f := range from {
		offsets[f+1]++
	}
	for i := 0; i < n; i++ {
		offsets[i+1] += offsets[i]
	}

	targets := make([]int, len(from))
	cursor := slices.Clone(offsets[:n])
	for k, f := range from {
		targets[cursor[f]] = to[k]
		cursor[f]++
	}

	return offsets, targets
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns |E|, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertices returns a copy of the vertex IDs in ascending order.
func (g *Graph) Vertices() []int64 { return slices.Clone(g.vertices) }

// Edges returns a copy of the edge list in encounter order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// HasVertex reports whether id is part of the vertex set.
func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether at least one edge src→dst exists.
// Complexity: O(outdeg(src)).
func (g *Graph) HasEdge(src, dst int64) bool {
	i, ok := g.index[src]
	if !ok {
		return false
	}
	j, ok := g.index[dst]
	if !ok {
		return false
	}

	return slices.Contains(g.OutIndices(i), j)
}

// Neighbors returns the out-neighbors of id in edge encounter order.
// Duplicate edges yield repeated neighbors.
//
// Errors:
//   - ErrVertexNotFound: id is not in the graph.
func (g *Graph) Neighbors(id int64) ([]int64, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out := g.OutIndices(i)
	ids := make([]int64, len(out))
	for k, j := range out {
		ids[k] = g.vertices[j]
	}

	return ids, nil
}

// OutDegree returns the number of edges leaving id, or 0 for unknown IDs.
func (g *Graph) OutDegree(id int64) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}

	return g.OutDegreeAt(i)
}

// InDegree returns the number of edges entering id, or 0 for unknown IDs.
func (g *Graph) InDegree(id int64) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}

	return g.inOffsets[i+1] - g.inOffsets[i]
}

// Index returns the dense index of id.
func (g *Graph) Index(id int64) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// VertexAt returns the vertex ID stored at dense index i.
// It panics if i is out of range, like a slice access.
func (g *Graph) VertexAt(i int) int64 { return g.vertices[i] }

// OutDegreeAt returns the out-degree of dense index i.
func (g *Graph) OutDegreeAt(i int) int { return g.outOffsets[i+1] - g.outOffsets[i] }

// OutIndices returns the dense out-neighbors of dense index i.
//
// The returned slice aliases graph storage: callers must treat it as
// read-only. Its capacity is clipped so append never overwrites a neighbor row.
func (g *Graph) OutIndices(i int) []int {
	lo, hi := g.outOffsets[i], g.outOffsets[i+1]
	return g.outTargets[lo:hi:hi]
}

// InIndices returns the dense in-neighbors of dense index i, one entry per
// incoming edge. Same aliasing contract as OutIndices.
func (g *Graph) InIndices(i int) []int {
	lo, hi := g.inOffsets[i], g.inOffsets[i+1]
	return g.inSources[lo:hi:hi]
}
