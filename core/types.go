package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core graph operations.
var (
	// ErrGraphNil indicates a nil *Graph was passed where a graph is required.
	ErrGraphNil = errors.New("core: graph is nil")

	// ErrEmptyGraph indicates the graph has no vertices.
	ErrEmptyGraph = errors.New("core: graph has no vertices")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrGraphIntegrity indicates an edge references a vertex that is not part
	// of the vertex set. It always signals a bug in whatever produced the input.
	ErrGraphIntegrity = errors.New("core: edge references unknown vertex")
)

// GraphIntegrityError identifies the offending edge and the missing vertex.
// It matches ErrGraphIntegrity under errors.Is.
type GraphIntegrityError struct {
	// Vertex is the endpoint that is absent from the vertex set.
	Vertex int64

	// Edge is the edge that referenced Vertex.
	Edge Edge

	// Position is the index of Edge in the input edge list.
	Position int
}

// Error implements error.
func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("core: edge #%d %s references unknown vertex %d", e.Position, e.Edge, e.Vertex)
}

// Is reports whether target is ErrGraphIntegrity.
func (e *GraphIntegrityError) Is(target error) bool {
	return target == ErrGraphIntegrity
}

// Edge is a directed friendship link from Src to Dst.
type Edge struct {
	// Src is the user whose friend list contained Dst.
	Src int64

	// Dst is the listed friend.
	Dst int64
}

// String renders the edge as "(src,dst)".
func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.Src, e.Dst)
}

// Graph is the immutable friendship graph.
//
// vertices is sorted ascending and index maps each ID back to its position.
// srcIdx and dstIdx mirror edges with dense endpoints.
// Out-adjacency of dense vertex i is outTargets[outOffsets[i]:outOffsets[i+1]],
// listed in edge encounter order; in-adjacency is laid out the same way.
type Graph struct {
	vertices []int64
	index    map[int64]int
	edges    []Edge
	srcIdx   []int // dense source of edges[k]
	dstIdx   []int // dense destination of edges[k]

	outOffsets []int
	outTargets []int
	inOffsets  []int
	inSources  []int
}
