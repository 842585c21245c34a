// Package core provides the immutable in-memory friendship Graph shared by
// every analyzer in friendgraph.
//
// The Graph G = (V,E) is built once and never mutated afterwards:
//
//   - V is the set of int64 vertex IDs, stored sorted ascending. Each vertex
//     also owns a dense index in [0, |V|) that follows the same order, so
//     analyzers can keep per-vertex state in plain slices.
//   - E is the list of directed edges in encounter order. Duplicate edges are
//     kept (multiplicity is meaningful for PageRank) and self-loops pass
//     through unchanged.
//   - Out- and in-adjacency are stored in CSR form (offsets + targets), giving
//     O(1) neighbor lookup by dense index.
//
// Why an immutable graph?
//
//   - Analyzers may run on many goroutines without locks: nothing writes.
//   - Dense indices make union-find and PageRank vectors allocation-friendly.
//   - Integrity is checked once in New; every later query can trust it.
//
// Core Methods:
//
//	// Construction
//	New(vertices []int64, edges []Edge) (*Graph, error)  // O((V+E) log V)
//
//	// Query
//	VertexCount() int                      // O(1)
//	EdgeCount() int                        // O(1)
//	Vertices() []int64                     // O(V), copy, ascending
//	Edges() []Edge                         // O(E), copy, encounter order
//	HasVertex(id int64) bool               // O(1)
//	HasEdge(src, dst int64) bool           // O(deg(src))
//	Neighbors(id int64) ([]int64, error)   // O(deg), encounter order
//	OutDegree(id int64) int                // O(1)
//	InDegree(id int64) int                 // O(1)
//
//	// Dense access for analyzers (read-only slices)
//	Index(id int64) (int, bool)
//	VertexAt(i int) int64
//	OutIndices(i int) []int
//	InIndices(i int) []int
//
//	// Views
//	Undirected() *UndirectedView           // connectivity view, no copy
//
// Errors:
//
//	ErrGraphNil        - nil *Graph passed to an analyzer.
//	ErrEmptyGraph      - graph has zero vertices where an analyzer needs some.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrGraphIntegrity  - an edge references a vertex absent from the vertex set.
package core
