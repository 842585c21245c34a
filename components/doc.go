// Package components computes weakly connected components ("clusters") of a
// core.Graph with a disjoint-set forest.
//
// What:
//
//   - Every edge is treated as undirected; its endpoints are unioned.
//   - Each component is labeled with its minimum vertex ID, so labels are
//     stable across runs and across worker counts.
//   - Isolated vertices form singleton components.
//
// How:
//
//   - Path halving plus union by rank over dense vertex indices.
//   - WithWorkers(n) splits the edge list into n contiguous partitions, unions
//     each partition into a private forest, then merges the forests.
//
// Complexity:
//
//   - Time O((V + E)·α(V)) sequential; merge adds O(n·V) for n workers.
//   - Memory O(V) sequential, O(n·V) parallel.
//
// Errors:
//
//   - core.ErrGraphNil: nil graph.
//   - core.ErrEmptyGraph: graph without vertices.
//   - ErrOptionViolation: invalid option value.
package components
