// Package loader parses friendship adjacency records into a core.Graph.
//
// What:
//
//   - One record per line: "<user>\t<friend1>,<friend2>,...,<friendN>".
//   - An empty friend field means the user has no outgoing edges.
//   - Each friend token becomes one directed edge user→friend, in token order.
//   - The vertex set is every ID seen as a user or as a friend.
//
// Errors:
//
//   - ErrMalformedRecord: a line has no tab, or a token is not a base-10 int64.
//     The concrete *RecordError carries the 1-based line number and text.
//   - Lines are never skipped. By default the first bad line aborts; with
//     WithCollectErrors every bad line is reported at once.
//
// Complexity:
//
//   - Load: O(L + E) parsing plus O(V log V + E) graph construction.
package loader
