// Package friendgraph analyzes friendship networks read from
// "user<TAB>friend,friend,..." lists.
//
// What is friendgraph?
//
//	An immutable graph model plus the analyses run on it:
//		• Loading: strict line parsing with line-numbered errors
//		• Components: union-find clustering, labelled by the smallest user ID
//		• Centrality: PageRank with tolerance or fixed-iteration stopping
//		• Reports: largest clusters, exact-size clusters, top-ranked users
//		• Export: induced subgraphs as nodes/edges CSV for external tools
//		• Traversal: BFS reachability over listed or mutual friendships
//
// Under the hood, everything is organized into subpackages:
//
//	core/         Graph, Edge and the undirected view over dense indices
//	loader/       friendship list parsing, graph construction and writing
//	components/   connected clusters in the undirected sense
//	centrality/   PageRank
//	report/       cluster summaries and text/JSON/YAML rendering
//	export/       induced subgraphs and their CSV encoding
//	bfs/          breadth-first reachability
//	builder/      synthetic friendship lists for tests and benchmarks
//
// The friendgraph command (cmd/friendgraph) ties them together with
// configuration, structured logging, metrics and tracing.
//
// Quick start:
//
//	g, err := loader.LoadFile("friends.txt")
//	if err != nil { … }
//	a, err := components.Analyze(ctx, g)
//	c := report.NewClusters(a)
//	pr, err := centrality.PageRank(ctx, g)
//	top := report.TopByScore(pr.Scores(), 10)
package friendgraph
