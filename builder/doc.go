// Package builder generates deterministic friendship datasets as
// loader.Record slices, for fixtures, benchmarks and the `generate` command.
//
// A dataset is assembled by composing Constructors in Build. Each
// constructor allocates a block of fresh consecutive user IDs (starting at
// WithBase, default 1) and wires friendships inside that block only, so
// every constructor call yields its own cluster(s):
//
//	recs, err := builder.Build(
//	    []builder.Option{builder.WithSeed(7)},
//	    builder.Complete(25),       // one cluster of exactly 25 users
//	    builder.Star(10),           // a hub with 9 friends
//	    builder.RandomSparse(500, 0.002),
//	    builder.Isolated(3),        // three users with no friends
//	)
//
// Constructors:
//
//   - Path(n):             u₀→u₁→…→uₙ₋₁
//   - Cycle(n):            Path(n) closed with uₙ₋₁→u₀
//   - Star(n):             leaves u₁…uₙ₋₁ each list hub u₀
//   - Complete(n):         every unordered pair is a friendship
//   - RandomSparse(n, p):  each admissible pair independently with prob. p
//   - Isolated(n):         n users with empty friend lists
//
// Symmetry: with WithSymmetric(true) (the default) every friendship is
// listed on both users' records, as real exports usually are. With false,
// only the direction named above is listed, which produces one-way links
// and zero out-degree users useful for PageRank fixtures.
//
// Errors are sentinels wrapped with the constructor name:
// ErrTooFewVertices, ErrInvalidProbability, ErrNeedRandSource and
// ErrConstructFailed. Option constructors panic on meaningless values.
package builder
