// Package centrality computes PageRank scores over a core.Graph.
//
// The iteration is explicit: every round reads an immutable snapshot of the
// previous scores and writes a fresh vector, so rounds can be split over
// workers without coordination beyond a barrier. Two stop rules are
// supported, tolerance-driven (StopOnTolerance) and fixed-count
// (StopAfterIterations), matching the two configurations historically used
// for friendship reports (see HistoricalTolerance and HistoricalFixed).
//
// Zero out-degree vertices redistribute their mass uniformly by default, so
// scores always sum to 1 within floating-point error. WithDangling(Leak)
// reproduces implementations that drop that mass.
//
// Basic usage:
//
//	res, err := centrality.PageRank(ctx, g, centrality.HistoricalTolerance()...)
//	if err != nil {
//	    return err
//	}
//	if w := res.Warning(); w != nil {
//	    log.Print(w)
//	}
//	s, _ := res.Score(42)
package centrality
