// File: impl_topology.go
// Role: deterministic constructors (Path, Cycle, Star, Complete, Isolated).
// Determinism:
//   - IDs are allocated in ascending order; links are emitted i asc, j asc.

package builder

import "fmt"

const (
	methodPath     = "Path"
	methodCycle    = "Cycle"
	methodStar     = "Star"
	methodComplete = "Complete"
	methodIsolated = "Isolated"

	minPathNodes     = 2
	minCycleNodes    = 3
	minStarNodes     = 2
	minCompleteNodes = 1
	minIsolatedNodes = 1
)

func validateMin(method string, n, minimum int) error {
	if n < minimum {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, minimum, ErrTooFewVertices)
	}
	return nil
}

// Path returns a Constructor for the chain u₀→u₁→…→uₙ₋₁, n ≥ 2.
func Path(n int) Constructor {
	return func(s *sink, cfg builderConfig) error {
		if err := validateMin(methodPath, n, minPathNodes); err != nil {
			return err
		}
		first, err := s.alloc(methodPath, n)
		if err != nil {
			return err
		}
		for i := int64(0); i < int64(n)-1; i++ {
			s.link(first+i, first+i+1, cfg.symmetric)
		}

		return nil
	}
}

// Cycle returns a Constructor for Path(n) closed by uₙ₋₁→u₀, n ≥ 3.
func Cycle(n int) Constructor {
	return func(s *sink, cfg builderConfig) error {
		if err := validateMin(methodCycle, n, minCycleNodes); err != nil {
			return err
		}
		first, err := s.alloc(methodCycle, n)
		if err != nil {
			return err
		}
		last := first + int64(n) - 1
		for u := first; u < last; u++ {
			s.link(u, u+1, cfg.symmetric)
		}
		s.link(last, first, cfg.symmetric)

		return nil
	}
}

// Star returns a Constructor for a hub u₀ listed by leaves u₁…uₙ₋₁, n ≥ 2.
// The hub is the first ID of the block, so it also labels the cluster.
func Star(n int) Constructor {
	return func(s *sink, cfg builderConfig) error {
		if err := validateMin(methodStar, n, minStarNodes); err != nil {
			return err
		}
		hub, err := s.alloc(methodStar, n)
		if err != nil {
			return err
		}
		for leaf := hub + 1; leaf < hub+int64(n); leaf++ {
			s.link(leaf, hub, cfg.symmetric)
		}

		return nil
	}
}

// Complete returns a Constructor where every pair i<j is linked i→j, n ≥ 1.
// With symmetry on this is the clique K_n.
func Complete(n int) Constructor {
	return func(s *sink, cfg builderConfig) error {
		if err := validateMin(methodComplete, n, minCompleteNodes); err != nil {
			return err
		}
		first, err := s.alloc(methodComplete, n)
		if err != nil {
			return err
		}
		end := first + int64(n)
		for u := first; u < end; u++ {
			for v := u + 1; v < end; v++ {
				s.link(u, v, cfg.symmetric)
			}
		}

		return nil
	}
}

// Isolated returns a Constructor for n users without friends, n ≥ 1.
func Isolated(n int) Constructor {
	return func(s *sink, _ builderConfig) error {
		if err := validateMin(methodIsolated, n, minIsolatedNodes); err != nil {
			return err
		}
		_, err := s.alloc(methodIsolated, n)

		return err
	}
}
