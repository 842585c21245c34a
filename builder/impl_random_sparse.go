// File: impl_random_sparse.go
// Role: Erdős–Rényi-like RandomSparse(n, p) constructor.
// Model:
//   - Symmetric: unordered pairs {i,j}, i<j, each linked with probability p.
//   - One-way: ordered pairs (i,j), i≠j, each linked with probability p.
// Determinism:
//   - Trials run i asc, j asc, so a fixed seed fixes the dataset.

package builder

import "fmt"

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that samples n users with independent
// friendship probability p. An RNG is required when 0 < p < 1.
func RandomSparse(n int, p float64) Constructor {
	return func(s *sink, cfg builderConfig) error {
		if err := validateMin(methodRandomSparse, n, minRandomSparseVertices); err != nil {
			return err
		}
		if !(p >= probMin && p <= probMax) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		first, err := s.alloc(methodRandomSparse, n)
		if err != nil {
			return err
		}
		hit := func() bool {
			switch p {
			case probMin:
				return false
			case probMax:
				return true
			}
			return cfg.rng.Float64() < p
		}

		end := first + int64(n)
		for u := first; u < end; u++ {
			from := first
			if cfg.symmetric {
				from = u + 1
			}
			for v := from; v < end; v++ {
				if u == v {
					continue
				}
				if hit() {
					s.link(u, v, cfg.symmetric)
				}
			}
		}

		return nil
	}
}
