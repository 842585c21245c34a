// File: config.go
// Role: builder configuration, functional options and deterministic defaults.
//
// Defaults:
//   - base      = 1     (first allocated user ID)
//   - symmetric = true  (friendships listed on both records)
//   - rng       = nil   (pure/deterministic unless seeded)

package builder

import "math/rand"

const (
	defaultBase      = int64(1)
	defaultSymmetric = true
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	base      int64
	symmetric bool
	rng       *rand.Rand
}

// Option customizes a Build run.
type Option func(*builderConfig)

// newBuilderConfig applies options in order over the defaults; last wins.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		base:      defaultBase,
		symmetric: defaultSymmetric,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed creates a seeded *rand.Rand, locking stochastic outcomes.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithBase sets the first user ID handed out.
func WithBase(id int64) Option {
	return func(c *builderConfig) {
		c.base = id
	}
}

// WithSymmetric controls whether each friendship is listed on both records.
func WithSymmetric(on bool) Option {
	return func(c *builderConfig) {
		c.symmetric = on
	}
}
