// File: types.go
// Role: Options, stop rules and result types for PageRank.
// Determinism:
//   - A Result is a pure function of the graph and the resolved options; the
//     worker count never changes the scores.

package centrality

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Sentinel errors.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("centrality: invalid option supplied")

	// ErrConvergenceNotReached matches the warning of a run that hit its
	// iteration cap before the delta fell below the tolerance.
	ErrConvergenceNotReached = errors.New("centrality: convergence not reached")
)

// ConvergenceError carries the residual delta of a capped run.
// It is a warning: the scores in the Result are still usable.
type ConvergenceError struct {
	Iterations int
	Delta      float64
	Tolerance  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("centrality: convergence not reached after %d iterations (delta %.3g, tolerance %g)",
		e.Iterations, e.Delta, e.Tolerance)
}

// Is reports ErrConvergenceNotReached as a match.
func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergenceNotReached }

// StopRule selects the termination criterion.
type StopRule int

const (
	// StopOnTolerance stops once the delta drops below the tolerance; the
	// iteration cap only bounds runaway runs.
	StopOnTolerance StopRule = iota
	// StopAfterIterations runs exactly MaxIterations iterations.
	StopAfterIterations
)

func (r StopRule) String() string {
	switch r {
	case StopOnTolerance:
		return "tolerance"
	case StopAfterIterations:
		return "iterations"
	default:
		return fmt.Sprintf("StopRule(%d)", int(r))
	}
}

// Norm selects how the change between two iterations is measured.
type Norm int

const (
	NormL1 Norm = iota
	NormLInf
)

// order returns the gonum floats.Distance order for the norm.
func (n Norm) order() float64 {
	if n == NormLInf {
		return math.Inf(1)
	}
	return 1
}

func (n Norm) String() string {
	if n == NormLInf {
		return "linf"
	}
	return "l1"
}

// Dangling selects what happens to the score of zero out-degree vertices.
type Dangling int

const (
	// Redistribute spreads dangling mass uniformly over all vertices.
	Redistribute Dangling = iota
	// Leak drops dangling mass, so totals shrink below 1 on graphs with sinks.
	Leak
)

func (d Dangling) String() string {
	if d == Leak {
		return "leak"
	}
	return "redistribute"
}

// Defaults.
const (
	DefaultDamping       = 0.85
	DefaultTolerance     = 0.01
	DefaultMaxIterations = 20
	// DefaultToleranceCap bounds StopOnTolerance runs when no explicit
	// iteration cap was given.
	DefaultToleranceCap = 100
)

// Option configures PageRank.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the PageRank parameters.
type Options struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int // 0 means "use the rule's default"
	StopRule      StopRule
	Norm          Norm
	Dangling      Dangling
	Workers       int
	Logger        *zap.Logger

	err error
}

// DefaultOptions returns the tolerance-driven configuration with uniform
// dangling redistribution, one worker and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Damping:   DefaultDamping,
		Tolerance: DefaultTolerance,
		StopRule:  StopOnTolerance,
		Norm:      NormL1,
		Dangling:  Redistribute,
		Workers:   1,
		Logger:    zap.NewNop(),
	}
}

// iterationCap resolves the effective cap for the selected rule.
func (o Options) iterationCap() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	if o.StopRule == StopAfterIterations {
		return DefaultMaxIterations
	}
	return DefaultToleranceCap
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithDamping sets the link-following probability, d ∈ [0,1).
func WithDamping(d float64) Option {
	return func(o *Options) {
		if math.IsNaN(d) || d < 0 || d >= 1 {
			o.fail("damping must be in [0,1) (%v)", d)
			return
		}
		o.Damping = d
	}
}

// WithTolerance sets the convergence threshold, tol > 0.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if math.IsNaN(tol) || tol <= 0 {
			o.fail("tolerance must be positive (%v)", tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations sets the iteration cap (StopOnTolerance) or the exact
// iteration count (StopAfterIterations). n must be ≥ 1.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.fail("max iterations must be ≥ 1 (%d)", n)
			return
		}
		o.MaxIterations = n
	}
}

// WithStopRule selects the termination criterion.
func WithStopRule(r StopRule) Option {
	return func(o *Options) {
		if r != StopOnTolerance && r != StopAfterIterations {
			o.fail("unknown stop rule %v", r)
			return
		}
		o.StopRule = r
	}
}

// WithNorm selects L1 or L-infinity deltas.
func WithNorm(n Norm) Option {
	return func(o *Options) {
		if n != NormL1 && n != NormLInf {
			o.fail("unknown norm %d", int(n))
			return
		}
		o.Norm = n
	}
}

// WithDangling selects the dangling-mass policy.
func WithDangling(d Dangling) Option {
	return func(o *Options) {
		if d != Redistribute && d != Leak {
			o.fail("unknown dangling policy %d", int(d))
			return
		}
		o.Dangling = d
	}
}

// WithWorkers sets how many goroutines share each iteration, n ≥ 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.fail("workers must be ≥ 1 (%d)", n)
			return
		}
		o.Workers = n
	}
}

// WithLogger routes iteration and convergence logs to l.
// A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// HistoricalTolerance is the tolerance-driven configuration of the original
// reports: damping 0.85 (reset probability 0.15), tolerance 0.01.
func HistoricalTolerance() []Option {
	return []Option{WithDamping(0.85), WithTolerance(0.01), WithStopRule(StopOnTolerance)}
}

// HistoricalFixed is the iteration-driven configuration of the original
// reports: damping 0.90 (reset probability 0.10), exactly 20 iterations.
func HistoricalFixed() []Option {
	return []Option{WithDamping(0.90), WithMaxIterations(20), WithStopRule(StopAfterIterations)}
}

// Result holds PageRank scores and run statistics.
type Result struct {
	vertices []int64
	scores   []float64
	warning  *ConvergenceError

	// Iterations is the number of update rounds performed.
	Iterations int
	// Delta is the change measured in the last round.
	Delta float64
	// Converged is true when the stop rule was met: the delta fell below the
	// tolerance, or the fixed iteration count was completed.
	Converged bool
	// Options are the resolved parameters of the run.
	Options Options
}

// Score returns the score of id.
func (r *Result) Score(id int64) (float64, bool) {
	i := sort.Search(len(r.vertices), func(k int) bool { return r.vertices[k] >= id })
	if i == len(r.vertices) || r.vertices[i] != id {
		return 0, false
	}
	return r.scores[i], true
}

// Scores returns a fresh ID → score map.
func (r *Result) Scores() map[int64]float64 {
	m := make(map[int64]float64, len(r.vertices))
	for i, id := range r.vertices {
		m[id] = r.scores[i]
	}
	return m
}

// Sum returns the total score mass.
func (r *Result) Sum() float64 { return floats.Sum(r.scores) }

// Warning returns a *ConvergenceError if a tolerance-driven run hit its cap,
// and nil otherwise.
func (r *Result) Warning() error {
	if r.warning == nil {
		return nil
	}
	return r.warning
}
