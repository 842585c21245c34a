package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/friendgraph/loader"
)

// Constructor appends one block of users and their friendships to a sink.
// Constructors validate parameters before allocating any ID, so a failing
// constructor leaves the sink untouched.
type Constructor func(s *sink, cfg builderConfig) error

// Build resolves opts and applies cons in order, returning the dataset as
// records sorted by user ID. Every allocated user gets a record, even when
// its friend list is empty. Friend lists keep insertion order.
//
// Errors from constructors are wrapped with "builder: Build: %w"; branch on
// them with errors.Is.
func Build(opts []Option, cons ...Constructor) ([]loader.Record, error) {
	cfg := newBuilderConfig(opts...)
	s := &sink{next: cfg.base}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("builder: Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(s, cfg); err != nil {
			return nil, fmt.Errorf("builder: Build: %w", err)
		}
	}

	return s.records(), nil
}

// sink accumulates users in allocation order. IDs are consecutive, so the
// allocation order is also ascending ID order and no sort is needed.
type sink struct {
	next    int64
	users   []int64
	friends [][]int64
}

// alloc hands out n fresh consecutive IDs and returns the first one.
func (s *sink) alloc(method string, n int) (int64, error) {
	if s.next > math.MaxInt64-int64(n) {
		return 0, fmt.Errorf("%s: %d IDs from %d overflow int64: %w", method, n, s.next, ErrConstructFailed)
	}
	first := s.next
	for i := 0; i < n; i++ {
		s.users = append(s.users, s.next)
		s.friends = append(s.friends, nil)
		s.next++
	}

	return first, nil
}

// slot returns the record position of id, which must have been allocated.
func (s *sink) slot(id int64) int { return int(id - s.users[0]) }

// link lists v as a friend of u and, when symmetric, u as a friend of v.
func (s *sink) link(u, v int64, symmetric bool) {
	iu := s.slot(u)
	s.friends[iu] = append(s.friends[iu], v)
	if symmetric && u != v {
		iv := s.slot(v)
		s.friends[iv] = append(s.friends[iv], u)
	}
}

func (s *sink) records() []loader.Record {
	out := make([]loader.Record, len(s.users))
	for i, id := range s.users {
		out[i] = loader.Record{User: id, Friends: s.friends[i]}
	}

	return out
}
