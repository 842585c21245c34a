package components

// forest is a disjoint-set structure over dense indices [0, n).
type forest struct {
	parent []int
	rank   []uint8
}

func newForest(n int) *forest {
	f := &forest{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range f.parent {
		f.parent[i] = i
	}

	return f
}

// find returns the root of u, halving the path on the way up.
func (f *forest) find(u int) int {
	for f.parent[u] != u {
		f.parent[u] = f.parent[f.parent[u]]
		u = f.parent[u]
	}

	return u
}

// union merges the sets of u and v by rank.
func (f *forest) union(u, v int) {
	ru, rv := f.find(u), f.find(v)
	if ru == rv {
		return
	}
	// Attach the shallower tree under the deeper root.
	switch {
	case f.rank[ru] < f.rank[rv]:
		f.parent[ru] = rv
	case f.rank[ru] > f.rank[rv]:
		f.parent[rv] = ru
	default:
		f.parent[rv] = ru
		f.rank[ru]++
	}
}

// absorb merges every set relation of other into f.
func (f *forest) absorb(other *forest) {
	for i := range other.parent {
		if r := other.find(i); r != i {
			f.union(i, r)
		}
	}
}
