// Package report derives filtered summaries from component assignments and
// centrality scores: top-K clusters, exact-size membership and top-K rankings.
//
// All orderings are total. Ties on size or score are broken by ascending ID,
// so identical inputs always produce identical reports.
package report

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/friendgraph/components"
)

// ClusterSize pairs a component label with its member count.
type ClusterSize struct {
	ID   int64 `json:"id" yaml:"id"`
	Size int   `json:"size" yaml:"size"`
}

// Ranked pairs a vertex ID with its centrality score.
type Ranked struct {
	ID    int64   `json:"id" yaml:"id"`
	Score float64 `json:"score" yaml:"score"`
}

// Clusters answers size questions about one Assignment.
type Clusters struct {
	a      *components.Assignment
	bySize []ClusterSize // size desc, ID asc
}

// NewClusters indexes the sizes of a. a must not be nil.
func NewClusters(a *components.Assignment) *Clusters {
	sizes := a.Sizes()
	bySize := make([]ClusterSize, 0, len(sizes))
	for id, n := range sizes {
		bySize = append(bySize, ClusterSize{ID: id, Size: n})
	}
	slices.SortFunc(bySize, func(x, y ClusterSize) int {
		if c := cmp.Compare(y.Size, x.Size); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})

	return &Clusters{a: a, bySize: bySize}
}

// Total returns the number of clusters.
func (c *Clusters) Total() int { return len(c.bySize) }

// TopBySize returns the k largest clusters, largest first.
// k <= 0 yields an empty slice; k > Total() yields all clusters.
func (c *Clusters) TopBySize(k int) []ClusterSize {
	return slices.Clone(c.bySize[:clamp(k, len(c.bySize))])
}

// SumOfTop returns the total member count of TopBySize(k).
func (c *Clusters) SumOfTop(k int) int {
	var total int
	for _, cs := range c.bySize[:clamp(k, len(c.bySize))] {
		total += cs.Size
	}
	return total
}

// IDsOfExactSize returns the labels of clusters with exactly n members,
// ascending.
func (c *Clusters) IDsOfExactSize(n int) []int64 {
	ids := []int64{}
	for _, cs := range c.bySize {
		if cs.Size == n {
			ids = append(ids, cs.ID)
		}
	}
	slices.Sort(ids)

	return ids
}

// OfExactSize returns the members of every cluster with exactly n members,
// merged and ascending. An empty slice means no cluster has that size.
func (c *Clusters) OfExactSize(n int) []int64 {
	members := []int64{}
	for _, id := range c.IDsOfExactSize(n) {
		members = append(members, c.a.Members(id)...)
	}
	slices.Sort(members)

	return members
}

// TopByScore returns the k highest scored IDs, score descending with ties
// by ascending ID. k <= 0 yields an empty slice; k > len(scores) yields all.
func TopByScore(scores map[int64]float64, k int) []Ranked {
	all := make([]Ranked, 0, len(scores))
	for id, s := range scores {
		all = append(all, Ranked{ID: id, Score: s})
	}
	slices.SortFunc(all, func(x, y Ranked) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})

	return all[:clamp(k, len(all))]
}

// IDs projects rankings to their vertex IDs.
func IDs(rs []Ranked) []int64 {
	ids := make([]int64, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func clamp(k, n int) int {
	return max(0, min(k, n))
}
