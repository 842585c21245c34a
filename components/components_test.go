package components_test

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/friendgraph/bfs"
	"github.com/katalvlaran/friendgraph/components"
	"github.com/katalvlaran/friendgraph/core"
)

// mustGraph builds a core.Graph or fails the test.
func mustGraph(t testing.TB, vertices []int64, edges []core.Edge) *core.Graph {
	t.Helper()
	g, err := core.New(vertices, edges)
	require.NoError(t, err)

	return g
}

// randomGraph builds a sparse random graph with many small components.
// Self-loops and duplicates are included on purpose.
func randomGraph(t testing.TB, seed int64, n, m int) *core.Graph {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	vs := make([]int64, n)
	for i := range vs {
		vs[i] = int64(i*3 + 10) // sparse, non-contiguous IDs
	}
	es := make([]core.Edge, m)
	for i := range es {
		es[i] = core.Edge{Src: vs[r.Intn(n)], Dst: vs[r.Intn(n)]}
	}

	return mustGraph(t, vs, es)
}

// TestAnalyze_Scenario covers {1,2,3} connected and 4 isolated.
func TestAnalyze_Scenario(t *testing.T) {
	g := mustGraph(t, []int64{1, 2, 3, 4}, []core.Edge{{Src: 1, Dst: 2}, {Src: 1, Dst: 3}, {Src: 2, Dst: 1}, {Src: 3, Dst: 1}})

	a, err := components.Analyze(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, 2, a.Count())
	for _, id := range []int64{1, 2, 3} {
		c, ok := a.Component(id)
		require.True(t, ok)
		assert.Equal(t, int64(1), c, "component of %d labeled by minimum ID", id)
	}
	c, _ := a.Component(4)
	assert.Equal(t, int64(4), c, "isolated vertex is its own singleton")

	assert.Equal(t, []int64{1, 4}, a.Labels())
	assert.Equal(t, map[int64]int{1: 3, 4: 1}, a.Sizes())
	assert.Equal(t, []int64{1, 2, 3}, a.Members(1))
	assert.Equal(t, 3, a.Size(1))
	assert.Nil(t, a.Members(2), "2 is a member, not a label")
	assert.Equal(t, map[int64]int64{1: 1, 2: 1, 3: 1, 4: 4}, a.Mapping())
	assert.Same(t, g, a.Graph())

	_, ok := a.Component(99)
	assert.False(t, ok)
}

// TestAnalyze_DirectionIgnored verifies one-way chains still connect.
func TestAnalyze_DirectionIgnored(t *testing.T) {
	// 9→5←7 and 3→3 (self-loop only)
	g := mustGraph(t, []int64{3, 5, 7, 9}, []core.Edge{{Src: 9, Dst: 5}, {Src: 7, Dst: 5}, {Src: 3, Dst: 3}})
	a, err := components.Analyze(context.Background(), g)
	require.NoError(t, err)

	assert.True(t, a.Same(9, 7))
	assert.True(t, a.Same(5, 9))
	assert.False(t, a.Same(3, 5))
	assert.False(t, a.Same(3, 42), "unknown vertex is in no component")
	c, _ := a.Component(9)
	assert.Equal(t, int64(5), c, "label is the minimum of {5,7,9}")
	assert.Equal(t, 2, a.Count())
}

// TestAnalyze_Errors covers nil, empty and option violations.
func TestAnalyze_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := components.Analyze(ctx, nil)
	assert.ErrorIs(t, err, core.ErrGraphNil)

	_, err = components.Analyze(ctx, mustGraph(t, nil, nil))
	assert.ErrorIs(t, err, core.ErrEmptyGraph)

	g := mustGraph(t, []int64{1}, nil)
	_, err = components.Analyze(ctx, g, components.WithWorkers(0))
	assert.ErrorIs(t, err, components.ErrOptionViolation)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = components.Analyze(cctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestAnalyze_ParallelMatchesSequential checks worker count never changes labels.
func TestAnalyze_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 5; seed++ {
		g := randomGraph(t, seed, 2000, 1500)

		seq, err := components.Analyze(ctx, g)
		require.NoError(t, err)
		for _, w := range []int{2, 3, 8, 64} {
			par, err := components.Analyze(ctx, g, components.WithWorkers(w))
			require.NoError(t, err)
			assert.Equal(t, seq.Mapping(), par.Mapping(), "seed=%d workers=%d", seed, w)
		}
	}
}

// TestAnalyze_AgreesWithGonum cross-checks against gonum's connected components.
func TestAnalyze_AgreesWithGonum(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := randomGraph(t, seed, 500, 400)
		a, err := components.Analyze(context.Background(), g)
		require.NoError(t, err)

		ref := simple.NewUndirectedGraph()
		for _, id := range g.Vertices() {
			ref.AddNode(simple.Node(id))
		}
		for _, e := range g.Edges() {
			if e.Src == e.Dst {
				continue // gonum simple graphs reject self edges
			}
			ref.SetEdge(ref.NewEdge(simple.Node(e.Src), simple.Node(e.Dst)))
		}

		comps := topo.ConnectedComponents(ref)
		require.Equal(t, len(comps), a.Count(), "seed=%d", seed)
		for _, comp := range comps {
			ids := make([]int64, len(comp))
			for i, n := range comp {
				ids[i] = n.ID()
			}
			want := slices.Min(ids)
			for _, id := range ids {
				got, _ := a.Component(id)
				assert.Equal(t, want, got, "seed=%d vertex=%d", seed, id)
			}
		}
	}
}

// TestAnalyze_AgreesWithBFS checks that labels form exactly the equivalence
// classes reachable in the undirected view.
func TestAnalyze_AgreesWithBFS(t *testing.T) {
	ctx := context.Background()
	g := randomGraph(t, 11, 300, 220)
	a, err := components.Analyze(ctx, g)
	require.NoError(t, err)

	seen := map[int64]bool{}
	classes := 0
	for _, id := range g.Vertices() {
		if seen[id] {
			continue
		}
		classes++
		res, err := bfs.BFS(ctx, g, id, bfs.WithUndirected())
		require.NoError(t, err)

		label, _ := a.Component(id)
		for _, v := range res.Order {
			seen[v] = true
			got, _ := a.Component(v)
			assert.Equal(t, label, got, "BFS from %d reached %d", id, v)
		}
		assert.Equal(t, a.Size(label), len(res.Order), "component of %d", id)
	}
	assert.Equal(t, classes, a.Count())
}

// TestAssignment_Equivalence checks reflexive, symmetric and transitive relation.
func TestAssignment_Equivalence(t *testing.T) {
	g := randomGraph(t, 3, 60, 40)
	a, err := components.Analyze(context.Background(), g)
	require.NoError(t, err)

	vs := g.Vertices()
	for _, u := range vs {
		assert.True(t, a.Same(u, u))
		for _, v := range vs {
			assert.Equal(t, a.Same(u, v), a.Same(v, u))
			if !a.Same(u, v) {
				continue
			}
			for _, w := range vs {
				if a.Same(v, w) {
					assert.True(t, a.Same(u, w))
				}
			}
		}
	}
}

// TestAnalyze_Reproducible runs twice on identical input.
func TestAnalyze_Reproducible(t *testing.T) {
	ctx := context.Background()
	a1, err := components.Analyze(ctx, randomGraph(t, 9, 400, 300))
	require.NoError(t, err)
	a2, err := components.Analyze(ctx, randomGraph(t, 9, 400, 300))
	require.NoError(t, err)
	assert.Equal(t, a1.Mapping(), a2.Mapping())
}
