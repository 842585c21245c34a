package builder_test

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendgraph/builder"
	"github.com/katalvlaran/friendgraph/components"
	"github.com/katalvlaran/friendgraph/core"
	"github.com/katalvlaran/friendgraph/loader"
)

func graphOf(t *testing.T, recs []loader.Record) *core.Graph {
	t.Helper()
	g, err := loader.Build(recs)
	require.NoError(t, err)

	return g
}

func TestBuild_Topologies(t *testing.T) {
	tests := []struct {
		name   string
		ctor   builder.Constructor
		wantV  int
		wantE  int // symmetric edge count
		wantOE int // one-way edge count
	}{
		{"Path(4)", builder.Path(4), 4, 6, 3},
		{"Cycle(5)", builder.Cycle(5), 5, 10, 5},
		{"Star(6)", builder.Star(6), 6, 10, 5},
		{"Complete(5)", builder.Complete(5), 5, 20, 10},
		{"Isolated(3)", builder.Isolated(3), 3, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := builder.Build(nil, tc.ctor)
			require.NoError(t, err)
			g := graphOf(t, recs)
			assert.Equal(t, tc.wantV, g.VertexCount())
			assert.Equal(t, tc.wantE, g.EdgeCount())

			recs, err = builder.Build([]builder.Option{builder.WithSymmetric(false)}, tc.ctor)
			require.NoError(t, err)
			g = graphOf(t, recs)
			assert.Equal(t, tc.wantV, g.VertexCount(), "every user keeps a record")
			assert.Equal(t, tc.wantOE, g.EdgeCount())
		})
	}
}

func TestBuild_RecordsShape(t *testing.T) {
	recs, err := builder.Build([]builder.Option{builder.WithBase(10)}, builder.Star(3))
	require.NoError(t, err)

	assert.Equal(t, []loader.Record{
		{User: 10, Friends: []int64{11, 12}},
		{User: 11, Friends: []int64{10}},
		{User: 12, Friends: []int64{10}},
	}, recs)

	recs, err = builder.Build([]builder.Option{builder.WithSymmetric(false)}, builder.Path(3))
	require.NoError(t, err)
	assert.Equal(t, []loader.Record{
		{User: 1, Friends: []int64{2}},
		{User: 2, Friends: []int64{3}},
		{User: 3},
	}, recs)
}

// TestBuild_SeparateClusters checks constructors never link across blocks.
func TestBuild_SeparateClusters(t *testing.T) {
	recs, err := builder.Build([]builder.Option{builder.WithSeed(3)},
		builder.Complete(25),
		builder.Star(10),
		builder.Path(4),
		builder.Isolated(2),
	)
	require.NoError(t, err)

	a, err := components.Analyze(context.Background(), graphOf(t, recs))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 25, 26: 10, 36: 4, 40: 1, 41: 1}, a.Sizes())
}

func TestRandomSparse(t *testing.T) {
	opts := []builder.Option{builder.WithSeed(42)}
	r1, err := builder.Build(opts, builder.RandomSparse(50, 0.1))
	require.NoError(t, err)
	r2, err := builder.Build([]builder.Option{builder.WithSeed(42)}, builder.RandomSparse(50, 0.1))
	require.NoError(t, err)
	assert.Equal(t, r1, r2, "same seed, same dataset")

	none, err := builder.Build(nil, builder.RandomSparse(5, 0))
	require.NoError(t, err)
	assert.Zero(t, graphOf(t, none).EdgeCount())

	all, err := builder.Build([]builder.Option{builder.WithSymmetric(false)}, builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, graphOf(t, all).EdgeCount(), "all ordered pairs without loops")

	rr, err := builder.Build([]builder.Option{builder.WithRand(rand.New(rand.NewSource(1)))}, builder.RandomSparse(10, 0.5))
	require.NoError(t, err)
	assert.Len(t, rr, 10)
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		ctor builder.Constructor
		want error
	}{
		{builder.Path(1), builder.ErrTooFewVertices},
		{builder.Cycle(2), builder.ErrTooFewVertices},
		{builder.Star(1), builder.ErrTooFewVertices},
		{builder.Complete(0), builder.ErrTooFewVertices},
		{builder.Isolated(0), builder.ErrTooFewVertices},
		{builder.RandomSparse(0, 0.5), builder.ErrTooFewVertices},
		{builder.RandomSparse(5, 1.5), builder.ErrInvalidProbability},
		{builder.RandomSparse(5, math.NaN()), builder.ErrInvalidProbability},
		{builder.RandomSparse(5, 0.5), builder.ErrNeedRandSource},
		{nil, builder.ErrConstructFailed},
	}
	for i, tc := range cases {
		_, err := builder.Build(nil, tc.ctor)
		assert.ErrorIs(t, err, tc.want, "case #%d", i)
	}

	_, err := builder.Build([]builder.Option{builder.WithBase(math.MaxInt64 - 1)}, builder.Path(3))
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	assert.Panics(t, func() { builder.WithRand(nil) })
}

// TestBuild_RoundTripThroughLoader writes a dataset and parses it back.
func TestBuild_RoundTripThroughLoader(t *testing.T) {
	recs, err := builder.Build([]builder.Option{builder.WithSeed(9)}, builder.RandomSparse(30, 0.2), builder.Isolated(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, loader.WriteRecords(&buf, recs))
	back, err := loader.ReadRecords(&buf)
	require.NoError(t, err)

	require.Len(t, back, len(recs))
	for i := range recs {
		assert.Equal(t, recs[i].User, back[i].User)
		assert.ElementsMatch(t, recs[i].Friends, back[i].Friends)
	}
}
