package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendgraph/internal/metrics"
)

func TestRecorder(t *testing.T) {
	r := metrics.New()
	r.ObserveGraph(10, 25)
	r.ObserveComponents(3)
	r.ObserveMalformed(2)
	r.ObservePageRank("fixed", 20, 0.001)
	r.ObservePageRank("fixed", 5, 0.0005)
	r.ObserveStage("load", 20*time.Millisecond)

	assert.Equal(t, 10.0, testutil.ToFloat64(r.Vertices))
	assert.Equal(t, 25.0, testutil.ToFloat64(r.Edges))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Components))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.MalformedLines))
	assert.Equal(t, 25.0, testutil.ToFloat64(r.Iterations.WithLabelValues("fixed")))
	assert.Equal(t, 0.0005, testutil.ToFloat64(r.Residual.WithLabelValues("fixed")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.StageDuration))
}

func TestRecorder_WriteFile(t *testing.T) {
	r := metrics.New()
	r.ObserveGraph(4, 4)

	path := filepath.Join(t.TempDir(), "friendgraph.prom")
	require.NoError(t, r.WriteFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "friendgraph_graph_vertices 4")
	assert.Contains(t, string(b), "# TYPE friendgraph_graph_edges gauge")
}

func TestRecorder_Nil(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.ObserveGraph(1, 1)
		r.ObserveComponents(1)
		r.ObserveMalformed(1)
		r.ObservePageRank("x", 1, 0)
		r.ObserveStage("x", time.Second)
	})
	assert.Nil(t, r.Registry())
	assert.NotNil(t, metrics.New().Registry())
	assert.NoError(t, r.WriteFile("/nonexistent/dir/x.prom"))
}
