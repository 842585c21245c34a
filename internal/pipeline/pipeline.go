// Package pipeline wires the analysis stages together: load, components,
// cluster report, PageRank runs and the optional subgraph export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/friendgraph/centrality"
	"github.com/katalvlaran/friendgraph/components"
	"github.com/katalvlaran/friendgraph/core"
	"github.com/katalvlaran/friendgraph/export"
	"github.com/katalvlaran/friendgraph/internal/config"
	"github.com/katalvlaran/friendgraph/internal/metrics"
	"github.com/katalvlaran/friendgraph/loader"
	"github.com/katalvlaran/friendgraph/report"
)

var tracer = otel.Tracer("github.com/katalvlaran/friendgraph/internal/pipeline")

// Stage names, used in logs, spans and metrics.
const (
	StageLoad       = "load"
	StageComponents = "components"
	StageReport     = "report"
	StagePageRank   = "pagerank"
	StageExport     = "export"
)

// Result is everything one run produced.
type Result struct {
	RunID      string
	Graph      *core.Graph
	Assignment *components.Assignment
	Clusters   *report.Clusters
	PageRank   map[string]*centrality.Result
	Summary    *report.Summary

	// Exported is nil unless an export directory was configured.
	Exported  *export.Subgraph
	NodesPath string
	EdgesPath string
}

// Pipeline runs the configured stages.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
	rec *metrics.Recorder
}

// New creates a Pipeline. A nil logger is replaced by zap.NewNop; a nil
// recorder disables metrics.
func New(cfg *config.Config, log *zap.Logger, rec *metrics.Recorder) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log, rec: rec}
}

// RunFile opens path and runs the pipeline on it.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open input: %w", err)
	}
	defer f.Close()

	return p.Run(ctx, f)
}

// Run executes every stage on the records read from r.
//
// Malformed input, integrity violations and an empty graph abort the run
// before any artifact is written. PageRank runs that hit their iteration
// cap only add a warning to the summary.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), PageRank: map[string]*centrality.Result{}}
	log := p.log.With(zap.String("run_id", res.RunID))

	ctx, span := tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(attribute.String("run_id", res.RunID)))
	defer span.End()

	err := p.stage(ctx, log, StageLoad, func(ctx context.Context) error {
		g, err := loader.Load(r, p.cfg.Input.LoaderOptions(ctx)...)
		if err != nil {
			p.rec.ObserveMalformed(countMalformed(err))
			return err
		}
		res.Graph = g
		p.rec.ObserveGraph(g.VertexCount(), g.EdgeCount())
		log.Info("graph loaded", zap.Int("vertices", g.VertexCount()), zap.Int("edges", g.EdgeCount()))

		return nil
	})
	if err == nil {
		err = p.stage(ctx, log, StageComponents, func(ctx context.Context) error {
			a, err := components.Analyze(ctx, res.Graph, components.WithWorkers(p.cfg.Components.Workers))
			if err != nil {
				return err
			}
			res.Assignment = a
			p.rec.ObserveComponents(a.Count())
			log.Info("components computed", zap.Int("components", a.Count()))

			return nil
		})
	}
	if err == nil {
		err = p.stage(ctx, log, StageReport, func(context.Context) error {
			res.Clusters = report.NewClusters(res.Assignment)
			res.Summary = report.NewSummary(res.Clusters, p.cfg.Report.TopK, p.cfg.Report.ExactSize)
			res.Summary.RunID = res.RunID

			return nil
		})
	}
	if err == nil {
		err = p.stage(ctx, log, StagePageRank, func(ctx context.Context) error {
			return p.rank(ctx, log, res)
		})
	}
	if err == nil && p.cfg.Export.Dir != "" {
		err = p.stage(ctx, log, StageExport, func(context.Context) error {
			return p.export(log, res)
		})
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return res, nil
}

// rank runs every configured PageRank configuration in order.
func (p *Pipeline) rank(ctx context.Context, log *zap.Logger, res *Result) error {
	for _, run := range p.cfg.PageRank {
		opts := append(run.Options(), centrality.WithLogger(log.With(zap.String("pagerank_run", run.Name))))
		pr, err := centrality.PageRank(ctx, res.Graph, opts...)
		if err != nil {
			return fmt.Errorf("run %q: %w", run.Name, err)
		}
		res.PageRank[run.Name] = pr
		ranking := res.Summary.AddRanking(run.Name, pr, p.cfg.Report.TopK)
		p.rec.ObservePageRank(run.Name, pr.Iterations, pr.Delta)

		fields := []zap.Field{
			zap.String("pagerank_run", run.Name),
			zap.Int("iterations", pr.Iterations),
			zap.Float64("delta", pr.Delta),
			zap.Bool("converged", pr.Converged),
		}
		if top, ok := ranking.Highest(); ok {
			fields = append(fields, zap.Int64("highest", top))
		}
		log.Info("pagerank finished", fields...)
	}

	return nil
}

// export writes the subgraph induced by the clusters of the export size.
func (p *Pipeline) export(log *zap.Logger, res *Result) error {
	size := p.cfg.ExportSize()
	sg, err := export.Induce(res.Graph, res.Clusters.OfExactSize(size))
	if err != nil {
		return err
	}
	nodes, edges, err := export.WriteFiles(p.cfg.Export.Dir, p.cfg.Export.NodesFile, p.cfg.Export.EdgesFile, sg)
	if err != nil {
		return err
	}
	res.Exported, res.NodesPath, res.EdgesPath = sg, nodes, edges
	log.Info("subgraph exported",
		zap.Int("cluster_size", size),
		zap.Int("vertices", len(sg.Vertices)),
		zap.Int("edges", len(sg.Edges)),
		zap.String("nodes", nodes),
		zap.String("edges_file", edges),
	)

	return nil
}

// stage runs fn inside a span, times it and wraps its error with the stage name.
func (p *Pipeline) stage(ctx context.Context, log *zap.Logger, name string, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	p.rec.ObserveStage(name, elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("stage failed", zap.String("stage", name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	log.Debug("stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))

	return nil
}

// countMalformed counts the record errors carried by a loader error.
func countMalformed(err error) int {
	if !errors.Is(err, loader.ErrMalformedRecord) {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
