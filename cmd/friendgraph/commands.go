package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/friendgraph/bfs"
	"github.com/katalvlaran/friendgraph/builder"
	"github.com/katalvlaran/friendgraph/centrality"
	"github.com/katalvlaran/friendgraph/components"
	"github.com/katalvlaran/friendgraph/core"
	"github.com/katalvlaran/friendgraph/export"
	"github.com/katalvlaran/friendgraph/internal/config"
	"github.com/katalvlaran/friendgraph/internal/pipeline"
	"github.com/katalvlaran/friendgraph/loader"
	"github.com/katalvlaran/friendgraph/report"
)

var errNoInput = errors.New("no input: pass --input or set input.path")

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		input     string
		format    string
		exportDir string
		size      int
		topK      int
		exactSize int
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report clusters and PageRank rankings, optionally exporting a cluster subgraph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			cfg := a.cfg
			if flags.Changed("input") {
				cfg.Input.Path = input
			}
			if flags.Changed("format") {
				cfg.Report.Format = format
			}
			if flags.Changed("export-dir") {
				cfg.Export.Dir = exportDir
			}
			if flags.Changed("export-size") {
				cfg.Export.Size = size
			}
			if flags.Changed("top") {
				cfg.Report.TopK = topK
			}
			if flags.Changed("exact-size") {
				cfg.Report.ExactSize = exactSize
			}
			if flags.Changed("workers") {
				cfg.Components.Workers = workers
			}
			if _, err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd, a)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Friendship list file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "Report format: text, json or yaml")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Write nodes/edges CSV files of the exported clusters here")
	cmd.Flags().IntVar(&size, "export-size", 0, "Cluster size to export (default: --exact-size)")
	cmd.Flags().IntVar(&topK, "top", 10, "Number of clusters and users to list")
	cmd.Flags().IntVar(&exactSize, "exact-size", 25, "List the clusters with exactly this many users")
	cmd.Flags().IntVar(&workers, "workers", 1, "Union-find workers")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app) error {
	r, closeInput, err := openInput(cmd, a.cfg.Input.Path)
	if err != nil {
		return err
	}
	defer closeInput()

	res, err := pipeline.New(a.cfg, a.log, a.rec).Run(cmd.Context(), r)
	if err != nil {
		return err
	}

	return writeSummary(cmd.OutOrStdout(), res.Summary, a.cfg.Report.Format)
}

func writeSummary(w io.Writer, s *report.Summary, format string) error {
	switch format {
	case "json":
		return s.WriteJSON(w)
	case "yaml":
		return s.WriteYAML(w)
	default:
		return s.WriteText(w)
	}
}

func newPageRankCmd(a *app) *cobra.Command {
	var (
		input string
		topK  int
		run   = config.PageRankRun{
			Name:      "cli",
			Damping:   centrality.DefaultDamping,
			Tolerance: centrality.DefaultTolerance,
			StopRule:  "tolerance",
			Norm:      "l1",
			Dangling:  "redistribute",
			Workers:   1,
		}
	)
	cmd := &cobra.Command{
		Use:   "pagerank",
		Short: "Rank users by PageRank, using the configured runs or the one described by flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				a.cfg.Input.Path = input
			}
			runs := a.cfg.PageRank
			for _, name := range []string{"damping", "tolerance", "max-iter", "stop-rule", "norm", "dangling", "workers"} {
				if flags.Changed(name) {
					runs = []config.PageRankRun{run}
					break
				}
			}
			if !flags.Changed("top") {
				topK = a.cfg.Report.TopK
			}
			a.cfg.PageRank = runs
			if _, err := a.cfg.Validate(); err != nil {
				return err
			}
			return runPageRank(cmd, a, runs, topK)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Friendship list file (- for stdin)")
	cmd.Flags().IntVar(&topK, "top", 10, "Number of users to list per run")
	cmd.Flags().Float64Var(&run.Damping, "damping", run.Damping, "Damping factor in [0,1)")
	cmd.Flags().Float64Var(&run.Tolerance, "tolerance", run.Tolerance, "Convergence tolerance")
	cmd.Flags().IntVar(&run.MaxIterations, "max-iter", 0, "Iteration cap (0: rule default)")
	cmd.Flags().StringVar(&run.StopRule, "stop-rule", run.StopRule, "Stop rule: tolerance or iterations")
	cmd.Flags().StringVar(&run.Norm, "norm", run.Norm, "Residual norm: l1 or linf")
	cmd.Flags().StringVar(&run.Dangling, "dangling", run.Dangling, "Dangling mass: redistribute or leak")
	cmd.Flags().IntVar(&run.Workers, "workers", run.Workers, "Parallel workers per iteration")

	return cmd
}

func runPageRank(cmd *cobra.Command, a *app, runs []config.PageRankRun, topK int) error {
	g, err := loadGraph(cmd, a)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, run := range runs {
		opts := append(run.Options(), centrality.WithLogger(a.log.With(zap.String("pagerank_run", run.Name))))
		res, err := centrality.PageRank(cmd.Context(), g, opts...)
		if err != nil {
			return fmt.Errorf("pagerank %q: %w", run.Name, err)
		}
		a.rec.ObservePageRank(run.Name, res.Iterations, res.Delta)

		fmt.Fprintf(tw, "# %s: %s stop, %d iterations, delta %.3g, converged %t\n",
			run.Name, res.Options.StopRule, res.Iterations, res.Delta, res.Converged)
		fmt.Fprintln(tw, "rank\tuser\tscore")
		for i, r := range report.TopByScore(res.Scores(), topK) {
			fmt.Fprintf(tw, "%d\t%d\t%.6f\n", i+1, r.ID, r.Score)
		}
		if w := res.Warning(); w != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", run.Name, w)
		}
	}

	return tw.Flush()
}

func newExportCmd(a *app) *cobra.Command {
	var (
		input     string
		out       string
		size      int
		users     []int64
		nodesFile string
		edgesFile string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the subgraph induced by a cluster size or an explicit user list as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("input") {
				a.cfg.Input.Path = input
			}
			if flags.Changed("nodes-file") {
				a.cfg.Export.NodesFile = nodesFile
			}
			if flags.Changed("edges-file") {
				a.cfg.Export.EdgesFile = edgesFile
			}
			if flags.Changed("size") {
				a.cfg.Export.Size = size
			}
			return runExport(cmd, a, out, users)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Friendship list file (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "", "Output directory")
	cmd.Flags().IntVar(&size, "size", 0, "Export every cluster with exactly this many users (default: report.exact_size)")
	cmd.Flags().Int64SliceVar(&users, "users", nil, "Export the subgraph induced by these user IDs instead")
	cmd.Flags().StringVar(&nodesFile, "nodes-file", export.DefaultNodesFile, "Nodes CSV file name")
	cmd.Flags().StringVar(&edgesFile, "edges-file", export.DefaultEdgesFile, "Edges CSV file name")
	_ = cmd.MarkFlagRequired("out")
	cmd.MarkFlagsMutuallyExclusive("size", "users")

	return cmd
}

func runExport(cmd *cobra.Command, a *app, out string, users []int64) error {
	g, err := loadGraph(cmd, a)
	if err != nil {
		return err
	}

	subset := users
	if len(subset) == 0 {
		asg, err := components.Analyze(cmd.Context(), g, components.WithWorkers(a.cfg.Components.Workers))
		if err != nil {
			return err
		}
		subset = report.NewClusters(asg).OfExactSize(a.cfg.ExportSize())
		if len(subset) == 0 {
			a.log.Warn("no cluster of the requested size", zap.Int("size", a.cfg.ExportSize()))
		}
	}

	sg, err := export.Induce(g, subset)
	if err != nil {
		return err
	}
	nodes, edges, err := export.WriteFiles(out, a.cfg.Export.NodesFile, a.cfg.Export.EdgesFile, sg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d nodes\n%s\t%d edges\n", nodes, len(sg.Vertices), edges, len(sg.Edges))

	return nil
}

func newReachCmd(a *app) *cobra.Command {
	var (
		input    string
		user     int64
		depth    int
		directed bool
	)
	cmd := &cobra.Command{
		Use:   "reach",
		Short: "List the users reachable from one user, with their hop distance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("input") {
				a.cfg.Input.Path = input
			}
			return runReach(cmd, a, user, depth, directed)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Friendship list file (- for stdin)")
	cmd.Flags().Int64Var(&user, "user", 0, "Start user ID")
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum hop distance (0: unlimited)")
	cmd.Flags().BoolVar(&directed, "directed", false, "Follow only listed friendships, not the reverse direction")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runReach(cmd *cobra.Command, a *app, user int64, depth int, directed bool) error {
	g, err := loadGraph(cmd, a)
	if err != nil {
		return err
	}

	opts := []bfs.Option{bfs.WithMaxDepth(depth)}
	if !directed {
		opts = append(opts, bfs.WithUndirected())
	}
	res, err := bfs.BFS(cmd.Context(), g, user, opts...)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "user\tdepth\tvia")
	for _, id := range res.Order {
		via := "-"
		if p, ok := res.Parent[id]; ok {
			via = fmt.Sprint(p)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\n", id, res.Depth[id], via)
	}
	a.log.Info("reach finished", zap.Int64("user", user), zap.Int("reached", len(res.Order)))

	return tw.Flush()
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out      string
		cliques  []int
		stars    []int
		paths    []int
		isolated int
		random   int
		prob     float64
		seed     int64
		oneWay   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic friendship list built from cliques, stars, paths and random clusters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cons []builder.Constructor
			for _, n := range cliques {
				cons = append(cons, builder.Complete(n))
			}
			for _, n := range stars {
				cons = append(cons, builder.Star(n))
			}
			for _, n := range paths {
				cons = append(cons, builder.Path(n))
			}
			if random > 0 {
				cons = append(cons, builder.RandomSparse(random, prob))
			}
			if isolated > 0 {
				cons = append(cons, builder.Isolated(isolated))
			}
			opts := []builder.Option{builder.WithSeed(seed), builder.WithSymmetric(!oneWay)}

			recs, err := builder.Build(opts, cons...)
			if err != nil {
				return err
			}
			a.log.Info("generated friendship list", zap.Int("users", len(recs)))

			return writeRecords(cmd, out, recs)
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "Output file (- for stdout)")
	cmd.Flags().IntSliceVar(&cliques, "cliques", []int{25, 10, 3}, "Sizes of fully connected clusters")
	cmd.Flags().IntSliceVar(&stars, "stars", nil, "Sizes of star clusters")
	cmd.Flags().IntSliceVar(&paths, "paths", nil, "Sizes of chain clusters")
	cmd.Flags().IntVar(&isolated, "isolated", 0, "Number of users without friends")
	cmd.Flags().IntVar(&random, "random", 0, "Size of one random cluster")
	cmd.Flags().Float64Var(&prob, "prob", 0.1, "Friendship probability inside the random cluster")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&oneWay, "one-way", false, "List each friendship only on the record of its first user")

	return cmd
}

func writeRecords(cmd *cobra.Command, out string, recs []loader.Record) (err error) {
	if out == "-" || out == "" {
		return loader.WriteRecords(cmd.OutOrStdout(), recs)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return loader.WriteRecords(f, recs)
}

// loadGraph reads the configured input with the configured loader limits.
func loadGraph(cmd *cobra.Command, a *app) (*core.Graph, error) {
	r, closeInput, err := openInput(cmd, a.cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	g, err := loader.Load(r, a.cfg.Input.LoaderOptions(cmd.Context())...)
	if err != nil {
		return nil, err
	}
	a.rec.ObserveGraph(g.VertexCount(), g.EdgeCount())
	a.log.Info("graph loaded", zap.Int("vertices", g.VertexCount()), zap.Int("edges", g.EdgeCount()))

	return g, nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	switch path {
	case "":
		return nil, nil, errNoInput
	case "-":
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}
