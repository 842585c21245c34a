// Command friendgraph analyzes friendship graphs: connected clusters,
// PageRank centrality, subgraph export and reachability.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/friendgraph/internal/config"
	"github.com/katalvlaran/friendgraph/internal/logging"
	"github.com/katalvlaran/friendgraph/internal/metrics"
	"github.com/katalvlaran/friendgraph/internal/tracing"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	a := &app{}
	root := newRootCmd(a)
	err := root.Execute()
	if cerr := a.close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		if a.log != nil {
			a.log.Error("friendgraph failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "friendgraph:", err)
		}
		os.Exit(1)
	}
}

// app carries process-wide state built once before any subcommand runs.
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string
	trace       bool

	cfg      *config.Config
	log      *zap.Logger
	rec      *metrics.Recorder
	shutdown func(context.Context) error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "friendgraph",
		Short:         "Friendship graph analytics: clusters, PageRank and subgraph export",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file path (yaml, json or toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: console or json")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write prometheus metrics to this file on exit")
	pf.BoolVar(&a.trace, "trace", false, "Print OpenTelemetry spans to stderr")

	root.AddCommand(
		newAnalyzeCmd(a),
		newPageRankCmd(a),
		newExportCmd(a),
		newReachCmd(a),
		newGenerateCmd(a),
	)

	return root
}

// setup loads configuration, then applies persistent flag overrides and
// builds the logger, metrics recorder and tracer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, warnings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.File = a.metricsFile
	}
	if flags.Changed("trace") {
		cfg.Trace = a.trace
	}
	a.cfg = cfg

	if a.log, err = logging.New(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	for _, w := range warnings {
		a.log.Warn("config warning", zap.String("warning", w))
	}

	a.rec = metrics.New()
	if cfg.Trace {
		if a.shutdown, err = tracing.Setup(cmd.ErrOrStderr(), version); err != nil {
			return err
		}
	}

	return nil
}

// close flushes metrics and spans. It is safe to call when setup never ran.
func (a *app) close() error {
	var errs []error
	if a.rec != nil && a.cfg.Metrics.File != "" {
		errs = append(errs, a.rec.WriteFile(a.cfg.Metrics.File))
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(context.Background()))
	}
	if a.log != nil {
		_ = a.log.Sync()
	}

	return errors.Join(errs...)
}
