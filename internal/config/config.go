// Package config loads friendgraph run configuration from an optional file
// and FRIENDGRAPH_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/friendgraph/centrality"
	"github.com/katalvlaran/friendgraph/loader"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix is the prefix of environment overrides, e.g. FRIENDGRAPH_REPORT_TOP_K.
const EnvPrefix = "FRIENDGRAPH"

// Config holds all run configuration.
type Config struct {
	Input      InputConfig      `mapstructure:"input"`
	Components ComponentsConfig `mapstructure:"components"`
	PageRank   []PageRankRun    `mapstructure:"pagerank" validate:"dive"`
	Report     ReportConfig     `mapstructure:"report"`
	Export     ExportConfig     `mapstructure:"export"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Trace      bool             `mapstructure:"trace"`
}

type InputConfig struct {
	Path          string `mapstructure:"path"`
	CollectErrors bool   `mapstructure:"collect_errors"`
	MaxErrors     int    `mapstructure:"max_errors" validate:"gte=1"`
	MaxLineBytes  int    `mapstructure:"max_line_bytes" validate:"gte=1024"`
}

type ComponentsConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=1"`
}

// PageRankRun is one named PageRank configuration.
type PageRankRun struct {
	Name          string  `mapstructure:"name" validate:"required"`
	Damping       float64 `mapstructure:"damping" validate:"gte=0,lt=1"`
	Tolerance     float64 `mapstructure:"tolerance" validate:"gt=0"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gte=0"`
	StopRule      string  `mapstructure:"stop_rule" validate:"oneof=tolerance iterations"`
	Norm          string  `mapstructure:"norm" validate:"oneof=l1 linf"`
	Dangling      string  `mapstructure:"dangling" validate:"oneof=redistribute leak"`
	Workers       int     `mapstructure:"workers" validate:"gte=1"`
}

type ReportConfig struct {
	TopK      int    `mapstructure:"top_k" validate:"gte=1"`
	ExactSize int    `mapstructure:"exact_size" validate:"gte=1"`
	Format    string `mapstructure:"format" validate:"oneof=text json yaml"`
}

type ExportConfig struct {
	Dir       string `mapstructure:"dir"`
	Size      int    `mapstructure:"size" validate:"gte=0"` // 0 means report.exact_size
	NodesFile string `mapstructure:"nodes_file"`
	EdgesFile string `mapstructure:"edges_file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// DefaultPageRank returns the two historical runs: tolerance-driven with
// damping 0.85, and 20 fixed iterations with damping 0.90.
func DefaultPageRank() []PageRankRun {
	return []PageRankRun{
		{
			Name:      "tolerance",
			Damping:   0.85,
			Tolerance: 0.01,
			StopRule:  "tolerance",
			Norm:      "l1",
			Dangling:  "redistribute",
			Workers:   1,
		},
		{
			Name:          "fixed",
			Damping:       0.90,
			Tolerance:     0.01,
			MaxIterations: 20,
			StopRule:      "iterations",
			Norm:          "l1",
			Dangling:      "redistribute",
			Workers:       1,
		},
	}
}

// Default returns the configuration of the historical friendship report.
func Default() Config {
	return Config{
		Input: InputConfig{
			MaxErrors:    100,
			MaxLineBytes: 16 << 20,
		},
		Components: ComponentsConfig{Workers: 1},
		PageRank:   DefaultPageRank(),
		Report: ReportConfig{
			TopK:      10,
			ExactSize: 25,
			Format:    "text",
		},
		Export: ExportConfig{
			NodesFile: "nodes.csv",
			EdgesFile: "edges.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registers every scalar default so environment variables can
// override keys that no config file mentions.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("input.collect_errors", d.Input.CollectErrors)
	v.SetDefault("input.max_errors", d.Input.MaxErrors)
	v.SetDefault("input.max_line_bytes", d.Input.MaxLineBytes)
	v.SetDefault("components.workers", d.Components.Workers)
	v.SetDefault("report.top_k", d.Report.TopK)
	v.SetDefault("report.exact_size", d.Report.ExactSize)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.size", d.Export.Size)
	v.SetDefault("export.nodes_file", d.Export.NodesFile)
	v.SetDefault("export.edges_file", d.Export.EdgesFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.file", d.Metrics.File)
	v.SetDefault("trace", d.Trace)
}

// Load reads configuration from path (optional, "" skips the file) and the
// environment, then validates it. Soft warnings are returned alongside a
// valid configuration.
func Load(path string) (*Config, []string, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg := Default()
	if v.IsSet("pagerank") {
		// File-provided runs replace the defaults instead of merging by index.
		cfg.PageRank = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	for i := range cfg.PageRank {
		cfg.PageRank[i].fillDefaults()
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	return &cfg, warnings, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks hard constraints (returned as an error wrapping
// ErrInvalidConfig) and returns soft warnings for questionable settings.
func (c *Config) Validate() ([]string, error) {
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.PageRank))
	var warnings []string
	for _, r := range c.PageRank {
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: duplicate pagerank run name %q", ErrInvalidConfig, r.Name)
		}
		seen[r.Name] = true

		if r.Dangling == "leak" {
			warnings = append(warnings, fmt.Sprintf("pagerank run %q leaks dangling mass; scores will not sum to 1", r.Name))
		}
		if r.StopRule == "iterations" && r.MaxIterations == 0 {
			warnings = append(warnings, fmt.Sprintf("pagerank run %q has no max_iterations; using %d", r.Name, centrality.DefaultMaxIterations))
		}
	}
	if len(c.PageRank) == 0 {
		warnings = append(warnings, "no pagerank runs configured; the report will only cover clusters")
	}
	if c.Export.Dir == "" && c.Export.Size > 0 {
		warnings = append(warnings, "export.size is set but export.dir is empty; nothing will be exported")
	}

	return warnings, nil
}

// fillDefaults resolves omitted fields of a file-provided run. A zero damping
// or tolerance means the centrality default.
func (r *PageRankRun) fillDefaults() {
	if r.Damping == 0 {
		r.Damping = centrality.DefaultDamping
	}
	if r.Tolerance == 0 {
		r.Tolerance = centrality.DefaultTolerance
	}
	if r.StopRule == "" {
		r.StopRule = "tolerance"
	}
	if r.Norm == "" {
		r.Norm = "l1"
	}
	if r.Dangling == "" {
		r.Dangling = "redistribute"
	}
	if r.Workers == 0 {
		r.Workers = 1
	}
}

// Options translates the run into centrality options.
func (r PageRankRun) Options() []centrality.Option {
	opts := []centrality.Option{
		centrality.WithDamping(r.Damping),
		centrality.WithTolerance(r.Tolerance),
		centrality.WithWorkers(r.Workers),
	}
	if r.MaxIterations > 0 {
		opts = append(opts, centrality.WithMaxIterations(r.MaxIterations))
	}
	if r.StopRule == "iterations" {
		opts = append(opts, centrality.WithStopRule(centrality.StopAfterIterations))
	}
	if r.Norm == "linf" {
		opts = append(opts, centrality.WithNorm(centrality.NormLInf))
	}
	if r.Dangling == "leak" {
		opts = append(opts, centrality.WithDangling(centrality.Leak))
	}

	return opts
}

// ExportSize resolves the cluster size to export.
func (c *Config) ExportSize() int {
	if c.Export.Size > 0 {
		return c.Export.Size
	}
	return c.Report.ExactSize
}

// LoaderOptions translates the input limits into loader options bound to ctx.
func (in InputConfig) LoaderOptions(ctx context.Context) []loader.Option {
	opts := []loader.Option{
		loader.WithContext(ctx),
		loader.WithMaxErrors(in.MaxErrors),
		loader.WithMaxLineBytes(in.MaxLineBytes),
	}
	if in.CollectErrors {
		opts = append(opts, loader.WithCollectErrors())
	}
	return opts
}
