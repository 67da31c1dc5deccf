// Package cli implements the labusch command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
	"Labusch/internal/catalog"
	"Labusch/internal/config"
	"Labusch/internal/logger"

	"github.com/spf13/cobra"
)

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

type options struct {
	catalog  string
	exponent string
	step     float64
	format   string
	xlsx     string
	pdf      string
	workers  int
	points   int
	debug    bool
}

// env is what every subcommand runs against once flags and environment are merged.
type env struct {
	log     *slog.Logger
	catalog *catalog.Static
	model   strength.Model
	step    float64
	workers int
	points  int
	format  string
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:          "labusch",
		Short:        "Solid solution strength of multi-component alloys",
		SilenceUsage: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.catalog, "catalog", "", "Element catalog YAML (defaults to CATALOG_PATH or the built-in table)")
	f.StringVar(&o.exponent, "exponent", "", "Misfit exponent: 1/3|2/3 (defaults to MISFIT_EXPONENT or 1/3)")
	f.Float64Var(&o.step, "step", 0, "Sweep step (defaults to SWEEP_STEP or 0.01)")
	f.StringVar(&o.format, "format", "table", "Output format: table|json")
	f.StringVar(&o.xlsx, "xlsx", "", "Also write sweep results to this xlsx file")
	f.StringVar(&o.pdf, "pdf", "", "Also write a PDF report to this file")
	f.IntVar(&o.workers, "workers", 0, "Sweep workers (defaults to SWEEP_WORKERS or CPU count)")
	f.IntVar(&o.points, "max-points", 0, "Largest grid a sweep may evaluate (defaults to MAX_POINTS or 1000000)")
	f.BoolVar(&o.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		elementsCmd(o),
		evalCmd(o),
		binaryCmd(o),
		ternaryCmd(o),
		optimizeCmd(o),
		recommendCmd(o),
	)
	return cmd
}

func (o *options) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if o.debug {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.LogFormat, Out: cmd.ErrOrStderr()})

	path := o.catalog
	if path == "" {
		path = cfg.CatalogPath
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	model, err := cfg.Model.WithExponent(o.exponent)
	if err != nil {
		return nil, err
	}
	step := cfg.Step
	if o.step != 0 {
		step = o.step
	}
	if _, err := sweep.Steps(step); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if o.workers > 0 {
		workers = o.workers
	}
	points := cfg.MaxPoints
	if o.points > 0 {
		points = o.points
	}
	switch o.format {
	case "table", "json":
	default:
		return nil, fmt.Errorf("unsupported format %q (expected table|json)", o.format)
	}

	log.Debug("cli.setup", "catalog", path, "elements", cat.Len(),
		"exponent", strength.ExponentLabel(model.MisfitExponent), "step", step, "workers", workers, "max_points", points)
	return &env{log: log, catalog: cat, model: model, step: step, workers: workers, points: points, format: o.format}, nil
}

func (e *env) runner() sweep.Runner {
	return sweep.Runner{Catalog: e.catalog, Model: e.model, Step: e.step, Workers: e.workers, MaxPoints: e.points}
}
