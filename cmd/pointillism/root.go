package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/pointillism"
	// Registers the built-in algorithms.
	_ "github.com/gogpu/pointillism/algorithms"
	"github.com/gogpu/pointillism/manifest"
)

var version = "dev"

// app holds the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config

	registry *pointillism.Registry
	pipeline *pointillism.Pipeline

	closers []io.Closer
}

func newApp() *app {
	return &app{v: viper.New()}
}

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"manifests":      "manifests",
	"max-dimension":  "max_dimension",
	"max-primitives": "max_primitives",
	"trace":          "trace",
	"workers":        "workers",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pointillism",
		Short: "Render images as dots and brush strokes",
		Long: `pointillism re-renders a photograph as a field of coloured dots or
brush strokes, using one of several placement and colouring algorithms.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./pointillism.yaml or ~/.config/pointillism/pointillism.yaml)")
	pf.String("manifests", "", "directory of YAML preset manifests")
	pf.Int("max-dimension", 0, "reject images wider or taller than this (0 = unlimited)")
	pf.Int("max-primitives", 0, "cap the primitives of any render (0 = unlimited)")
	pf.String("trace", "none", "span exporter: none or stdout")
	pf.Int("workers", 0, "goroutines for image analysis (0 = GOMAXPROCS, 1 = none)")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log encoding: text or json")
	pf.String("log-file", "", "write logs to this rotated file instead of stderr")

	for flag, key := range flagKeys {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newListCmd(a), newRenderCmd(a), newWatchCmd(a))
	return root
}

// setup loads the configuration and builds the registry and pipeline.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, logCloser, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, logCloser)
	pointillism.SetLogger(logger)

	tr, err := newTracing(cfg.Trace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, tr)

	pointillism.SetParallelism(cfg.Workers)

	sources := []pointillism.Source{pointillism.Builtin()}
	if cfg.Manifests != "" {
		sources = append(sources, manifest.Dir(cfg.Manifests, pointillism.Builtin()))
	}
	a.registry = pointillism.NewRegistry(sources...)
	a.pipeline = pointillism.NewPipeline(a.registry,
		pointillism.WithMaxDimension(cfg.MaxDimension),
		pointillism.WithMaxPrimitives(cfg.MaxPrimitives),
		pointillism.WithDefaultFormat(cfg.Format),
		pointillism.WithTracer(tr.tracer),
	)
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	pointillism.SetLogger(nil)
	return errors.Join(errs...)
}
