package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/depbatch/config"
	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/planner"
	"github.com/kbukum/depbatch/version"
)

// app carries the state shared by all subcommands.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg      config.Config
	log      *logger.Logger
	metrics  *observability.Metrics
	planner  *planner.Planner
	shutdown observability.ShutdownFunc

	stdout io.Writer
	stderr io.Writer
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", version.Program, err)
	}
	return errors.ExitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   version.Program,
		Short: "Plan batched checkouts of projects and their dependencies",
		Long: `depbatch reads a project document (YAML or HCL), resolves the dependencies
of the requested projects and prints the checkout commands grouped into
batches. Every project in a batch only depends on projects of earlier
batches, so a batch can be checked out in parallel.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd.Context()) },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./depbatch.yml or the user config dir)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or disabled")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console, json or pretty")

	root.AddCommand(
		newPlanCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger, metrics and planner.
func (a *app) setup(ctx context.Context) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if err := config.Load(&a.cfg, opts...); err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Log.Format = a.logFormat
	}
	if err := a.cfg.Log.Validate(); err != nil {
		return errors.InvalidInput("log", err.Error())
	}
	if err := logger.SetComponentLevels(a.cfg.Log.Components); err != nil {
		return errors.InvalidInput("log", err.Error())
	}
	a.log = logger.NewWithWriter(&a.cfg.Log, version.Program, a.stderr)
	logger.SetGlobalLogger(a.log)

	shutdown, err := observability.Setup(ctx, a.cfg.Observability, version.Program, version.GetShortVersion(), a.cfg.Environment)
	if err != nil {
		return errors.Internal(err)
	}
	a.shutdown = shutdown

	a.metrics, err = observability.NewMetrics(observability.Meter(version.Program))
	if err != nil {
		return errors.Internal(err)
	}
	a.planner = planner.New(planner.WithLogger(a.log), planner.WithMetrics(a.metrics))
	return nil
}

// close flushes telemetry started by setup.
func (a *app) close() {
	if a.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
	}
}

// projectFile returns the project document named on the command line or
// the configured default.
func (a *app) projectFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Plan.ProjectFile
}

// roots returns the projects named by flag or the configured default.
func (a *app) roots(flagged []string) []string {
	if len(flagged) > 0 {
		return flagged
	}
	return a.cfg.Plan.Projects
}
