package main

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/planner"
	"github.com/kbukum/depbatch/project"
	"github.com/kbukum/depbatch/render"
)

type planFlags struct {
	projects     []string
	format       string
	output       string
	excludeRoots bool
	watch        bool
}

func newPlanCmd(a *app) *cobra.Command {
	var f planFlags
	cmd := &cobra.Command{
		Use:   "plan [project-file]",
		Short: "Print the checkout plan for projects and their dependencies",
		Example: `  depbatch plan projects.yml --project web
  depbatch plan projects.hcl --format json --output plan.json
  depbatch plan --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				f.format = a.cfg.Plan.Format
			}
			if !flags.Changed("exclude-roots") {
				f.excludeRoots = a.cfg.Plan.ExcludeRoots
			}
			if !flags.Changed("watch") {
				f.watch = a.cfg.Plan.Watch
			}
			format, err := render.ParseFormat(f.format)
			if err != nil {
				return err
			}

			file := a.projectFile(args)
			once := func() ([]string, error) {
				return a.writePlan(cmd.Context(), file, a.roots(f.projects), format, f.output, f.excludeRoots)
			}
			if f.watch {
				return watchFiles(cmd.Context(), logger.Get("watch"), file, 200*time.Millisecond, once)
			}
			_, err = once()
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.projects, "project", "p", nil, "project to plan, repeatable (default: the document's default projects)")
	flags.StringVarP(&f.format, "format", "f", "", "output format: mrconfig, json or yaml")
	flags.StringVarP(&f.output, "output", "o", "", "write the plan to this file instead of stdout")
	flags.BoolVar(&f.excludeRoots, "exclude-roots", false, "leave the requested projects out of the plan")
	flags.BoolVarP(&f.watch, "watch", "w", false, "re-plan whenever the project document or an included file changes")
	return cmd
}

// writePlan loads the document, plans roots and writes the result to output
// or stdout. It returns the files the document was read from.
func (a *app) writePlan(ctx context.Context, file string, roots []string, format render.Format, output string, excludeRoots bool) ([]string, error) {
	catalog, files, err := a.loadCatalog(ctx, file)
	if err != nil {
		return files, err
	}
	plan, err := a.planner.Plan(ctx, catalog, roots, planner.Options{ExcludeRoots: excludeRoots})
	if err != nil {
		return files, err
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, plan, format); err != nil {
		return files, err
	}
	if output == "" {
		_, err = a.stdout.Write(buf.Bytes())
		return files, err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return files, errors.InvalidInput("output", err.Error()).WithCause(err)
	}
	return files, nil
}

// loadCatalog reads and resolves a project document. It returns the files
// read so far even when resolution fails.
func (a *app) loadCatalog(ctx context.Context, file string) (*project.Catalog, []string, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanLoad)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProjectFile, file)

	catalog, files, err := resolveFile(file)
	observability.SetSpanAttribute(ctx, observability.AttrFiles, files)
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
		a.metrics.RecordError(ctx, string(errors.Wrap(err).Code), "project")
	}
	a.metrics.RecordOperation(ctx, "load", status, time.Since(start))
	return catalog, files, err
}

func resolveFile(file string) (*project.Catalog, []string, error) {
	doc, err := project.Load(file)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := project.Resolve(doc)
	if err != nil {
		return nil, doc.Files, err
	}
	return catalog, doc.Files, nil
}
