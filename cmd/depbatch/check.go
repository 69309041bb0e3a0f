package main

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/planner"
)

func newCheckCmd(a *app) *cobra.Command {
	var projects []string
	cmd := &cobra.Command{
		Use:   "check [project-file]",
		Short: "Report whether projects and all their dependencies are enabled",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := a.loadCatalog(cmd.Context(), a.projectFile(args))
			if err != nil {
				return err
			}
			statuses, err := a.planner.Check(cmd.Context(), catalog, a.roots(projects))
			if err != nil {
				return err
			}

			if err := printStatuses(a, statuses); err != nil {
				return err
			}
			var blocked []string
			for _, s := range statuses {
				if !s.Ready() {
					blocked = append(blocked, s.Name)
				}
			}
			if len(blocked) > 0 {
				return errors.New(errors.ErrCodeDependencyResolution,
					fmt.Sprintf("not ready: %s", strings.Join(blocked, ", ")), http.StatusUnprocessableEntity).
					WithDetail("projects", blocked)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&projects, "project", "p", nil, "project to check, repeatable (default: the document's default projects)")
	return cmd
}

func printStatuses(a *app, statuses []planner.Status) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, s := range statuses {
		state := "ready"
		switch {
		case !s.Enabled && !s.Fulfilled:
			state = "disabled, blocked by " + strings.Join(s.Blocking, ", ")
		case !s.Enabled:
			state = "disabled"
		case !s.Fulfilled:
			state = "blocked by " + strings.Join(s.Blocking, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, state)
	}
	return tw.Flush()
}
