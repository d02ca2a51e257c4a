package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPrerenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prerender",
		Short: "Generate and store every static post page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := toolsFrom(cmd).Pages.Prerender(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, slug := range report.Generated {
				fmt.Fprintf(out, "generated  %s\n", slug)
			}
			for _, f := range report.Failed {
				fmt.Fprintf(out, "failed     %s: %s\n", f.Slug, f.Reason)
			}
			fmt.Fprintf(out, "%d generated, %d failed in %s\n", len(report.Generated), len(report.Failed), report.Duration)

			if len(report.Failed) > 0 {
				return fmt.Errorf("%d pages failed to render", len(report.Failed))
			}
			return nil
		},
	}
}
