package main

import (
	"fmt"

	"github.com/philly/spacetraveling/internal/platform/validator"
	"github.com/spf13/cobra"
)

func newReadingTimeCmd() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "reading-time <slug>",
		Short: "Print the estimated reading time of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			if err := validator.ValidateSlugFormat(slug, validator.MaxSlugLength); err != nil {
				return err
			}

			page, err := toolsFrom(cmd).Posts.GetPost(cmd.Context(), slug, ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d min\n", slug, page.ReadingMinutes)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "content revision to read instead of the published one")
	return cmd
}
