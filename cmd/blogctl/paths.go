package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the post slugs built ahead of time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slugs, err := toolsFrom(cmd).Posts.ListPaths(cmd.Context())
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(cmd.OutOrStdout(), "/post/"+slug)
			}
			return nil
		},
	}
}
