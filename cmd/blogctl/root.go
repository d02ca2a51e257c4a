package main

import (
	"context"
	"time"

	"github.com/philly/spacetraveling/internal/server"
	"github.com/spf13/cobra"
)

type toolsKey struct{}

func newRootCmd() *cobra.Command {
	var cleanup func()

	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Operate the blog's generated pages",
		Long: `blogctl talks to the content backend and the page store with the same
configuration as the API server (.env file and environment variables).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tools, release, err := server.InitializeTools(cmd.Context())
			if err != nil {
				return err
			}
			cleanup = release
			cmd.SetContext(context.WithValue(cmd.Context(), toolsKey{}, tools))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			tools := toolsFrom(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			defer cleanup()
			return tools.Bus.Wait(ctx)
		},
	}

	root.AddCommand(newPathsCmd(), newPrerenderCmd(), newReadingTimeCmd())
	return root
}

func toolsFrom(cmd *cobra.Command) *server.Tools {
	return cmd.Context().Value(toolsKey{}).(*server.Tools)
}
