package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clubsite/internal/fixture"
	"clubsite/internal/logging"
)

func newFixturesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Local backend for development",
	}
	cmd.AddCommand(newFixturesServeCmd(e))
	return cmd
}

func newFixturesServeCmd(e *env) *cobra.Command {
	var addr, contentPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve club content on the /api/* endpoints",
		Long: `Serve club content on the /api/* endpoints until interrupted.

The content file is YAML with club, events, team and socials lists. It may
also force failures (failures: {/api/events: 503}), malformed bodies
(malformed: [/api/team]) and delays (delays: {/api/club: 2s}).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content := fixture.DefaultContent()
			if contentPath != "" {
				var err error
				if content, err = fixture.LoadContent(contentPath); err != nil {
					return err
				}
			}

			srv := fixture.NewServer(addr, content, logging.Component(e.logger, "fixture"))
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving fixtures on http://%s\n", srv.Addr())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(stopCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", fixture.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&contentPath, "content", "", "content file (default: built-in sample club)")
	return cmd
}
