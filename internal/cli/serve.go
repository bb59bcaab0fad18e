package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/swapstack/internal/api"
	"github.com/matzehuels/swapstack/pkg/cache"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve counting and generation over HTTP",
		Long: `Serve the counting, generation, and apply operations over HTTP.

Endpoints:

  GET  /healthz
  GET  /v1/counts?n=4
  GET  /v1/plans?n=4&l=2&limit=10
  POST /v1/apply

The server uses the configured cache backend and shuts down cleanly on
interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			listenAddr := addr
			if listenAddr == "" {
				listenAddr = c.cfg().Serve.Addr
			}
			if listenAddr == "" {
				listenAddr = ":8080"
			}

			// Redis and MongoDB backends may race the server start after a
			// deploy, so connection failures are retried before giving up.
			prog := newProgress(c.Logger)
			var store cache.Cache
			err := cache.RetryWithBackoff(ctx, func() error {
				var cerr error
				store, cerr = c.newCache(ctx, noCache)
				return cerr
			})
			if err != nil {
				return fmt.Errorf("serve: cache backend: %w", err)
			}
			prog.done("Cache backend ready")

			runner := pipeline.NewRunner(store, c.keyer(), c.Logger)
			defer runner.Close()

			server := api.NewServer(runner, c.Logger)
			httpServer := &http.Server{
				Addr:              listenAddr,
				Handler:           server.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()

			c.Logger.Info("listening", "addr", listenAddr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("serve: shutdown: %w", err)
				}
				c.Logger.Info("server stopped")
				return nil
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "serve without a cache backend")

	return cmd
}
