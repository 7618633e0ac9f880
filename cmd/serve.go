package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/0x0BSoD/featfeed/internal/bench"
	"github.com/0x0BSoD/featfeed/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve feature pipelines over HTTP and benchmark them periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				log.Printf("[ERROR] failed to initialize: %v", err)
				return err
			}
			defer a.close()

			runner := bench.New(
				a.catalog.Services(),
				a.benchStorage(),
				a.benchReporter(),
				cfg.BenchInterval,
				cfg.BenchUsers,
				cfg.BenchConcurrency,
			)

			go func(ctx context.Context) {
				if err := runner.Start(ctx); err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Printf("[ERROR] failed to run bench runner: %v", err)
						return
					}

					log.Printf("[INFO] bench runner stopped")
				}
			}(ctx)

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           server.New(a.catalog, a.runProvider()).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Printf("[INFO] serving %d features on %s", len(a.catalog.Names()), cfg.HTTPAddr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] failed to run http server: %v", err)
				return err
			}

			log.Printf("[INFO] http server stopped")
			return nil
		},
	}
}
