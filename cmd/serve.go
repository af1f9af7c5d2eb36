package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/server"
)

// Serve starts the read-only local HTTP API over the cached stores.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.engine.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	monitor := r.netMonitor()
	monitor.Start()
	defer monitor.Stop()

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewCacheHandler(r.guides, monitor))
	router.Handler(server.NewPlannerHandler(r.destinations, r.trips))

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	r.logger.Info("serving local API", "addr", addr)
	r.writePlain("Listening on http://%s\n", addr)

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the cached stores over a local HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (defaults to config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (defaults to config)",
			},
		},
		Action: r.Serve,
	}
}
