// Command libsearch serves MCP full-text search tools over a prebuilt
// library index, speaking either stdio or HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/seforimlab/libsearch/config"
	"github.com/seforimlab/libsearch/index"
	"github.com/seforimlab/libsearch/logger"
	"github.com/seforimlab/libsearch/metrics"
	"github.com/seforimlab/libsearch/registry"
	"github.com/seforimlab/libsearch/search"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "libsearch",
		Usage: "MCP full-text search server over a prebuilt library index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Path to the prebuilt index directory",
				EnvVars: []string{"LIBSEARCH_INDEX"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"LIBSEARCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Usage:   "Serving transport: stdio or http",
				Value:   "stdio",
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "HTTP listen address (http transport only)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override logging level (debug, info, warn, error)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("index"); v != "" {
		cfg.Index.Path = v
	}
	if v := c.String("listen"); v != "" {
		cfg.HTTP.Listen = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if cfg.Index.Path == "" {
		return errors.New("an index path is required (--index or index.path in the config)")
	}

	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	metrics.MustRegister(nil)
	metrics.MustRegisterHTTP(nil)

	// Failing to open the index is the only fatal startup error.
	handle, err := index.Open(cfg.Index.Path, index.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = handle.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !handle.Validate(ctx) {
		log.Warn("index failed its startup probe, serving anyway",
			zap.String("path", cfg.Index.Path),
		)
	}

	agent, err := search.NewAgent(handle, search.Config{
		Workers:    cfg.Search.Workers,
		QueueDepth: cfg.Search.QueueDepth,
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Search.Timeout(),
	}, search.WithLogger(log))
	if err != nil {
		return err
	}
	defer agent.Close()

	reg := registry.New(handle, agent, registry.Config{
		ServerInfo: registry.ServerInfo{
			Name:    cfg.Server.Name,
			Version: cfg.Server.Version,
		},
		Logger: log,
	})

	switch transport := c.String("transport"); transport {
	case "stdio":
		log.Info("serving MCP over stdio", zap.String("index", cfg.Index.Path))
		return registry.ServeStdio(ctx, reg)
	case "http":
		return serveHTTP(ctx, cfg, reg, log)
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

func serveHTTP(ctx context.Context, cfg config.Config, reg *registry.Registry, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Listen,
		Handler:      registry.Router(reg),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving MCP over HTTP", zap.String("listen", cfg.HTTP.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
