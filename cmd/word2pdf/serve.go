package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-word2pdf/internal/assets"
	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/server"
)

// readHeaderTimeout bounds slow clients before the request reaches chi.
const readHeaderTimeout = 10 * time.Second

// runServe starts the HTTP server and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	fs, f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadSettings(f.common, envCfg)
	if err != nil {
		return err
	}
	applyServeFlags(fs, f, cfg)
	if f.common.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log)
	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
	}
	logger.Info("server started",
		"addr", ln.Addr().String(),
		"engine", cfg.Conversion.Engine,
		"maxConcurrent", srv.Concurrency(),
		"maxFiles", cfg.Limits.MaxFiles,
		"maxFileSize", cfg.Limits.MaxFileSize.String(),
		"maxTotalSize", cfg.Limits.MaxTotalSize.String(),
		"version", Version)

	hs := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return serveHTTP(ctx, hs, ln, cfg.Server.ShutdownTimeout.Std(), logger)
}

// buildServer wires the converter, upload page and limits into a Server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	conv, err := newConverter(cfg, logger)
	if err != nil {
		return nil, err
	}

	resolver, err := assets.NewResolver(cfg.Server.AssetPath)
	if err != nil {
		return nil, err
	}
	page, err := assets.LoadIndex(resolver)
	if err != nil {
		return nil, err
	}

	return server.New(conv,
		server.WithLimits(cfg.Limits.MaxFiles, int64(cfg.Limits.MaxFileSize), int64(cfg.Limits.MaxTotalSize)),
		server.WithMaxConcurrent(cfg.Server.MaxConcurrent),
		server.WithRequestTimeout(cfg.Server.RequestTimeout.Std()),
		server.WithDebug(cfg.Server.Debug),
		server.WithLogger(logger),
		server.WithPage(page),
		server.WithVersion(Version),
	)
}

// serveHTTP serves on ln until ctx ends, then drains in-flight requests for
// at most shutdownTimeout.
func serveHTTP(ctx context.Context, hs *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
