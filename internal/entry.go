package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/codevault/internal/api"
	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/mcpserver"
	"github.com/starford/codevault/internal/snippetservice"
	"github.com/starford/codevault/internal/sse"
)

const sseKeepalive = 30 * time.Second

// NewHandler builds the HTTP handler tree: health checks, the API under /api
// and the SSE stream at /api/events.
func NewHandler(svc *snippetservice.Service, auth AuthConfig, events http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := svc.Store().Load(); err != nil && !errors.Is(err, apperr.ErrStoreMissing) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"store unreadable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", api.NewRouter(svc, auth.AuthEnabled(), auth.Token, events))
	return r
}

// Serve runs the read-only HTTP API until ctx is cancelled or a shutdown
// signal arrives. A watcher keeps the search index in step with the store
// and publishes snippet change events to SSE clients.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.config
	logger := a.logger
	slog.SetDefault(logger)

	svc, err := a.indexed()
	if err != nil {
		return err
	}
	defer a.Close()

	if ch, err := svc.Reindex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	} else {
		logger.Info("initial sync done",
			slog.Int("created", len(ch.Created)),
			slog.Int("updated", len(ch.Updated)),
			slog.Int("deleted", len(ch.Deleted)))
	}

	broker := sse.NewBroker(sseKeepalive)
	defer broker.Close()
	// Search requests sync too; every pass publishes through the same syncer.
	svc.Syncer().OnChange(broker.PublishSnippetEvent)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           NewHandler(svc, cfg.Auth, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return index.Watch(gCtx, svc.Syncer(), a.store.Path(), logger)
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group once the server has been shut down so the
// watcher stops too.
var errShutdown = errors.New("shutdown")

// ServeMCP exposes the snippet tools over MCP stdio until the client disconnects.
func (a *App) ServeMCP(_ context.Context) error {
	svc, err := a.indexed()
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("MCP server starting", slog.String("version", a.version))
	return mcpserver.New(svc, a.version).ServeStdio()
}
