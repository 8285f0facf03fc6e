package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noctopo/internal/handler"
	"noctopo/internal/hub"
	"noctopo/internal/service"
	"noctopo/internal/watcher"
)

var (
	serveAddr string
	feedPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the panel HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address")
	serveCmd.Flags().StringVar(&feedPath, "feed", "", "series feed file to watch")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveAddr != "" {
		a.cfg.Server.Addr = serveAddr
	}
	if feedPath != "" {
		a.cfg.Feed.Path = feedPath
	}

	// Connect event bus to SSE hub
	sseHub := hub.New(a.logger.Named("hub"))
	go sseHub.Run(ctx)
	events := make(chan service.Event, 100)
	a.bus.Subscribe(events)
	go sseHub.Forward(ctx, events)

	if a.cfg.Feed.Path != "" {
		feedLogger := a.logger.Named("feed")
		load := watcher.FeedLoader(a.cfg.Feed.Path, a.svc.PushSeries, feedLogger)
		load()
		w := watcher.New(a.cfg.Feed.Path, feedLogger, load).WithDebounce(a.cfg.Feed.Debounce.Duration())
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				feedLogger.Error("feed watcher stopped", zap.Error(err))
			}
		}()
	}

	mux := http.NewServeMux()
	handler.NewPanelHandler(a.svc, a.tr, a.logger.Named("http")).Register(mux)
	mux.Handle("GET /events", sseHub)

	server := &http.Server{
		Addr: a.cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover(a.logger),
			handler.CORS,
			handler.Logger(a.logger.Named("http")),
		),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.cfg.Server.Addr), zap.String("panel", a.cfg.Panel.ID))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("server shutdown error", zap.Error(err))
	}
	if a.svc.View().History.Dirty {
		a.logger.Warn("panel has unsaved changes", zap.String("panel", a.cfg.Panel.ID))
	}
	a.logger.Info("server stopped")
	return nil
}
