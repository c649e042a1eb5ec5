package main

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

	"github.com/joho/godotenv"

	"github.com/zhouzirui/questme/backend/internal/analysis/topic"
	"github.com/zhouzirui/questme/backend/internal/app"
	"github.com/zhouzirui/questme/backend/internal/config"
	"github.com/zhouzirui/questme/backend/internal/handler"
	"github.com/zhouzirui/questme/backend/internal/i18n"
	"github.com/zhouzirui/questme/backend/internal/model/companion"
	"github.com/zhouzirui/questme/backend/internal/service/journal"
	"github.com/zhouzirui/questme/backend/internal/service/speech"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)
	if envErr != nil {
		logger.Info("no .env file loaded, using system environment variables only", "error", envErr)
	}

	router, err := newRouter(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	if err := startServer(ctx, cfg.Server, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newRouter wires the services described by cfg behind the HTTP router.
func newRouter(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	classifier := topic.NewClassifier()

	tagger, err := tagging.NewService(ctx, classifier)
	if err != nil {
		return nil, fmt.Errorf("tagging service: %w", err)
	}

	return handler.NewRouter(cfg.CORS, handler.Services{
		Companions:    companion.NewMemoryStore(companion.Seed(cfg.Speech.SpeechCode)),
		Journal:       journal.NewService(classifier),
		Tagger:        tagger,
		Synthesizer:   speech.NewSilent(cfg.Speech.PerRune),
		DefaultLocale: i18n.ParseLocale(cfg.Companion.DefaultLocale),
	}), nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("QuestMe backend listening", "addr", addr)
	return runServer(ctx, srv, serverCfg.ShutdownTimeout)
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		slog.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
