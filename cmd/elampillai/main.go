package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"elampillai/internal/config"
	"elampillai/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load("config/local.env")
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobalLogger(logger)

	if cfg.Confirm.EphemeralSecret && cfg.Confirm.Policy == "always" {
		logger.Warn().Msg("CONFIRM_SECRET not set, using a per-process secret; pending delete confirmations will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	app, err := newApplication(ctx, cfg, backend, logger)
	if err != nil {
		return err
	}

	if err := bootstrapShops(ctx, app.editor, cfg.Storage.SeedFile, logger); err != nil {
		return err
	}

	go app.sessions.Run(ctx, cfg.Session.SweepInterval)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           app.handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("storage", cfg.Storage.Backend).
			Msg("API listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}
