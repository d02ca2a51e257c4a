package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philly/spacetraveling/internal/platform/eventbus"
	"github.com/philly/spacetraveling/internal/platform/logger"
)

type App struct {
	server *http.Server
	config Config
	bus    *eventbus.Bus
	logger logger.Logger
}

func NewApp(server *http.Server, config Config, bus *eventbus.Bus, logger logger.Logger) *App {
	return &App{
		server: server,
		config: config,
		bus:    bus,
		logger: logger,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run() error {
	ctx := context.Background()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server", "address", a.server.Addr, "environment", a.config.Environment)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.logger.Info(ctx, "shutting down server", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}

		// Let in-flight page regenerations finish before the pool closes.
		if err := a.bus.Wait(shutdownCtx); err != nil {
			a.logger.Warn(ctx, "event handlers still running at shutdown", "error", err)
		}
	}

	a.logger.Info(ctx, "server stopped")
	return nil
}
