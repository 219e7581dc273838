package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-bus-reservation/internal/config"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/application"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/infrastructure"
	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := zapAdapter.NewZapAppLogger(zapAdapter.Config{AppName: cfg.AppName, Level: cfg.LogLevel})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// O registro vive apenas enquanto o processo estiver rodando.
	registry := infrastructure.NewInMemoryVehicleRegistry(appLogger)

	eventBus, closeEventBus, err := infrastructure.NewReservationEventBus(ctx, cfg.EventBus, appLogger)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer func() {
		if err := closeEventBus(); err != nil {
			pkgApp.LogError(context.Background(), appLogger, "Erro ao fechar o barramento de eventos", err, nil)
		}
	}()

	reservationSlice := reservation.NewReservationSlice(
		application.NewInProcessBuses(appLogger, eventBus),
		registry,
		pkgInfra.GenerateUUID,
		appLogger,
	)

	router := chi.NewRouter()
	reservationSlice.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		pkgApp.LogInfo(ctx, appLogger, "Servidor iniciando", pkgApp.Fields{
			"addr":      cfg.HTTPAddr,
			"event_bus": cfg.EventBus.Kind,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			pkgApp.LogError(ctx, appLogger, "Erro ao iniciar o servidor", err, nil)
			return err
		}
	case <-ctx.Done():
		pkgApp.LogInfo(context.Background(), appLogger, "Sinal capturado, encerrando servidor", nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		pkgApp.LogError(context.Background(), appLogger, "Erro ao encerrar servidor", err, nil)
		return err
	}

	pkgApp.LogInfo(context.Background(), appLogger, "Servidor encerrado", pkgApp.Fields{
		"vehicles": registry.Len(),
	})
	return nil
}
