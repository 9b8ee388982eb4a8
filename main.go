package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/locvowork/employee_management_backend/internal/bootstrap"
	"github.com/locvowork/employee_management_backend/internal/config"
	"github.com/locvowork/employee_management_backend/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, err, "Failed to initialize application")
		os.Exit(1)
	}

	exportTemplate, err := bootstrap.LoadExportTemplate(config.DefaultEnvConfig.EXPORT_TEMPLATE_PATH)
	if err != nil {
		logger.ErrorLog(ctx, err, "Failed to load export template")
		os.Exit(1)
	}
	app.SetupHTTP(exportTemplate)

	go func() {
		logger.InfoLog(ctx, "Starting server on port %s", config.DefaultEnvConfig.APP_PORT)
		if err := app.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLog(ctx, err, "Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLog(shutdownCtx, err, "Graceful shutdown failed")
	}
	logger.InfoLog(shutdownCtx, "Server stopped")
}
