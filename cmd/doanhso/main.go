package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"doanhso/internal/cli"
	"doanhso/internal/config"
	"doanhso/internal/grid"
	gsheet "doanhso/internal/grid/google"
	apphttp "doanhso/internal/http"
	applog "doanhso/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Choose the grid source (default: uploaded workbooks).
	var source grid.Source
	if cfg.GridSource == config.SourceSheets {
		src, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets source", applog.FieldError, err)
			os.Exit(1)
		}
		source = src
		logger.Info("Initialized Google Sheets source", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Initialized upload source", "max_upload_bytes", cfg.MaxUploadBytes)
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Labels:         cfg.Labels(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		Source:         source,
		Logger:         logger,
	})

	// Configure server timeouts and limits. Uploads get a generous write
	// window; everything else is small.
	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting doanhso server",
			"port", cfg.Port,
			"source", cfg.GridSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
