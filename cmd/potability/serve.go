package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"potability/config"
	phttp "potability/http"
	"potability/logger"
	"potability/ml"
	"potability/monitoring"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form",
		Long: `Serve loads the model artifact and starts the HTTP server.

A missing or unreadable artifact stops startup; no form is served without it.

Examples:
  potability serve
  potability serve -m /srv/models/model_and_scaler.json -p 8080`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(logOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer closeLog()

	if source != "" {
		log.Info("Config loaded", zap.String("path", source))
	} else {
		log.Info("No config file found, using defaults")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg, log)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	bundle, err := ml.LoadBundle(cfg.Model.Path)
	if err != nil {
		log.Error("Failed to load model artifact", zap.String("path", cfg.Model.Path), zap.Error(err))
		return err
	}
	log.Info("Model artifact loaded",
		zap.String("path", bundle.Source),
		zap.String("scaler", bundle.ScalerType),
		zap.String("model", bundle.ModelType),
	)

	predictor, err := ml.NewPredictor(bundle, cfg.Model.CacheSize)
	if err != nil {
		return err
	}
	metrics := monitoring.NewMetrics()

	if cfg.Model.Watch {
		watcher, err := monitoring.NewArtifactWatcher(cfg.Model.Path, log)
		if err != nil {
			log.Warn("Artifact watch disabled", zap.Error(err))
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil {
					log.Warn("Artifact watch stopped", zap.Error(err))
				}
			}()
		}
	}

	handler, err := phttp.NewHandler(predictor, metrics, phttp.HandlerConfig{
		Title:  cfg.UI.Title,
		Locale: cfg.UI.Locale,
	}, log)
	if err != nil {
		return err
	}

	serverConfig := phttp.DefaultServerConfig()
	serverConfig.Port = cfg.Http.Port
	serverConfig.Timeout = cfg.Http.Timeout
	server := phttp.NewServer(serverConfig, handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Stop(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Exiting")
	return nil
}

func logOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
}
