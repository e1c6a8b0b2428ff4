package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/connectsphere/media-pipeline/internal/compress"
	"github.com/connectsphere/media-pipeline/internal/config"
	httphandler "github.com/connectsphere/media-pipeline/internal/http"
	"github.com/connectsphere/media-pipeline/internal/log"
	"github.com/connectsphere/media-pipeline/internal/pipeline"
	"github.com/connectsphere/media-pipeline/internal/storage"
	"github.com/connectsphere/media-pipeline/internal/storage/local"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewLogger()

	var store storage.Store
	switch cfg.Storage.Backend {
	case "local":
		store, err = local.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
	default:
		store, err = storage.NewMinioStore(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.PublicBaseURL,
			cfg.Storage.UseSSL,
			logger,
		)
	}
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	policies := compress.DefaultPolicies()
	policies.Video.SizeThreshold = cfg.VideoSizeThreshold

	runner := compress.NewFFmpegRunner(cfg.FFmpegPath, cfg.TranscodeTimeout)
	engine := compress.NewEngine(policies, runner, logger)
	orchestrator := pipeline.NewOrchestrator(engine, store, logger)
	acceptor := pipeline.NewAcceptor(cfg.MaxFileBytes, cfg.MaxFilesPerRequest)

	router := httphandler.NewRouter(acceptor, orchestrator, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting media pipeline", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
