package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/analyzer"
	"github.com/deepakuplers/website-tech-detector/internal/config"
	"github.com/deepakuplers/website-tech-detector/internal/httpapi"
	"github.com/deepakuplers/website-tech-detector/internal/httpclient"
	"github.com/deepakuplers/website-tech-detector/internal/logging"
	"github.com/deepakuplers/website-tech-detector/internal/service"
	"github.com/deepakuplers/website-tech-detector/internal/signature"
)

func main() {
	// Load configuration from defaults, CONFIG_FILE and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.NewWithConfig(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 28,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := analyzer.Options{
		FetchTimeout: cfg.RequestTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
		UserAgent:    cfg.UserAgent,
		Threshold:    cfg.DetectionThreshold,
		Concurrency:  cfg.ScoreConcurrency,
		ProbeRate:    cfg.ProbeRate,
	}

	// One client and one registry are shared by every analysis
	httpClient := httpclient.NewClient(cfg.MaxBodyBytes)
	registry := signature.Default()
	fetcher := analyzer.NewFetcher(httpClient, opts)
	a := analyzer.New(fetcher, registry, logger, opts)

	svc := service.New(a, logger)
	streaming := service.NewStreamingService(svc, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := httpapi.NewServer(addr, logger, svc, streaming)

	// Channel to listen for OS signals (Ctrl+C, kill, etc.)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"signatures", registry.Len(),
			"threshold", opts.Threshold,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	// In-flight analyses get one full analysis deadline to finish
	ctx, cancel := context.WithTimeout(context.Background(), svc.Timeout()+time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
