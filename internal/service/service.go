package service

import (
	"context"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/analyzer"
	"github.com/deepakuplers/website-tech-detector/internal/logging"
)

// Service provides the business logic layer for technology analysis
// It sits between the HTTP transport layer and the analyzer
type Service struct {
	analyzer *analyzer.Analyzer
	logger   *logging.Logger
	timeout  time.Duration
}

// New creates a new Service instance
func New(a *analyzer.Analyzer, logger *logging.Logger) *Service {
	opts := a.Options()
	return &Service{
		analyzer: a,
		logger:   logger,
		// One deadline covers the page fetch and the probes that follow it.
		timeout: opts.FetchTimeout + opts.ProbeTimeout,
	}
}

// Timeout returns the deadline applied to one analysis.
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Analyze runs one analysis of url
// This is the main entry point for the analysis use case
func (s *Service) Analyze(ctx context.Context, url string) *analyzer.AnalysisResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("Analyzing URL", "url", url)

	result := s.analyzer.Analyze(ctx, url)

	if result.Success {
		s.logger.Info("Analysis completed",
			"url", result.URL,
			"status", result.StatusCode,
			"detections", result.TotalDetections,
			"total_ms", time.Since(start).Milliseconds(),
		)
	} else {
		s.logger.Info("Analysis failed",
			"url", url,
			"error_type", result.Kind,
			"error", result.Error,
			"total_ms", time.Since(start).Milliseconds(),
		)
	}

	return result
}
