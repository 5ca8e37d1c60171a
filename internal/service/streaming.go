package service

import (
	"context"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/analyzer"
	"github.com/deepakuplers/website-tech-detector/internal/httpclient"
	"github.com/deepakuplers/website-tech-detector/internal/logging"
)

// Stream stages, in emission order.
const (
	StageStart     = "start"
	StageFetched   = "fetched"
	StageDetection = "detection"
	StageComplete  = "complete"
	StageError     = "error"
)

// StreamEvent represents a progressive event during an analysis
type StreamEvent struct {
	Stage   string      `json:"stage"`   // one of the Stage* constants
	Message string      `json:"message"` // Human-readable message
	Data    interface{} `json:"data"`    // Stage-specific data or final result
}

// FetchedData is the payload of the fetched stage.
type FetchedData struct {
	URL        string `json:"url"`
	FinalURL   string `json:"final_url"`
	StatusCode int    `json:"status_code"`
	TTFBMs     int64  `json:"ttfb_ms"`
	TotalMs    int64  `json:"total_ms"`

	TLS *httpclient.TLSSummary `json:"tls,omitempty"`
}

// DetectionData is the payload of one detection stage event.
type DetectionData struct {
	Category string `json:"category"`
	analyzer.RankedEntry
}

// StreamingService wraps the standard Service to provide streaming capabilities
type StreamingService struct {
	service *Service
	logger  *logging.Logger
}

// NewStreamingService creates a new StreamingService
func NewStreamingService(svc *Service, logger *logging.Logger) *StreamingService {
	return &StreamingService{
		service: svc,
		logger:  logger,
	}
}

// AnalyzeStreaming runs an analysis and emits progressive events in real-time.
// The channel is closed after the complete or error event, or when ctx ends.
func (s *StreamingService) AnalyzeStreaming(ctx context.Context, url string) <-chan StreamEvent {
	events := make(chan StreamEvent, 10)

	go func() {
		defer close(events)

		ctx, cancel := context.WithTimeout(ctx, s.service.Timeout())
		defer cancel()

		send := func(evt StreamEvent) bool {
			select {
			case events <- evt:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(StreamEvent{
			Stage:   StageStart,
			Message: "Starting analysis...",
			Data:    map[string]string{"url": url},
		}) {
			return
		}

		a := s.service.analyzer
		page, err := a.FetchPage(ctx, url)
		if err != nil {
			result := analyzer.FailureResult(url, err)
			s.logger.Info("Streaming analysis failed", "url", url, "error_type", result.Kind)
			send(StreamEvent{Stage: StageError, Message: result.Error, Data: result})
			return
		}

		fetched := FetchedData{
			URL:        page.URL,
			FinalURL:   page.FinalURL,
			StatusCode: page.StatusCode,
			TLS:        httpclient.SummarizeTLS(page.TLS, time.Now()),
		}
		if page.Timings != nil {
			fetched.TTFBMs = page.Timings.TTFB().Milliseconds()
			fetched.TotalMs = page.Timings.Total().Milliseconds()
		}
		if !send(StreamEvent{Stage: StageFetched, Message: "Page fetched", Data: fetched}) {
			return
		}

		start := time.Now()
		result := a.AnalyzePage(ctx, page)

		for _, category := range analyzer.CategoryOrder {
			for _, entry := range result.Categories[category] {
				if !send(StreamEvent{
					Stage:   StageDetection,
					Message: entry.Name + " detected",
					Data:    DetectionData{Category: category, RankedEntry: entry},
				}) {
					return
				}
			}
		}

		s.logger.Info("Streaming analysis completed",
			"url", result.URL,
			"detections", result.TotalDetections,
			"score_ms", time.Since(start).Milliseconds(),
		)

		send(StreamEvent{Stage: StageComplete, Message: "Analysis complete", Data: result})
	}()

	return events
}
