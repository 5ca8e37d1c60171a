package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/logging"
	"github.com/deepakuplers/website-tech-detector/internal/service"
)

// ServiceName is reported by the health endpoint
const ServiceName = "techstack-api"

// NewServer creates and configures a new HTTP server
func NewServer(addr string, logger *logging.Logger, svc *service.Service, streaming *service.StreamingService) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(logger, svc, streaming),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler wrapped in the middleware chain.
func NewHandler(logger *logging.Logger, svc *service.Service, streaming *service.StreamingService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	// Both paths serve the same analysis
	mux.HandleFunc("/api/analyze", analyzeHandler(svc))
	mux.HandleFunc("/analyze", analyzeHandler(svc))

	mux.HandleFunc("/api/analyze/stream", streamHandler(streaming))

	// Outermost first: request id, then logging, then panic recovery
	return requestIDMiddleware(loggingMiddleware(logger, recoveryMiddleware(logger, mux)))
}

// healthHandler handles GET requests to /health
// Returns a simple JSON response indicating the service is healthy
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ServiceName,
	})
}

// writeJSON sets the Content-Type header and encodes data as JSON
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// If encoding fails the status is already sent
	_ = json.NewEncoder(w).Encode(data)
}
