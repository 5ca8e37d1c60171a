package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/deepakuplers/website-tech-detector/internal/analyzer"
	"github.com/deepakuplers/website-tech-detector/internal/service"
)

// maxRequestBytes caps the JSON request body
const maxRequestBytes = 64 << 10

var (
	errMethodNotAllowed = errors.New("Method not allowed")
	errInvalidJSON      = errors.New("Invalid JSON")

	errStreamingUnsupported = errors.New("Streaming not supported")
)

// analyzeRequest represents the JSON request body for the analyze endpoints
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeHandler handles POST requests to /api/analyze and /analyze
// Accepts a JSON body with a URL and returns the analysis result
func analyzeHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, analyzer.FailureResult("", errMethodNotAllowed))
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, analyzer.FailureResult("", errInvalidJSON))
			return
		}

		// Blank URLs are answered by the analyzer without a network call
		result := svc.Analyze(r.Context(), strings.TrimSpace(req.URL))

		writeJSON(w, http.StatusOK, result)
	}
}
