package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/deepakuplers/website-tech-detector/internal/analyzer"
	"github.com/deepakuplers/website-tech-detector/internal/service"
)

// streamHandler serves an analysis as Server-Sent Events.
// EventSource only speaks GET, so the URL comes from the query string.
func streamHandler(streaming *service.StreamingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeJSON(w, http.StatusMethodNotAllowed, analyzer.FailureResult("", errMethodNotAllowed))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, analyzer.FailureResult("", errStreamingUnsupported))
			return
		}

		url := strings.TrimSpace(r.URL.Query().Get("url"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

		for event := range streaming.AnalyzeStreaming(r.Context(), url) {
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "event: %s\n", event.Stage)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

			select {
			case <-r.Context().Done():
				return
			default:
			}
		}
	}
}
