package analyzer

// MetaInfo carries page metadata surfaced alongside detections.
type MetaInfo struct {
	Generator string `json:"generator,omitempty"`
}

// AnalysisResult is the outcome of one analysis
type AnalysisResult struct {
	Success         bool                     `json:"success"`
	URL             string                   `json:"url"`
	StatusCode      int                      `json:"status_code,omitempty"`
	Categories      map[string][]RankedEntry `json:"categories"`
	Headers         map[string]string        `json:"headers"`
	Error           string                   `json:"error,omitempty"`
	MetaInfo        *MetaInfo                `json:"meta_info,omitempty"`
	TotalDetections int                      `json:"total_detections"`

	// Kind classifies a failure, one of the Error* constants. Not serialized.
	Kind string `json:"-"`
}

// FailureResult builds the failure shape for url. Categories and headers are
// empty maps so they serialize as {} rather than null.
func FailureResult(url string, err error) *AnalysisResult {
	kind, _ := ClassifyError(err)
	return &AnalysisResult{
		Success:    false,
		URL:        url,
		Categories: map[string][]RankedEntry{},
		Headers:    map[string]string{},
		Error:      err.Error(),
		Kind:       kind,
	}
}
