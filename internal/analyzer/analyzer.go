// Package analyzer fingerprints the technology stack of a website. It
// fetches the page, collects evidence from headers, markup and probe paths,
// scores every signature of a registry and groups the winners by category.
package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/logging"
	"github.com/deepakuplers/website-tech-detector/internal/signature"
)

// Analyzer runs analyses against a fixed registry. It is safe for
// concurrent use; per-run state lives in each call.
type Analyzer struct {
	fetcher  PageFetcher
	registry *signature.Registry
	logger   *logging.Logger
	opts     Options
}

// New creates an Analyzer. A nil registry selects signature.Default and a
// nil logger discards output.
func New(fetcher PageFetcher, registry *signature.Registry, logger *logging.Logger, opts Options) *Analyzer {
	if registry == nil {
		registry = signature.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Analyzer{
		fetcher:  fetcher,
		registry: registry,
		logger:   logger,
		opts:     opts.withDefaults(),
	}
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze fetches input and reports the technologies found. It never
// returns an error: every failure is mapped to a result with Success false.
func (a *Analyzer) Analyze(ctx context.Context, input string) *AnalysisResult {
	page, err := a.FetchPage(ctx, input)
	if err != nil {
		return FailureResult(input, err)
	}
	return a.AnalyzePage(ctx, page)
}

// FetchPage validates and fetches input without scoring it. Blank input
// fails with ErrMalformedInput before any request is made.
func (a *Analyzer) FetchPage(ctx context.Context, input string) (*Page, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrMalformedInput
	}

	target := NormalizeURL(input)

	page, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		kind, _ := ClassifyError(err)
		a.logger.Warn("Fetch failed",
			"url", target,
			"error_type", kind,
			"error", err.Error(),
		)
		return nil, err
	}
	return page, nil
}

// AnalyzePage scores an already fetched page. Probe paths are resolved
// against page.URL.
func (a *Analyzer) AnalyzePage(ctx context.Context, page *Page) *AnalysisResult {
	start := time.Now()

	prober := newPathProber(a.fetcher, page.URL, a.opts.ProbeRate)
	ev := Collect(page, prober)

	all := ScoreAll(ctx, a.registry.Signatures(), ev, a.opts.Concurrency)
	detected := Detected(all, a.opts.Threshold)

	result := &AnalysisResult{
		Success:         true,
		URL:             page.URL,
		StatusCode:      page.StatusCode,
		Categories:      Categorize(detected),
		Headers:         FlattenHeaders(page.Header),
		TotalDetections: len(detected),
		Kind:            ErrorNone,
	}
	if ev.Generator != "" {
		result.MetaInfo = &MetaInfo{Generator: ev.Generator}
	}

	a.logger.Debug("Analysis scored",
		"url", page.URL,
		"signatures", len(all),
		"detections", len(detected),
		"probes", prober.Requests(),
		"score_ms", time.Since(start).Milliseconds(),
	)

	return result
}
