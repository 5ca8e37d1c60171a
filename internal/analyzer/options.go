package analyzer

import "time"

// DefaultThreshold is the minimum accumulated score for a technology to be
// reported. A single cutoff: two independent 15-point HTML hits clear it
// without any high-confidence signal.
const DefaultThreshold = 30

// DefaultUserAgent is sent on every outbound request unless overridden.
const DefaultUserAgent = "TechStack-Analyzer/1.0"

// Options holds the tunables of one analysis.
type Options struct {
	// FetchTimeout bounds the primary GET, redirects included
	FetchTimeout time.Duration

	// ProbeTimeout bounds each HEAD probe
	ProbeTimeout time.Duration

	// UserAgent is the User-Agent header to send
	UserAgent string

	// Threshold is the detection cutoff score
	Threshold int

	// Concurrency is the number of signatures scored in parallel
	Concurrency int

	// ProbeRate limits probes per second within one analysis, 0 means unlimited
	ProbeRate float64
}

// DefaultOptions returns Options with the reference heuristics.
func DefaultOptions() Options {
	return Options{
		FetchTimeout: 10 * time.Second,
		ProbeTimeout: 5 * time.Second,
		UserAgent:    DefaultUserAgent,
		Threshold:    DefaultThreshold,
		Concurrency:  8,
		ProbeRate:    0,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = def.FetchTimeout
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = def.ProbeTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = def.UserAgent
	}
	if o.Threshold <= 0 {
		o.Threshold = def.Threshold
	}
	if o.Concurrency <= 0 {
		o.Concurrency = def.Concurrency
	}
	if o.ProbeRate < 0 {
		o.ProbeRate = 0
	}
	return o
}
