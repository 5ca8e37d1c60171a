package analyzer

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// pathProber memoizes probe outcomes for one analysis run. Signatures that
// share a path trigger a single request; concurrent callers for the same
// resolved URL wait on the in-flight probe.
type pathProber struct {
	fetcher PageFetcher
	base    string
	limiter *rate.Limiter

	group singleflight.Group

	mu       sync.Mutex
	outcomes map[string]ProbeOutcome
	requests int
}

// newPathProber creates a prober for base. probesPerSecond <= 0 disables
// rate limiting.
func newPathProber(fetcher PageFetcher, base string, probesPerSecond float64) *pathProber {
	p := &pathProber{
		fetcher:  fetcher,
		base:     base,
		outcomes: make(map[string]ProbeOutcome),
	}
	if probesPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(probesPerSecond), 1)
	}
	return p
}

// Outcome probes path once per resolved URL and returns the cached outcome
// on later calls.
func (p *pathProber) Outcome(ctx context.Context, path string) ProbeOutcome {
	key, err := ResolvePath(p.base, path)
	if err != nil {
		return ProbeTransportError
	}

	if outcome, ok := p.cached(key); ok {
		return outcome
	}

	v, _, _ := p.group.Do(key, func() (interface{}, error) {
		// A flight for key may have finished between the check above and Do.
		if outcome, ok := p.cached(key); ok {
			return outcome, nil
		}

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return ProbeTransportError, nil
			}
		}

		outcome := p.fetcher.Probe(ctx, p.base, path)

		p.mu.Lock()
		p.outcomes[key] = outcome
		p.requests++
		p.mu.Unlock()

		return outcome, nil
	})

	return v.(ProbeOutcome)
}

// Exists reports whether path was found.
func (p *pathProber) Exists(ctx context.Context, path string) bool {
	return p.Outcome(ctx, path).Exists()
}

// Requests returns how many probes were actually sent.
func (p *pathProber) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

func (p *pathProber) cached(key string) (ProbeOutcome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	outcome, ok := p.outcomes[key]
	return outcome, ok
}
