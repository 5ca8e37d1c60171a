package analyzer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deepakuplers/website-tech-detector/internal/httpclient"
)

// Page is a fetched document and the response metadata evidence is
// collected from.
type Page struct {
	URL        string // normalized request URL, base for probes
	FinalURL   string // URL after redirects
	StatusCode int
	Header     http.Header
	Body       string

	Timings *httpclient.TimingInfo
	TLS     *tls.ConnectionState
}

// PageFetcher is the outbound side the analyzer needs: one page GET and
// best-effort existence probes.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
	Probe(ctx context.Context, base, path string) ProbeOutcome
}

// ProbeOutcome is the result of one existence probe.
type ProbeOutcome int

const (
	ProbeNotFound ProbeOutcome = iota
	ProbeFound
	ProbeTransportError
)

// Exists folds the outcome to a boolean; transport errors count as absent.
func (o ProbeOutcome) Exists() bool {
	return o == ProbeFound
}

func (o ProbeOutcome) String() string {
	switch o {
	case ProbeFound:
		return "found"
	case ProbeTransportError:
		return "transport_error"
	default:
		return "not_found"
	}
}

// outcomeForStatus maps a HEAD status to an outcome. 403 counts as present:
// the path exists but is protected.
func outcomeForStatus(status int) ProbeOutcome {
	switch status {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound, http.StatusForbidden:
		return ProbeFound
	default:
		return ProbeNotFound
	}
}

// Fetcher implements PageFetcher over httpclient.Client.
type Fetcher struct {
	client       *httpclient.Client
	userAgent    string
	fetchTimeout time.Duration
	probeTimeout time.Duration
}

// NewFetcher creates a Fetcher using the timeouts and User-Agent in opts.
func NewFetcher(client *httpclient.Client, opts Options) *Fetcher {
	opts = opts.withDefaults()
	return &Fetcher{
		client:       client,
		userAgent:    opts.UserAgent,
		fetchTimeout: opts.FetchTimeout,
		probeTimeout: opts.ProbeTimeout,
	}
}

// NormalizeURL ensures the URL has a scheme, defaulting to https.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}

// ResolvePath joins path onto base with URL reference semantics:
// "/cart.js" replaces the base path, "cart.js" is resolved relative to it.
func ResolvePath(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

// Fetch GETs the page, following redirects. Transport failures and error
// statuses come back as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	target := NormalizeURL(rawURL)

	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		if err == nil {
			err = fmt.Errorf("invalid URL %q: no host supplied", target)
		}
		return nil, &FetchError{URL: target, Kind: ErrorInvalidURL, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	resp, err := f.client.Get(ctx, target, f.pageHeaders())
	if err != nil {
		kind, _ := ClassifyError(err)
		return nil, &FetchError{URL: target, Kind: kind, Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &FetchError{
			URL:        target,
			Kind:       ErrorHTTP,
			StatusCode: resp.StatusCode,
			Err:        statusError(resp.StatusCode, resp.FinalURL),
		}
	}

	return &Page{
		URL:        target,
		FinalURL:   resp.FinalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(resp.Body),
		Timings:    resp.Timings,
		TLS:        resp.TLS,
	}, nil
}

// Probe checks whether path exists under base with a HEAD request that
// does not follow redirects. It never returns an error.
func (f *Fetcher) Probe(ctx context.Context, base, path string) ProbeOutcome {
	target, err := ResolvePath(base, path)
	if err != nil {
		return ProbeTransportError
	}

	ctx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()

	header := http.Header{}
	header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Head(ctx, target, header)
	if err != nil {
		return ProbeTransportError
	}
	return outcomeForStatus(resp.StatusCode)
}

func (f *Fetcher) pageHeaders() http.Header {
	header := http.Header{}
	header.Set("User-Agent", f.userAgent)
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.5")
	header.Set("Accept-Encoding", httpclient.AcceptEncoding)
	header.Set("DNT", "1")
	header.Set("Connection", "keep-alive")
	return header
}

// statusError formats an error status the way users are used to reading it,
// e.g. "404 Client Error: Not Found for url: https://example.com/".
func statusError(status int, finalURL string) error {
	class := "Client Error"
	if status >= 500 {
		class = "Server Error"
	}
	return fmt.Errorf("%d %s: %s for url: %s", status, class, http.StatusText(status), finalURL)
}
