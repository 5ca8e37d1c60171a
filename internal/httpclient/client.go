package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// DefaultMaxBodyBytes caps how much of a page body is read.
const DefaultMaxBodyBytes = 5 * 1024 * 1024

// MaxRedirects is the redirect limit for GET requests.
const MaxRedirects = 10

// Client wraps two http.Clients sharing one transport: one that follows
// redirects for page fetches and one that never does, for probes.
type Client struct {
	follow       *http.Client
	noFollow     *http.Client
	maxBodyBytes int64
}

// TimingInfo holds performance timing information for a request
type TimingInfo struct {
	DNSStart     time.Time
	DNSDone      time.Time
	ConnectStart time.Time
	ConnectDone  time.Time
	TLSStart     time.Time
	TLSDone      time.Time
	GotFirstByte time.Time
	RequestStart time.Time
	RequestDone  time.Time
}

// TTFB returns the time to first byte, zero if no byte arrived.
func (t *TimingInfo) TTFB() time.Duration {
	if t == nil || t.GotFirstByte.IsZero() {
		return 0
	}
	return t.GotFirstByte.Sub(t.RequestStart)
}

// Total returns the whole request duration.
func (t *TimingInfo) Total() time.Duration {
	if t == nil || t.RequestDone.IsZero() {
		return 0
	}
	return t.RequestDone.Sub(t.RequestStart)
}

// Response holds a completed response. Body is decoded to UTF-8 and is
// empty for HEAD requests.
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Header     http.Header
	Body       []byte
	FinalURL   string
	TLS        *tls.ConnectionState
	Timings    *TimingInfo
}

// NewClient creates a client. maxBodyBytes <= 0 selects DefaultMaxBodyBytes.
func NewClient(maxBodyBytes int64) *Client {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	transport := NewTransport()

	return &Client{
		follow: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", MaxRedirects)
				}
				return nil
			},
		},
		noFollow: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxBodyBytes: maxBodyBytes,
	}
}

// Get fetches url following redirects and returns the decoded body.
// The deadline comes from ctx.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	timings := &TimingInfo{
		RequestStart: time.Now(),
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, newTrace(timings)), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, header)

	resp, err := c.follow.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp, c.maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	timings.RequestDone = time.Now()

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
		TLS:        resp.TLS,
		Timings:    timings,
	}, nil
}

// Head issues a HEAD request without following redirects.
func (c *Client) Head(ctx context.Context, url string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, header)

	resp, err := c.noFollow.Do(req)
	if err != nil {
		return nil, err
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		Header:     resp.Header,
		FinalURL:   url,
	}, nil
}

// IsTimeout reports whether err came from a deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func setHeaders(req *http.Request, header http.Header) {
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", "TechStack-Analyzer/1.0")
	}
}

func newTrace(timings *TimingInfo) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(_ httptrace.DNSStartInfo) {
			timings.DNSStart = time.Now()
		},
		DNSDone: func(_ httptrace.DNSDoneInfo) {
			timings.DNSDone = time.Now()
		},
		ConnectStart: func(_, _ string) {
			timings.ConnectStart = time.Now()
		},
		ConnectDone: func(_, _ string, _ error) {
			timings.ConnectDone = time.Now()
		},
		TLSHandshakeStart: func() {
			timings.TLSStart = time.Now()
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, _ error) {
			timings.TLSDone = time.Now()
		},
		GotFirstResponseByte: func() {
			timings.GotFirstByte = time.Now()
		},
	}
}
