package analyzer

import (
	"errors"
	"net"
	"strings"

	"github.com/deepakuplers/website-tech-detector/internal/httpclient"
)

// Error type constants
const (
	ErrorNone       = "none"
	ErrorInvalidURL = "invalid_url"
	ErrorTimeout    = "timeout"
	ErrorDNS        = "dns_error"
	ErrorTLS        = "tls_error"
	ErrorNetwork    = "network_error"
	ErrorHTTP       = "http_error"
)

// ErrMalformedInput rejects an empty URL before any network call.
var ErrMalformedInput = errors.New("URL is required")

// FetchError is a failure of the primary page request. It aborts the
// analysis; its message is surfaced to the caller unchanged.
type FetchError struct {
	URL        string
	Kind       string // one of the Error* constants
	StatusCode int    // set for ErrorHTTP
	Err        error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyError determines the error type from a Go error
// Returns the error type constant and a short human-readable summary
func ClassifyError(err error) (string, string) {
	if err == nil {
		return ErrorNone, ""
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.Kind == ErrorHTTP {
			return ErrorHTTP, "error status"
		}
		if fetchErr.Kind != "" {
			_, summary := ClassifyError(fetchErr.Err)
			return fetchErr.Kind, summary
		}
	}

	if errors.Is(err, ErrMalformedInput) {
		return ErrorInvalidURL, "URL is required"
	}

	if httpclient.IsTimeout(err) {
		return ErrorTimeout, "request timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorDNS, "DNS lookup failed"
	}

	errMsg := err.Error()

	// Check for TLS/certificate errors
	if strings.Contains(errMsg, "tls") || strings.Contains(errMsg, "TLS") {
		return ErrorTLS, "TLS handshake failed"
	}
	if strings.Contains(errMsg, "certificate") || strings.Contains(errMsg, "x509") {
		return ErrorTLS, "certificate error"
	}

	if strings.Contains(errMsg, "connection refused") {
		return ErrorNetwork, "connection refused"
	}
	if strings.Contains(errMsg, "connection reset") {
		return ErrorNetwork, "connection reset"
	}
	if strings.Contains(errMsg, "no such host") {
		return ErrorDNS, "host not found"
	}
	if strings.Contains(errMsg, "network is unreachable") {
		return ErrorNetwork, "network unreachable"
	}

	return ErrorNetwork, errMsg
}
