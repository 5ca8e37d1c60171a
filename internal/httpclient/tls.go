package httpclient

import (
	"crypto/tls"
	"time"
)

// TLSSummary describes the negotiated TLS session of a page fetch.
type TLSSummary struct {
	Version       string `json:"version"`
	Issuer        string `json:"issuer,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"` // RFC 3339, UTC
	DaysRemaining int    `json:"days_remaining"`
}

// SummarizeTLS returns nil for plain HTTP.
func SummarizeTLS(state *tls.ConnectionState, now time.Time) *TLSSummary {
	if state == nil {
		return nil
	}

	summary := &TLSSummary{Version: tls.VersionName(state.Version)}

	if len(state.PeerCertificates) > 0 {
		leaf := state.PeerCertificates[0]

		summary.ExpiresAt = leaf.NotAfter.UTC().Format(time.RFC3339)
		summary.DaysRemaining = int(leaf.NotAfter.Sub(now).Hours() / 24)

		summary.Issuer = leaf.Issuer.CommonName
		if summary.Issuer == "" && len(leaf.Issuer.Organization) > 0 {
			summary.Issuer = leaf.Issuer.Organization[0]
		}
	}

	return summary
}
