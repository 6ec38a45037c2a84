package xhttp

import (
	"fmt"
	"net/http"

	"github.com/mboehm/tix/internal/version"
)

const XClientID = "X-Client-ID"

type tixTransport struct {
	base     http.RoundTripper
	clientID string
}

var _ http.RoundTripper = (*tixTransport)(nil)

func (t *tixTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "tix/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	if t.clientID != "" {
		req.Header.Set(XClientID, t.clientID)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard tix headers.
func NewTransport() http.RoundTripper {
	return &tixTransport{base: http.DefaultTransport}
}

// NewTransportWithClientID additionally stamps the per-install client ID.
func NewTransportWithClientID(clientID string) http.RoundTripper {
	return &tixTransport{base: http.DefaultTransport, clientID: clientID}
}
