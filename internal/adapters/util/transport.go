package util

import (
	"bytes"
	"io"
	"log"
	"net/http"
)

// DebugTransport is an http.RoundTripper that logs outbound requests and
// response bodies. Both providers return small JSON payloads, so whole
// bodies are buffered and replayed.
type DebugTransport struct {
	Base    http.RoundTripper
	Enabled bool
}

func (t *DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if !t.Enabled {
		return base.RoundTrip(req)
	}

	log.Printf("DEBUG OUTBOUND REQUEST: [%s] %s", req.Method, req.URL.String())

	resp, err := base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	log.Printf("DEBUG OUTBOUND RESPONSE: %d %s", resp.StatusCode, req.URL.String())

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(respBody))
	if len(respBody) > 0 {
		log.Printf("DEBUG OUTBOUND RESPONSE BODY: %s", string(respBody))
	}

	return resp, nil
}
