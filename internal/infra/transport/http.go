// Package transport delivers queued sync operations over HTTP.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/momentum-labs/momentum/internal/domain"
)

// HTTP sends stored operations with their original method, headers, and
// body. Per-call timeout is the only cancellation semantics the core asks
// of the transport.
type HTTP struct {
	client *http.Client
}

// New creates an HTTP transport with the given per-request timeout.
func New(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTP{client: &http.Client{Timeout: timeout}}
}

// Send performs one delivery attempt. A non-nil error means the request
// never completed; otherwise the outcome carries the HTTP status.
func (t *HTTP) Send(ctx context.Context, op domain.SyncOperation) (domain.SendOutcome, error) {
	var body io.Reader
	if len(op.Body) > 0 {
		body = bytes.NewReader(op.Body)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, op.URL, body)
	if err != nil {
		return domain.SendOutcome{}, err
	}
	for k, v := range op.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return domain.SendOutcome{}, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return domain.SendOutcome{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}
