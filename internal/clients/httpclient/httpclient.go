// Package httpclient is the shared plumbing for the collaborator REST
// clients: JSON round-trips, bearer tokens, and error-code mapping.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "claimvet/pkg/domain-errors"
)

// TokenSource supplies the bearer token for outbound calls. Nil means
// unauthenticated (local development against mocks).
type TokenSource interface {
	Token() (string, error)
}

// Client wraps one collaborator base URL.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

// New builds a client for baseURL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		base:   baseURL,
		http:   &http.Client{Timeout: 30 * time.Second},
		tokens: tokens,
	}
}

// ErrNoContent is returned for HTTP 204 so callers can distinguish "no
// data" from a zero-valued payload.
var ErrNoContent = dErrors.New(dErrors.CodeNotFound, "no content")

// DoJSON performs a round-trip and decodes the response into out (skipped
// when out is nil). Network failures and 5xx map to CodeUnavailable so the
// schedule cache's retry loop can identify transient errors; 404 maps to
// CodeNotFound and other 4xx to CodeBadRequest.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "mint service token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, method+" "+path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return ErrNoContent
	case resp.StatusCode >= 500:
		return dErrors.Newf(dErrors.CodeUnavailable, "%s %s: upstream returned %d", method, path, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.Newf(dErrors.CodeNotFound, "%s %s: not found", method, path)
	case resp.StatusCode >= 400:
		return dErrors.Newf(dErrors.CodeBadRequest, "%s %s: upstream returned %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}
