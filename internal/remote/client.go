package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"boardclient/internal/game"
	"boardclient/internal/logging"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// CSRFHeader carries the request-forgery token.
const CSRFHeader = "X-CSRFToken"

// RequestIDHeader carries the submission token.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("remote returned %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Client posts JSON requests to the remote authority.
type Client struct {
	HTTP      *http.Client
	CSRFToken string
	UserAgent string
}

// NewClient creates a client using http.DefaultClient. Deadlines come from
// the context passed to Submit.
func NewClient(csrfToken, userAgent string) *Client {
	return &Client{HTTP: http.DefaultClient, CSRFToken: csrfToken, UserAgent: userAgent}
}

// Submit posts req to url and returns the response body.
func (c *Client) Submit(ctx context.Context, url string, req game.Request) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	if c.CSRFToken != "" {
		hreq.Header.Set(CSRFHeader, c.CSRFToken)
		hreq.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.CSRFToken})
	}
	if id := game.RequestID(ctx); id != "" {
		hreq.Header.Set(RequestIDHeader, id)
	}
	if c.UserAgent != "" {
		hreq.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logging.Debugf("POST %s -> %d (%d bytes)", url, resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
