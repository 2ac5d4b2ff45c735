package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// Client issues JSON requests against the backend. Each call is a single
// attempt; retry and caching policies belong to the server side of this
// system, not the client.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the given base URL. A zero timeout disables
// the request deadline.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Do sends a JSON request and decodes the response body into out when out is
// non-nil. The request body is marshaled from body when body is non-nil. A
// non-2xx response is returned as *Error with the backend's message field
// when one is present.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request body", cause: err}
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: "failed to create request", cause: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes a prepared request, attaching the bearer token when a session
// exists, and normalizes the outcome.
func (c *Client) send(req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Request failed before a response was received",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))

		return &Error{Message: "no response received", cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: "no response received", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractMessage(respBody)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		c.logger.Debug("Request rejected by backend",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))

		return &Error{Status: resp.StatusCode, Message: message}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := sonic.Unmarshal(respBody, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: ErrDecodeResponse.Error(), cause: err}
	}

	return nil
}

// extractMessage pulls the message field out of an error response body.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := sonic.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Message
}
