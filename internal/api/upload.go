package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload sends a multipart form with a single file field. Used for the
// profile photo endpoint, which is the only non-JSON request the backend
// accepts.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader) error {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Message: "failed to build multipart form", cause: err}
	}

	if _, err := io.Copy(part, content); err != nil {
		return &Error{Message: "failed to read upload content", cause: err}
	}

	if err := writer.Close(); err != nil {
		return &Error{Message: "failed to finalize multipart form", cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Message: "failed to create request", cause: err}
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, nil)
}
