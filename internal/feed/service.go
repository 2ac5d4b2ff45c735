package feed

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/minglehq/mingle/internal/api"
	"go.uber.org/zap"
)

// Service is the typed surface over the backend's REST API. All pagination
// uses 1-based page numbers; a page shorter than pageSize means the resource
// is exhausted.
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService creates a service over the given API client.
func NewService(client *api.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Login exchanges credentials for a token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	var resp struct {
		Token string `json:"token"`
	}

	if err := s.client.Do(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, username, password string) error {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	return s.client.Do(ctx, http.MethodPost, "/register", payload, nil)
}

// pageQuery renders the shared pagination query string.
func pageQuery(page, pageSize int) string {
	return "page=" + strconv.Itoa(page) + "&pageSize=" + strconv.Itoa(pageSize)
}

// escape query-encodes a user-supplied parameter value.
func escape(value string) string {
	return url.QueryEscape(strings.TrimSpace(value))
}
