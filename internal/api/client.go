package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/reedham/waxwing/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Waxwing/1.0"
)

// Client talks to the catalog backend. One method per endpoint; caching
// and invalidation live in the query layer, token refresh in the
// transport.
type Client struct {
	baseURL    string
	store      domain.SessionStore
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend API client.
func NewClient(baseURL string, store domain.SessionStore, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: newAuthTransport(nil, store, baseURL, logger),
		},
		logger: logger,
	}
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// do performs a request with an optional JSON body and decodes the JSON
// response into out (ignored when out is nil).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// doMultipart submits a JSON metadata part plus an optional binary image
// part, as the create/update endpoints for artists, albums, and users
// expect.
func (c *Client) doMultipart(ctx context.Context, method, path, partName string, payload any, image *Upload, out any) error {
	body, contentType, err := encodeMultipart(partName, payload, image)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("api request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return domain.ErrSessionExpired
		}
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Error("api request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		c.logger.Error("api request error", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return parseAPIError(resp.StatusCode, data)
	}
}

// parseAPIError extracts the server's message field, falling back to the
// error field and then to a generic message.
func parseAPIError(status int, body []byte) *domain.APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	return &domain.APIError{Status: status, Message: message}
}

// statusMessage is the generic {"message": ...} acknowledgment body.
type statusMessage struct {
	Message string `json:"message"`
}
