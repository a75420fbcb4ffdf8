package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/reedham/waxwing/internal/domain"
)

const (
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh-token"
)

// errRefreshThrottled marks a rate-limited refresh call. The retry is
// abandoned and the original response surfaces unchanged.
var errRefreshThrottled = errors.New("token refresh rate limited")

// authTransport attaches the stored bearer token to every request and,
// on a 401 for anything but the login endpoint, refreshes the access
// token and replays the original request exactly once.
type authTransport struct {
	base    http.RoundTripper
	store   domain.SessionStore
	baseURL string
	logger  *slog.Logger

	// Auth endpoint paths resolved against the base URL, so the 401
	// exemption holds when the API is served under a path prefix.
	loginFullPath   string
	refreshFullPath string
}

func newAuthTransport(base http.RoundTripper, store domain.SessionStore, baseURL string, logger *slog.Logger) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	prefix := ""
	if u, err := url.Parse(baseURL); err == nil {
		prefix = strings.TrimRight(u.Path, "/")
	}
	return &authTransport{
		base:            base,
		store:           store,
		baseURL:         baseURL,
		logger:          logger,
		loginFullPath:   prefix + loginPath,
		refreshFullPath: prefix + refreshPath,
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	sess, ok := t.store.Get()
	if ok && sess.AccessToken != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if req.URL.Path == t.loginFullPath || req.URL.Path == t.refreshFullPath {
		return resp, nil
	}
	if !ok || sess.RefreshToken == "" {
		return resp, nil
	}

	token, refreshErr := t.refresh(req, sess.RefreshToken)
	if refreshErr != nil {
		if errors.Is(refreshErr, errRefreshThrottled) {
			return resp, nil
		}
		resp.Body.Close()
		return nil, refreshErr
	}

	if err := t.store.UpdateAccessToken(token); err != nil {
		t.logger.Warn("failed to persist refreshed token", "error", err)
	}

	// Replay the original request once with the fresh token.
	resp.Body.Close()
	replay := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		replay.Body = body
	}
	replay.Header.Set("Authorization", "Bearer "+token)

	t.logger.Debug("replaying request after token refresh", "method", req.Method, "path", req.URL.Path)
	return t.base.RoundTrip(replay)
}

// refresh exchanges the refresh token for a new access token.
func (t *authTransport) refresh(orig *http.Request, refreshToken string) (string, error) {
	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.baseURL+refreshPath, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Error("token refresh failed", "error", err)
		return "", domain.ErrServerOffline
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return "", err
		}
		return payload.AccessToken, nil
	case http.StatusUnauthorized:
		t.logger.Info("refresh token rejected, session expired")
		return "", domain.ErrSessionExpired
	case http.StatusTooManyRequests:
		return "", errRefreshThrottled
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", parseAPIError(resp.StatusCode, body)
	}
}
