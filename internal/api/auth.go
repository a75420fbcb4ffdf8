package api

import (
	"context"
	"net/http"

	"github.com/reedham/waxwing/internal/domain"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries a new account plus an optional avatar image.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Image *Upload `json:"-"`
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.Session, error) {
	var sess domain.Session
	if err := c.do(ctx, http.MethodPost, loginPath, creds, &sess); err != nil {
		return nil, err
	}
	if sess.AccessToken != "" {
		if err := c.store.Set(&sess); err != nil {
			return nil, err
		}
	}
	c.logger.Info("logged in", "username", sess.Username)
	return &sess, nil
}

// Register creates a new account. Returns the server's confirmation
// message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var ack statusMessage
	if err := c.doMultipart(ctx, http.MethodPost, "/auth/register", "user", req, req.Image, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

// Logout discards the stored session. Purely local; the backend keeps no
// server-side session state beyond the token pair.
func (c *Client) Logout() error {
	c.logger.Info("logged out")
	return c.store.Clear()
}

// Session returns the current session, if any.
func (c *Client) Session() (*domain.Session, bool) {
	return c.store.Get()
}
