package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// UpdateUserRequest updates the acting user's profile.
type UpdateUserRequest struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`

	Image *Upload `json:"-"`
}

// UpdatePasswordRequest changes the acting user's password.
type UpdatePasswordRequest struct {
	CurrentPassword      string `json:"currentPassword"`
	NewPassword          string `json:"newPassword"`
	ConfirmationPassword string `json:"confirmationPassword"`
}

// GetUsers lists all users (admin view).
func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by username.
func (c *Client) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/users/"+username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates the profile and mirrors the new username/avatar
// into the stored session so every component observes it.
func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.doMultipart(ctx, http.MethodPut, "/users/update", "user", req, req.Image, &user); err != nil {
		return nil, err
	}

	if sess, ok := c.store.Get(); ok {
		sess.Username = user.Username
		sess.ImageURL = user.ImageURL
		if err := c.store.Set(sess); err != nil {
			c.logger.Warn("failed to update stored session", "error", err)
		}
	}
	return &user, nil
}

// UpdatePassword changes the password after the usual field validation.
func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/users/update-password", req, nil)
}

// UpdateUserRole grants or revokes a role for a user (admin only).
func (c *Client) UpdateUserRole(ctx context.Context, userID uuid.UUID, role domain.Role, add bool) error {
	path := fmt.Sprintf("/users/%s/update-role?addRole=%t", userID, add)
	body := struct {
		Role domain.Role `json:"role"`
	}{Role: role}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// DeleteUser removes a user account (admin only).
func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+userID.String(), nil, nil)
}
