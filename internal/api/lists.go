package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// ListRequest is a list create/update body.
type ListRequest struct {
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"userId"`
}

// GetListCount returns how many lists a user has.
func (c *Client) GetListCount(ctx context.Context, username string) (int64, error) {
	var count int64
	err := c.get(ctx, "/album-lists/count/users/"+username, &count)
	return count, err
}

// GetListSummaries fetches the lightweight list rows for a profile page.
func (c *Client) GetListSummaries(ctx context.Context, username string) ([]domain.ListSummary, error) {
	var summaries []domain.ListSummary
	if err := c.get(ctx, "/album-lists/summary/users/"+username, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetList fetches one list with its albums, by list name and owner.
func (c *Client) GetList(ctx context.Context, listName, username string) (*domain.AlbumList, error) {
	var list domain.AlbumList
	if err := c.get(ctx, "/album-lists/"+listName+"/users/"+username, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateList creates an album list for the acting user.
func (c *Client) CreateList(ctx context.Context, req ListRequest) (*domain.AlbumList, error) {
	var list domain.AlbumList
	if err := c.do(ctx, http.MethodPost, "/album-lists", req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList renames an existing list.
func (c *Client) UpdateList(ctx context.Context, listID uuid.UUID, req ListRequest) (*domain.AlbumList, error) {
	var list domain.AlbumList
	if err := c.do(ctx, http.MethodPut, "/album-lists/"+listID.String(), req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteList removes a list owned by the acting user.
func (c *Client) DeleteList(ctx context.Context, listID, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/album-lists/"+listID.String(), userIDBody{ID: userID}, nil)
}
