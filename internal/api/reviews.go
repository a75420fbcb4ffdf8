package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// ReviewRequest is a review create/update body.
type ReviewRequest struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Rating  float64   `json:"rating"`
	UserID  uuid.UUID `json:"userId"`
}

// GetOwnReviews fetches one page of the acting user's reviews.
func (c *Client) GetOwnReviews(ctx context.Context, page int) (domain.Page[domain.Review], error) {
	var result domain.Page[domain.Review]
	err := c.get(ctx, fmt.Sprintf("/reviews/page/%d", page), &result)
	return result, err
}

// GetRecentReviews fetches the latest reviews across all users.
func (c *Client) GetRecentReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.get(ctx, "/reviews/recent", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetAlbumReviews fetches one page of reviews for an album.
func (c *Client) GetAlbumReviews(ctx context.Context, albumID uuid.UUID, page int) (domain.Page[domain.Review], error) {
	var result domain.Page[domain.Review]
	err := c.get(ctx, fmt.Sprintf("/reviews/albums/%s/page/%d", albumID, page), &result)
	return result, err
}

// ReviewExists reports whether the acting user already reviewed an album.
func (c *Client) ReviewExists(ctx context.Context, albumID uuid.UUID) (bool, error) {
	var exists bool
	err := c.get(ctx, "/reviews/exists-review/"+albumID.String(), &exists)
	return exists, err
}

// CreateReview submits a new review for an album.
func (c *Client) CreateReview(ctx context.Context, albumID uuid.UUID, req ReviewRequest) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/reviews/albums/"+albumID.String(), req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview edits an existing review owned by the acting user.
func (c *Client) UpdateReview(ctx context.Context, reviewID uuid.UUID, req ReviewRequest) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPut, "/reviews/"+reviewID.String(), req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review owned by the acting user.
func (c *Client) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+reviewID.String(), userIDBody{ID: userID}, nil)
}
