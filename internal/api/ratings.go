package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// GetAlbumRatings fetches the aggregate rating for an album.
func (c *Client) GetAlbumRatings(ctx context.Context, albumID uuid.UUID) (*domain.RatingSummary, error) {
	var summary domain.RatingSummary
	if err := c.get(ctx, "/album-ratings/"+albumID.String(), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetOwnAlbumRating fetches the acting user's rating for an album. A
// zero rating means the user has not rated it.
func (c *Client) GetOwnAlbumRating(ctx context.Context, albumID uuid.UUID) (float64, error) {
	var rating float64
	err := c.get(ctx, "/album-ratings/albums/"+albumID.String(), &rating)
	return rating, err
}

// GetGenreOverview fetches per-genre rating counts for a user's profile.
func (c *Client) GetGenreOverview(ctx context.Context, username string) ([]domain.GenreCount, error) {
	var counts []domain.GenreCount
	if err := c.get(ctx, "/album-ratings/genre-overview/users/"+username, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// GetRecentRatings fetches the latest ratings across all users.
func (c *Client) GetRecentRatings(ctx context.Context) ([]domain.RecentRating, error) {
	var ratings []domain.RecentRating
	if err := c.get(ctx, "/album-ratings/recent", &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetUserRatings fetches every album a user has rated.
func (c *Client) GetUserRatings(ctx context.Context, userID uuid.UUID) ([]domain.RatedAlbum, error) {
	var rated []domain.RatedAlbum
	if err := c.get(ctx, "/album-ratings/users/"+userID.String(), &rated); err != nil {
		return nil, err
	}
	return rated, nil
}

// GetUserRatingsByRating fetches the albums a user rated with one exact
// score, for drilling into a histogram bucket.
func (c *Client) GetUserRatingsByRating(ctx context.Context, username string, rating float64) ([]domain.RatedAlbum, error) {
	var rated []domain.RatedAlbum
	path := fmt.Sprintf("/album-ratings/users/%s/rating/%g", username, rating)
	if err := c.get(ctx, path, &rated); err != nil {
		return nil, err
	}
	return rated, nil
}
