package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// AlbumRequest is the metadata part of an album create/update
// submission. ReleaseDate is unix seconds; Genres is the comma-separated
// list the backend parses.
type AlbumRequest struct {
	Title       string    `json:"title"`
	ReleaseDate int64     `json:"releaseDate,omitempty"`
	Genres      string    `json:"albumGenres,omitempty"`
	ArtistID    uuid.UUID `json:"artistId"`
	UserID      uuid.UUID `json:"userId"`

	Image *Upload `json:"-"`
}

// userIDBody carries the acting user's id on mutations whose ownership
// the backend verifies.
type userIDBody struct {
	ID uuid.UUID `json:"id"`
}

// GetAlbums fetches one page of the album catalog.
func (c *Client) GetAlbums(ctx context.Context, page int) (domain.Page[domain.Album], error) {
	var result domain.Page[domain.Album]
	err := c.get(ctx, fmt.Sprintf("/albums/page/%d", page), &result)
	return result, err
}

// GetRecentAlbums fetches the most recently added albums.
func (c *Client) GetRecentAlbums(ctx context.Context) ([]domain.Album, error) {
	var albums []domain.Album
	if err := c.get(ctx, "/albums/recent", &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbum fetches one album by artist and album slug.
func (c *Client) GetAlbum(ctx context.Context, artistSlug, albumSlug string) (*domain.Album, error) {
	var album domain.Album
	if err := c.get(ctx, fmt.Sprintf("/albums/%s/%s", artistSlug, albumSlug), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// GetAlbumsByArtist fetches an artist's discography.
func (c *Client) GetAlbumsByArtist(ctx context.Context, artistSlug string) ([]domain.Album, error) {
	var albums []domain.Album
	if err := c.get(ctx, "/albums/artists/"+artistSlug, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbumsByGenre fetches one page of albums tagged with a genre.
func (c *Client) GetAlbumsByGenre(ctx context.Context, genreSlug string, page int) (domain.Page[domain.Album], error) {
	var result domain.Page[domain.Album]
	err := c.get(ctx, fmt.Sprintf("/albums/genres/%s/page/%d", genreSlug, page), &result)
	return result, err
}

// CreateAlbum adds an album to the catalog.
func (c *Client) CreateAlbum(ctx context.Context, req AlbumRequest) (*domain.Album, error) {
	var album domain.Album
	if err := c.doMultipart(ctx, http.MethodPost, "/albums", "album", req, req.Image, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// UpdateAlbum updates an existing album.
func (c *Client) UpdateAlbum(ctx context.Context, albumID uuid.UUID, req AlbumRequest) (*domain.Album, error) {
	var album domain.Album
	if err := c.doMultipart(ctx, http.MethodPut, "/albums/"+albumID.String(), "album", req, req.Image, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// RateAlbum submits the acting user's rating and returns the updated
// aggregate.
func (c *Client) RateAlbum(ctx context.Context, albumID uuid.UUID, rating float64, userID uuid.UUID) (*domain.RatingSummary, error) {
	body := struct {
		Rating float64   `json:"rating"`
		UserID uuid.UUID `json:"userId"`
	}{Rating: rating, UserID: userID}

	var summary domain.RatingSummary
	if err := c.do(ctx, http.MethodPut, "/albums/rate/"+albumID.String(), body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// AddAlbumToList adds an album to one of the acting user's lists.
func (c *Client) AddAlbumToList(ctx context.Context, listID, albumID, userID uuid.UUID) error {
	path := fmt.Sprintf("/albums/add/%s/%s", listID, albumID)
	return c.do(ctx, http.MethodPost, path, userIDBody{ID: userID}, nil)
}

// RemoveAlbumFromList removes an album from one of the acting user's
// lists.
func (c *Client) RemoveAlbumFromList(ctx context.Context, listID, albumID, userID uuid.UUID) error {
	path := fmt.Sprintf("/albums/remove/%s/%s", listID, albumID)
	return c.do(ctx, http.MethodDelete, path, userIDBody{ID: userID}, nil)
}

// DeleteAlbum removes an album from the catalog.
func (c *Client) DeleteAlbum(ctx context.Context, albumID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/albums/"+albumID.String(), nil, nil)
}
