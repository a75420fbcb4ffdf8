package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// ArtistRequest is the metadata part of an artist create/update
// submission. Genres is the comma-separated list the backend parses.
type ArtistRequest struct {
	Name          string    `json:"name"`
	OriginCountry string    `json:"originCountry"`
	FormedYear    int       `json:"formedYear"`
	Genres        string    `json:"artistGenres,omitempty"`
	UserID        uuid.UUID `json:"userId"`

	Image *Upload `json:"-"`
}

// GetArtists fetches one page of the artist catalog.
func (c *Client) GetArtists(ctx context.Context, page int) (domain.Page[domain.Artist], error) {
	var result domain.Page[domain.Artist]
	err := c.get(ctx, fmt.Sprintf("/artists/page/%d", page), &result)
	return result, err
}

// GetRecentArtists fetches the most recently added artists.
func (c *Client) GetRecentArtists(ctx context.Context) ([]domain.Artist, error) {
	var artists []domain.Artist
	if err := c.get(ctx, "/artists/recent", &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetArtistsByGenre fetches one page of artists tagged with a genre.
func (c *Client) GetArtistsByGenre(ctx context.Context, genreSlug string, page int) (domain.Page[domain.Artist], error) {
	var result domain.Page[domain.Artist]
	err := c.get(ctx, fmt.Sprintf("/artists/genres/%s/page/%d", genreSlug, page), &result)
	return result, err
}

// GetArtist fetches one artist by slug.
func (c *Client) GetArtist(ctx context.Context, slug string) (*domain.Artist, error) {
	var artist domain.Artist
	if err := c.get(ctx, "/artists/"+slug, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// CreateArtist adds an artist to the catalog.
func (c *Client) CreateArtist(ctx context.Context, req ArtistRequest) (*domain.Artist, error) {
	var artist domain.Artist
	if err := c.doMultipart(ctx, http.MethodPost, "/artists", "artist", req, req.Image, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// UpdateArtist updates an existing artist.
func (c *Client) UpdateArtist(ctx context.Context, artistID uuid.UUID, req ArtistRequest) (*domain.Artist, error) {
	var artist domain.Artist
	if err := c.doMultipart(ctx, http.MethodPut, "/artists/"+artistID.String(), "artist", req, req.Image, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// DeleteArtist removes an artist and its albums.
func (c *Client) DeleteArtist(ctx context.Context, artistID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/artists/"+artistID.String(), nil, nil)
}
