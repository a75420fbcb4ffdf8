package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/reedham/waxwing/internal/domain"
)

// GetArtistFollowers fetches everyone following an artist.
func (c *Client) GetArtistFollowers(ctx context.Context, artistID uuid.UUID) ([]domain.Follower, error) {
	var followers []domain.Follower
	if err := c.get(ctx, "/followers/artists/"+artistID.String(), &followers); err != nil {
		return nil, err
	}
	return followers, nil
}

// GetFollowedArtists fetches the artists a user follows.
func (c *Client) GetFollowedArtists(ctx context.Context, username string) ([]domain.FollowedArtist, error) {
	var artists []domain.FollowedArtist
	if err := c.get(ctx, "/followers/"+username, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetFollowerCount returns how many users follow an artist.
func (c *Client) GetFollowerCount(ctx context.Context, artistID uuid.UUID) (int64, error) {
	var count int64
	err := c.get(ctx, "/followers/count/"+artistID.String(), &count)
	return count, err
}

// IsFollowing reports whether the acting user follows an artist.
func (c *Client) IsFollowing(ctx context.Context, artistID uuid.UUID) (bool, error) {
	var following bool
	err := c.get(ctx, "/followers/is-following/"+artistID.String(), &following)
	return following, err
}

// Follow subscribes the acting user to an artist.
func (c *Client) Follow(ctx context.Context, artistID uuid.UUID) (*domain.Follower, error) {
	var follower domain.Follower
	if err := c.do(ctx, http.MethodPost, "/followers/follow/"+artistID.String(), nil, &follower); err != nil {
		return nil, err
	}
	return &follower, nil
}

// Unfollow removes the acting user's subscription to an artist.
func (c *Client) Unfollow(ctx context.Context, artistID uuid.UUID) (string, error) {
	var ack statusMessage
	if err := c.do(ctx, http.MethodDelete, "/followers/unfollow/"+artistID.String(), nil, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}
