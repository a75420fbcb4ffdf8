package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a server-side authority granted to a user.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Genre tags artists and albums.
type Genre struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Artist is a catalog artist.
type Artist struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	OriginCountry string    `json:"originCountry"`
	Image         string    `json:"image"`
	FormedYear    int       `json:"formedYear"`
	Genres        []Genre   `json:"artistGenres"`
}

// Album is a catalog album. ReleaseDate is unix seconds, matching the
// backend's serialized Instant.
type Album struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Image         string    `json:"image"`
	OriginCountry string    `json:"originCountry"`
	ReleaseDate   int64     `json:"releaseDate"`
	Rating        float64   `json:"rating"`
	Artist        *Artist   `json:"artist,omitempty"`
	Genres        []Genre   `json:"albumGenres"`
}

// ReleaseYear returns the year of the album's release date, or 0 when unset.
func (a Album) ReleaseYear() int {
	if a.ReleaseDate == 0 {
		return 0
	}
	return time.Unix(a.ReleaseDate, 0).UTC().Year()
}

// User is a platform account as the admin endpoints expose it.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	ImageURL string    `json:"imageUrl"`
	Roles    []Role    `json:"roles"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// Review is a user's written review of an album.
type Review struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    float64   `json:"rating"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	UserImage string    `json:"userImage"`
	Album     *Album    `json:"album,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

// ListAlbum is the trimmed album representation carried inside a list.
type ListAlbum struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	ArtistName  string    `json:"artistName"`
	AlbumSlug   string    `json:"albumSlug"`
	ArtistSlug  string    `json:"artistSlug"`
	ReleaseDate int64     `json:"releaseDate"`
}

// AlbumList is a user-curated collection of albums.
type AlbumList struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	UserID uuid.UUID   `json:"userId,omitempty"`
	Albums []ListAlbum `json:"albums,omitempty"`
}

// ListSummary is the lightweight list row shown on profile pages.
type ListSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	AlbumCount int64     `json:"albumCount"`
}

// RatingSummary aggregates ratings for one album.
type RatingSummary struct {
	Rating       float64 `json:"rating"`
	TotalRatings int64   `json:"totalRatings"`
}

// RatedAlbum is one album in a user's rating collection.
type RatedAlbum struct {
	ID          uuid.UUID `json:"id"`
	AlbumTitle  string    `json:"albumTitle"`
	ArtistName  string    `json:"artistName"`
	AlbumImage  string    `json:"albumImage"`
	AlbumSlug   string    `json:"albumSlug"`
	ArtistSlug  string    `json:"artistSlug"`
	ReleaseDate int64     `json:"releaseDate"`
	Rating      float64   `json:"rating"`
	RatedDate   int64     `json:"ratedDate"`
}

// RecentRating is a platform-wide recent rating event.
type RecentRating struct {
	ID          uuid.UUID `json:"id"`
	ArtistName  string    `json:"artistName"`
	ArtistSlug  string    `json:"artistSlug"`
	AlbumTitle  string    `json:"albumTitle"`
	AlbumImage  string    `json:"albumImage"`
	AlbumSlug   string    `json:"albumSlug"`
	Rating      float64   `json:"rating"`
	Username    string    `json:"username"`
	ReleaseDate int64     `json:"releaseDate"`
	CreatedAt   int64     `json:"createdAt"`
}

// GenreCount is one row of a user's rated-albums-per-genre overview.
type GenreCount struct {
	GenreName  string `json:"genreName"`
	AlbumCount int64  `json:"albumCount"`
}

// Follower links a user to an artist they follow.
type Follower struct {
	ID     uuid.UUID `json:"id"`
	User   User      `json:"user"`
	Artist Artist    `json:"artist"`
}

// FollowedArtist is the trimmed artist row on a user's following page.
type FollowedArtist struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image string    `json:"image"`
}

// Page is one page of a paginated collection. Page numbers are 1-based;
// the collection is exhausted once CurrentPage >= TotalPages.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	TotalElements int64 `json:"totalElements"`
}

// Last reports whether this is the final page of the collection.
func (p Page[T]) Last() bool {
	return p.CurrentPage >= p.TotalPages
}
