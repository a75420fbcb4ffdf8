package query

import "strings"

// Cache key prefixes for catalog content
const (
	// PrefixAlbums is the prefix for album caches (albums:page:{n}, albums:slug:{artist}:{album})
	PrefixAlbums = "albums"

	// PrefixArtists is the prefix for artist caches (artists:page:{n}, artists:slug:{slug})
	PrefixArtists = "artists"

	// PrefixReviews is the prefix for review caches (reviews:albums:{id}:page:{n})
	PrefixReviews = "reviews"

	// PrefixLists is the prefix for album list caches (lists:{username})
	PrefixLists = "lists"

	// PrefixUsers is the prefix for user profile caches (users:{username})
	PrefixUsers = "users"

	// PrefixFollowers is the prefix for follower caches (followers:{artistID})
	PrefixFollowers = "followers"

	// PrefixRatings is the prefix for rating caches (ratings:{albumID})
	PrefixRatings = "ratings"
)

// Key builds a cache key from colon-joined segments.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// CatalogPrefixes returns the prefixes that should be invalidated when an
// artist or album changes. Ratings and reviews are keyed per album and
// invalidated individually by the mutation that touched them.
func CatalogPrefixes() []string {
	return []string{PrefixAlbums, PrefixArtists}
}
