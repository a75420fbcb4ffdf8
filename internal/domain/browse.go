package domain

// Browse accessors shared by Artist and Album so list views can filter
// and sort both through one interface.

// DisplayName returns the artist's name.
func (a Artist) DisplayName() string { return a.Name }

// GenreNames returns the artist's genre names.
func (a Artist) GenreNames() []string {
	names := make([]string, len(a.Genres))
	for i, g := range a.Genres {
		names[i] = g.Name
	}
	return names
}

// Year returns the year the artist formed.
func (a Artist) Year() int { return a.FormedYear }

// Country returns the artist's origin country.
func (a Artist) Country() string { return a.OriginCountry }

// SortRating returns 0; artists carry no aggregate rating.
func (a Artist) SortRating() float64 { return 0 }

// DisplayName returns the album's title.
func (a Album) DisplayName() string { return a.Title }

// GenreNames returns the album's genre names.
func (a Album) GenreNames() []string {
	names := make([]string, len(a.Genres))
	for i, g := range a.Genres {
		names[i] = g.Name
	}
	return names
}

// Year returns the album's release year.
func (a Album) Year() int { return a.ReleaseYear() }

// Country returns the album's origin country.
func (a Album) Country() string { return a.OriginCountry }

// SortRating returns the album's aggregate rating.
func (a Album) SortRating() float64 { return a.Rating }
