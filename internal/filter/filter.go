// Package filter narrows and orders already-loaded catalog slices
// entirely on the client. It never touches the network; pagination
// decides what is loaded, filter decides what is shown.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is the view a filterable catalog entry exposes. Artist and Album
// both satisfy it.
type Item interface {
	DisplayName() string
	GenreNames() []string
	Year() int
	Country() string
	SortRating() float64
}

// Sort is a sort key with direction.
type Sort int

const (
	SortNone Sort = iota
	SortNameAsc
	SortNameDesc
	SortRatingAsc
	SortRatingDesc
	SortYearAsc
	SortYearDesc
	SortCountryAsc
	SortCountryDesc

	sortCount
)

func (s Sort) String() string {
	switch s {
	case SortNameAsc:
		return "Name Asc"
	case SortNameDesc:
		return "Name Desc"
	case SortRatingAsc:
		return "Rating Asc"
	case SortRatingDesc:
		return "Rating Desc"
	case SortYearAsc:
		return "Year Asc"
	case SortYearDesc:
		return "Year Desc"
	case SortCountryAsc:
		return "Country Asc"
	case SortCountryDesc:
		return "Country Desc"
	default:
		return "None"
	}
}

// Next cycles to the following sort key, wrapping back to none.
func (s Sort) Next() Sort {
	return (s + 1) % sortCount
}

// State holds the active criteria. Zero values mean "not filtering on
// this field".
type State struct {
	Text    string // case-insensitive substring of the display name
	Genre   string // exact genre name
	Year    int    // exact formation/release year
	Country string // exact origin country
	Sort    Sort
}

// Active reports whether any criterion narrows the result.
func (s State) Active() bool {
	return s.Text != "" || s.Genre != "" || s.Year != 0 || s.Country != ""
}

// Reset clears every criterion but keeps the sort key.
func (s *State) Reset() {
	s.Text = ""
	s.Genre = ""
	s.Year = 0
	s.Country = ""
}

// Apply returns the items matching every active criterion, ordered by
// the sort key. The input is never modified; with no sort key the
// filtered items keep their input order.
func Apply[T Item](items []T, state State) []T {
	out := make([]T, 0, len(items))
	text := strings.ToLower(state.Text)

	for _, item := range items {
		if text != "" && !strings.Contains(strings.ToLower(item.DisplayName()), text) {
			continue
		}
		if state.Genre != "" && !hasGenre(item, state.Genre) {
			continue
		}
		if state.Year != 0 && item.Year() != state.Year {
			continue
		}
		if state.Country != "" && item.Country() != state.Country {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, state.Sort)
	return out
}

func hasGenre(item Item, genre string) bool {
	for _, name := range item.GenreNames() {
		if name == genre {
			return true
		}
	}
	return false
}

// sortItems orders items in place. Name and country comparisons are
// locale-aware; ties keep their relative order.
func sortItems[T Item](items []T, key Sort) {
	if key == SortNone {
		return
	}

	coll := collate.New(language.Und)
	less := func(a, b T) bool {
		switch key {
		case SortNameAsc:
			return coll.CompareString(a.DisplayName(), b.DisplayName()) < 0
		case SortNameDesc:
			return coll.CompareString(b.DisplayName(), a.DisplayName()) < 0
		case SortRatingAsc:
			return a.SortRating() < b.SortRating()
		case SortRatingDesc:
			return b.SortRating() < a.SortRating()
		case SortYearAsc:
			return a.Year() < b.Year()
		case SortYearDesc:
			return b.Year() < a.Year()
		case SortCountryAsc:
			return coll.CompareString(a.Country(), b.Country()) < 0
		case SortCountryDesc:
			return coll.CompareString(b.Country(), a.Country()) < 0
		default:
			return false
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
