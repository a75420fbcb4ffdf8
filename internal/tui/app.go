// Package tui is the terminal browse interface over the catalog: album
// and artist views with load-more pagination, client-side filtering and
// sorting, and a fuzzy quick-jump.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reedham/waxwing/internal/api"
	"github.com/reedham/waxwing/internal/domain"
	"github.com/reedham/waxwing/internal/filter"
	"github.com/reedham/waxwing/internal/query"
	"github.com/reedham/waxwing/internal/search"
)

type view int

const (
	viewAlbums view = iota
	viewArtists
)

func (v view) String() string {
	if v == viewArtists {
		return "Artists"
	}
	return "Albums"
}

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeSearch
)

// pageLoadedMsg reports a finished pager fetch.
type pageLoadedMsg struct {
	view view
	err  error
}

// Model is the root bubbletea model.
type Model struct {
	client *api.Client
	cache  *query.Cache
	logger *slog.Logger

	albums  *query.Pager[domain.Album]
	artists *query.Pager[domain.Artist]
	filters map[view]*filter.State
	index   *search.Index

	view   view
	mode   mode
	cursor int

	input   textinput.Model
	spinner spinner.Model
	keys    KeyMap
	status  string
	err     error

	width  int
	height int
}

// NewModel wires the browse UI over an authenticated client. Page
// fetches go through the cache so a refreshed view refetches while
// untouched pages keep serving from memory.
func NewModel(client *api.Client, cache *query.Cache, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	albums := query.NewPager(func(ctx context.Context, page int) (domain.Page[domain.Album], error) {
		key := query.Key(query.PrefixAlbums, "page", strconv.Itoa(page))
		return query.Fetch(ctx, cache, key, func(ctx context.Context) (domain.Page[domain.Album], error) {
			return client.GetAlbums(ctx, page)
		})
	}, logger)

	artists := query.NewPager(func(ctx context.Context, page int) (domain.Page[domain.Artist], error) {
		key := query.Key(query.PrefixArtists, "page", strconv.Itoa(page))
		return query.Fetch(ctx, cache, key, func(ctx context.Context) (domain.Page[domain.Artist], error) {
			return client.GetArtists(ctx, page)
		})
	}, logger)

	input := textinput.New()
	input.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:  client,
		cache:   cache,
		logger:  logger,
		albums:  albums,
		artists: artists,
		filters: map[view]*filter.State{
			viewAlbums:  {},
			viewArtists: {},
		},
		index:   search.NewIndex(logger),
		input:   input,
		spinner: sp,
		keys:    DefaultKeyMap(),
	}
}

// Init kicks off the first page of both views.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadNext(viewAlbums), m.loadNext(viewArtists))
}

// loadNext advances a pager in the background.
func (m Model) loadNext(v view) tea.Cmd {
	return func() tea.Msg {
		var err error
		if v == viewAlbums {
			err = m.albums.FetchNext(context.Background())
		} else {
			err = m.artists.FetchNext(context.Background())
		}
		return pageLoadedMsg{view: v, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Tab):
		if m.view == viewAlbums {
			m.view = viewArtists
		} else {
			m.view = viewAlbums
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.loadNext(m.view)

	case key.Matches(msg, m.keys.Sort):
		st := m.filters[m.view]
		st.Sort = st.Sort.Next()
		m.status = "sort: " + st.Sort.String()
		m.cursor = 0

	case key.Matches(msg, m.keys.Clear):
		m.filters[m.view].Reset()
		m.status = ""
		m.cursor = 0

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.Placeholder = "filter by name"
		m.input.SetValue(m.filters[m.view].Text)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Placeholder = "jump to"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.cache.Invalidate(query.CatalogPrefixes()...)
		m.albums.Reset()
		m.artists.Reset()
		m.cursor = 0
		m.status = "refreshing"
		return m, tea.Batch(m.loadNext(viewAlbums), m.loadNext(viewArtists))
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		value := m.input.Value()
		if m.mode == modeFilter {
			m.filters[m.view].Text = value
			m.cursor = 0
		} else {
			m.jumpTo(value)
		}
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// jumpTo moves the cursor to the best fuzzy match among visible rows.
func (m *Model) jumpTo(q string) {
	rows := m.visibleRows()
	docs := make([]search.Doc, len(rows))
	for i, title := range rows {
		docs[i] = search.Doc{Key: strconv.Itoa(i), Title: title, Ref: i}
	}
	m.index.Rebuild(docs)

	results := m.index.Search(q)
	if len(results) == 0 {
		m.status = "no match for " + strconv.Quote(q)
		return
	}
	m.cursor = results[0].Ref.(int)
	m.status = fmt.Sprintf("%d matches", len(results))
}

// visibleRows renders the active view's filtered rows.
func (m Model) visibleRows() []string {
	if m.view == viewAlbums {
		albums := filter.Apply(m.albums.Items(), *m.filters[viewAlbums])
		rows := make([]string, len(albums))
		for i, a := range albums {
			artist := ""
			if a.Artist != nil {
				artist = a.Artist.Name
			}
			rows[i] = fmt.Sprintf("%-40s %-24s %4d  %.1f", truncate(a.Title, 40), truncate(artist, 24), a.ReleaseYear(), a.Rating)
		}
		return rows
	}

	artists := filter.Apply(m.artists.Items(), *m.filters[viewArtists])
	rows := make([]string, len(artists))
	for i, a := range artists {
		rows[i] = fmt.Sprintf("%-40s %-24s %4d", truncate(a.Name, 40), truncate(a.OriginCountry, 24), a.FormedYear)
	}
	return rows
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func (m Model) activeState() query.State {
	if m.view == viewAlbums {
		return m.albums.State()
	}
	return m.artists.State()
}

func (m Model) activeTotal() int64 {
	if m.view == viewAlbums {
		return m.albums.Total()
	}
	return m.artists.Total()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("waxwing"))
	b.WriteString("  ")
	for _, v := range []view{viewAlbums, viewArtists} {
		if v == m.view {
			b.WriteString(activeTabStyle.Render(v.String()))
		} else {
			b.WriteString(tabStyle.Render(v.String()))
		}
	}
	b.WriteString("\n\n")

	rows := m.visibleRows()
	visible := m.height - 6
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		line := rows[i]
		if i == m.cursor {
			line = selectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  nothing to show"))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch m.mode {
	case modeFilter, modeSearch:
		b.WriteString(m.input.View())
	default:
		b.WriteString(m.statusLine(len(rows)))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) statusLine(shown int) string {
	var parts []string

	switch state := m.activeState(); state {
	case query.StateLoadingFirst, query.StateLoadingMore:
		parts = append(parts, m.spinner.View()+"loading")
	case query.StateHasMore:
		parts = append(parts, fmt.Sprintf("%d/%d loaded, m for more", shown, m.activeTotal()))
	case query.StateExhausted:
		parts = append(parts, fmt.Sprintf("%d shown", shown))
	default:
		parts = append(parts, "idle")
	}

	if st := m.filters[m.view]; st.Active() || st.Sort != filter.SortNone {
		parts = append(parts, "filter: "+describe(*st))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}

	return statusStyle.Render(strings.Join(parts, "  |  "))
}

// describe summarizes a filter state for the status bar.
func describe(st filter.State) string {
	var parts []string
	if st.Text != "" {
		parts = append(parts, strconv.Quote(st.Text))
	}
	if st.Genre != "" {
		parts = append(parts, "genre="+st.Genre)
	}
	if st.Year != 0 {
		parts = append(parts, "year="+strconv.Itoa(st.Year))
	}
	if st.Country != "" {
		parts = append(parts, "country="+st.Country)
	}
	if st.Sort != filter.SortNone {
		parts = append(parts, "sort="+st.Sort.String())
	}
	return strings.Join(parts, " ")
}
