// Package songlist renders search results as a scrollable table and tracks
// the selection.
package songlist

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/ui"
	"github.com/llehouerou/saavn/internal/ui/playerbar"
	"github.com/llehouerou/saavn/internal/ui/render"
	"github.com/llehouerou/saavn/internal/ui/styles"
)

// Placeholder texts for the different empty states.
const (
	HintText      = "Press / to search JioSaavn."
	NoResultsText = "No songs found."
	LoadingText   = "Searching…"
)

// Model is the result list.
type Model struct {
	tracks  []catalog.Track
	pos     int // cursor
	offset  int // first visible row
	width   int
	height  int
	focused bool
	playing string // identity of the mounted track
}

func New() Model {
	return Model{}
}

// SetTracks replaces the rows and moves the cursor to the top.
func (m *Model) SetTracks(tracks []catalog.Track) {
	m.tracks = tracks
	m.pos = 0
	m.offset = 0
}

func (m Model) Tracks() []catalog.Track { return m.tracks }

func (m Model) Len() int { return len(m.tracks) }

// Cursor returns the selected row index.
func (m Model) Cursor() int { return m.pos }

// Selected returns the track under the cursor.
func (m Model) Selected() (catalog.Track, bool) {
	if m.pos < 0 || m.pos >= len(m.tracks) {
		return catalog.Track{}, false
	}
	return m.tracks[m.pos], true
}

// SetPlaying marks the row whose identity matches id.
func (m *Model) SetPlaying(id string) { m.playing = id }

func (m *Model) SetFocused(f bool) { m.focused = f }

func (m Model) Focused() bool { return m.focused }

// SetSize sets the panel size including its border.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.ensureVisible()
}

func (m Model) visibleRows() int {
	return max(m.height-ui.BorderHeight-1, 1) // border + column header
}

// Move shifts the cursor by delta rows, clamped to the list.
func (m *Model) Move(delta int) {
	if len(m.tracks) == 0 {
		return
	}
	m.pos = min(max(m.pos+delta, 0), len(m.tracks)-1)
	m.ensureVisible()
}

// ensureVisible scrolls so the cursor keeps ScrollMargin rows of context.
func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	margin := min(ui.ScrollMargin, (rows-1)/2)
	if m.pos < m.offset+margin {
		m.offset = max(m.pos-margin, 0)
	}
	if m.pos >= m.offset+rows-margin {
		m.offset = m.pos - rows + margin + 1
	}
	m.offset = min(m.offset, max(len(m.tracks)-rows, 0))
	m.offset = max(m.offset, 0)
}

// Update handles navigation keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.Move(-1)
	case "down", "j":
		m.Move(1)
	case "pgup":
		m.Move(-m.visibleRows())
	case "pgdown":
		m.Move(m.visibleRows())
	case "home", "g":
		m.Move(-len(m.tracks))
	case "end", "G":
		m.Move(len(m.tracks))
	}
	return m, nil
}

// column widths for a given inner width
type columns struct {
	title, artist, album, length int
}

func layout(width int) columns {
	const length = 6
	rest := max(width-length-6, 3) // cursor marker + gaps
	c := columns{length: length}
	c.title = rest * 2 / 5
	c.artist = rest * 3 / 10
	c.album = rest - c.title - c.artist
	return c
}

// View renders the panel. placeholder replaces the rows when non-empty.
func (m Model) View(placeholder string) string {
	inner := max(m.width-ui.BorderHeight, 0)
	rows := m.visibleRows()
	cols := layout(inner)

	lines := make([]string, 0, rows+1)
	header := fmt.Sprintf("  %s %s %s %s",
		render.Fit("Title", cols.title),
		render.Fit("Artists", cols.artist),
		render.Fit("Album", cols.album),
		render.Fit("Time", cols.length))
	lines = append(lines, styles.T().S().Subtle.Render(header))

	if placeholder != "" {
		lines = append(lines, styles.T().S().Muted.Render(render.Truncate(placeholder, inner)))
	} else {
		end := min(m.offset+rows, len(m.tracks))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(i, cols, inner))
		}
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}

	return styles.Panel(m.focused).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(i int, cols columns, inner int) string {
	t := m.tracks[i]
	marker := "  "
	style := styles.T().S().Base
	if id := t.Identity(); id != "" && id == m.playing {
		marker = "▶ "
		style = styles.T().S().Playing
	}
	title := t.Name
	if y := int(t.Year); y > 0 {
		title += " (" + strconv.Itoa(y) + ")"
	}
	line := marker +
		render.Fit(title, cols.title) + " " +
		render.Fit(t.ArtistLine(), cols.artist) + " " +
		render.Fit(t.Album.Name, cols.album) + " " +
		render.Fit(formatLength(t.Duration), cols.length)
	line = render.Fit(line, inner)
	if i == m.pos && m.focused {
		return styles.T().S().Cursor.Inherit(style).Render(line)
	}
	return style.Render(line)
}

func formatLength(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	return playerbar.FormatTime(seconds)
}
