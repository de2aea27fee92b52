package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/saavn/internal/keymap"
	"github.com/llehouerou/saavn/internal/ui"
	"github.com/llehouerou/saavn/internal/ui/playerbar"
	"github.com/llehouerou/saavn/internal/ui/render"
	"github.com/llehouerou/saavn/internal/ui/songlist"
	"github.com/llehouerou/saavn/internal/ui/styles"
)

const appName = "saavn"

// resize lays out components for the current window and player state.
func (m *Model) resize() {
	listHeight := m.Height - ui.HeaderHeight - ui.StatusHeight
	if m.engine.State().IsMounted() {
		listHeight -= playerbar.Height
	}
	m.Search.SetWidth(max(m.Width-lipgloss.Width(appName)-1, 1))
	m.Songs.SetSize(m.Width, max(listHeight, ui.BorderHeight+2))
}

// placeholder returns the text shown instead of rows, or "".
func (m Model) placeholder() string {
	switch {
	case m.Loading:
		return songlist.LoadingText
	case m.Err != "":
		return m.Err
	case !m.HasSearched:
		return songlist.HintText
	case len(m.Results) == 0:
		return songlist.NoResultsText
	}
	return ""
}

// View renders the screen.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}
	m.resize()

	var b strings.Builder
	b.WriteString(styles.Logo(appName) + " " + m.Search.View())
	b.WriteString("\n\n")
	b.WriteString(m.Songs.View(m.placeholder()))

	bar := playerbar.Render(playerbar.NewState(m.engine.State(), m.engine.Snapshot()), m.Width)
	if bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	s := styles.T().S()
	switch {
	case m.Err != "":
		return s.Error.Render(render.Truncate(m.Err, m.Width))
	case m.Status != "":
		return s.Warning.Render(render.Truncate(m.Status, m.Width))
	}
	help := keymap.Help(keymap.Default)
	parts := make([]string, 0, len(help))
	for _, e := range help {
		parts = append(parts, s.Key.Render(e.Keys)+" "+s.Muted.Render(e.Description))
	}
	return render.TruncateStyled(strings.Join(parts, "  "), m.Width)
}
