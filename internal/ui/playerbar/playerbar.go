// Package playerbar renders the bottom bar of the mounted track: status,
// title, artists, progress and volume.
package playerbar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/saavn/internal/player"
	"github.com/llehouerou/saavn/internal/ui"
	"github.com/llehouerou/saavn/internal/ui/render"
	"github.com/llehouerou/saavn/internal/ui/styles"
)

// Height is the bar height including its border.
const Height = 3

// Status glyphs.
const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	loadingSymbol = "…"
	endedSymbol   = "■"
)

// State holds everything needed to render the bar.
type State struct {
	Engine   player.State
	Title    string
	Artists  string
	Position float64 // seconds
	Duration float64 // seconds
	Volume   float64
	Muted    bool
}

// NewState builds a State from an engine snapshot.
func NewState(st player.State, s player.Session) State {
	out := State{
		Engine:   st,
		Position: s.Position,
		Duration: s.Duration,
		Volume:   s.Volume,
		Muted:    s.Muted,
	}
	if s.Track != nil {
		out.Title = s.Track.Name
		out.Artists = s.Track.ArtistLine()
	}
	return out
}

// Visible reports whether a track is mounted.
func (s State) Visible() bool {
	return s.Engine.IsMounted()
}

func titleStyle() lipgloss.Style  { return styles.T().S().Title }
func artistStyle() lipgloss.Style { return styles.T().S().Muted }
func timeStyle() lipgloss.Style   { return styles.T().S().Muted }

func barStyle() lipgloss.Style {
	return styles.Panel(false).Padding(0, 1)
}

// Render returns the bar for the given total width, or "" when nothing is
// mounted.
func Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}
	innerWidth := max(width-4, 0) // border + padding

	status := statusSymbol(s.Engine)
	timeStr := FormatTime(s.Position) + " / " + FormatTime(s.Duration)
	volume := RenderVolume(s.Volume, s.Muted)

	title := render.Sanitize(s.Title)
	if title == "" {
		title = "Unknown Track"
	}
	info := title
	if s.Artists != "" {
		info += " · " + render.Sanitize(s.Artists)
	}

	const sep = "  "
	fixed := lipgloss.Width(status) + len(sep)*3 + lipgloss.Width(timeStr) + lipgloss.Width(volume)
	avail := innerWidth - fixed - ui.MinProgressBarWidth
	infoWidth := min(lipgloss.Width(info), max(avail/2, 0))
	barWidth := max(innerWidth-fixed-infoWidth-len(sep), ui.MinProgressBarWidth)

	var b strings.Builder
	b.WriteString(status)
	b.WriteString(sep)
	if infoWidth > 0 {
		b.WriteString(styleInfo(info, title, infoWidth))
		b.WriteString(sep)
	}
	b.WriteString(RenderProgressBar(s.Position, s.Duration, barWidth))
	b.WriteString(sep)
	b.WriteString(timeStyle().Render(timeStr))
	b.WriteString(sep)
	b.WriteString(volume)

	return barStyle().Width(max(width-2, 0)).Render(render.TruncateStyled(b.String(), innerWidth))
}

// styleInfo renders "title · artists" truncated to width, keeping the
// title bold.
func styleInfo(info, title string, width int) string {
	cut := render.Truncate(info, width)
	if len(cut) <= len(title) || !strings.HasPrefix(cut, title) {
		return titleStyle().Render(cut)
	}
	return titleStyle().Render(title) + artistStyle().Render(cut[len(title):])
}

func statusSymbol(st player.State) string {
	switch st {
	case player.ReadyPlaying:
		return styles.T().S().Playing.Render(playSymbol)
	case player.Loading:
		return loadingSymbol
	case player.Ended:
		return endedSymbol
	default:
		return pauseSymbol
	}
}

// FormatTime renders seconds as m:ss. Negative, NaN and infinite values
// render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// RenderVolume renders the volume percentage, or "muted".
func RenderVolume(volume float64, muted bool) string {
	if muted {
		return timeStyle().Render("muted")
	}
	return timeStyle().Render(fmt.Sprintf("vol %3d%%", int(math.Round(volume*100))))
}
