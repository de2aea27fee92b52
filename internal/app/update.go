package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/download"
	"github.com/llehouerou/saavn/internal/errmsg"
	"github.com/llehouerou/saavn/internal/player"
	"github.com/llehouerou/saavn/internal/state"
	"github.com/llehouerou/saavn/internal/ui/searchbar"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case searchbar.SubmitMsg:
		return m.handleSubmit(msg.Query)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd

	case DownloadResultMsg:
		return m.handleDownloadResult(msg)

	case EngineStateMsg:
		if msg.Current.IsMounted() && msg.Track != nil {
			m.Songs.SetPlaying(msg.Track.Identity())
		} else {
			m.Songs.SetPlaying("")
		}
		return m, m.WatchEngineEvents()

	case EnginePositionMsg:
		// The player bar reads the engine snapshot on render.
		return m, m.WatchEngineEvents()

	case EngineErrorMsg:
		m.Status = engineErrorText(player.ErrorEvent(msg))
		return m, m.WatchEngineEvents()

	case EngineClosedMsg:
		return m, nil

	case StderrMsg:
		m.Status = string(msg)
		return m, WatchStderr()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleSubmit starts a search. Blank queries never reach here.
func (m Model) handleSubmit(query string) (tea.Model, tea.Cmd) {
	m.searchSeq++
	m.Loading = true
	m.Err = ""
	m.Status = ""
	m.log.Debug("search", zap.String("query", query), zap.Int("seq", m.searchSeq))
	return m, tea.Batch(m.searchCmd(m.searchSeq, query), m.Search.SetLoading(true))
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.searchSeq {
		return m, nil
	}
	m.Loading = false
	m.Search.SetLoading(false)
	m.HasSearched = true

	if msg.Err != nil {
		m.log.Warn("search failed", zap.String("query", msg.Query), zap.Error(msg.Err))
		m.Err = errmsg.SearchFailed
		m.Results = nil
		m.Songs.SetTracks(nil)
		return m, nil
	}

	m.Err = ""
	m.Results = msg.Tracks
	m.Songs.SetTracks(msg.Tracks)
	if len(msg.Tracks) > 0 {
		return m, m.setFocus(FocusList)
	}
	return m, nil
}

func (m Model) handleDownloadResult(msg DownloadResultMsg) (tea.Model, tea.Cmd) {
	name := msg.Track.Name
	switch {
	case msg.Err == nil:
		m.Status = "Saved " + msg.Result.Path
	case msg.Result.Fallback:
		m.Status = errmsg.FormatWith(errmsg.OpDownload, name, msg.Err) + " (opened in browser)"
	default:
		m.Status = errmsg.FormatWith(errmsg.OpDownload, name, msg.Err)
	}
	return m, nil
}

func engineErrorText(e player.ErrorEvent) string {
	op := errmsg.OpLoadAudio
	if e.Operation == "play" {
		op = errmsg.OpPlay
	}
	if errors.Is(e.Err, player.ErrNoSource) {
		return errmsg.Format(op, download.ErrNoSource)
	}
	return errmsg.Format(op, e.Err)
}

// saveVolume persists the volume preference. Failures are logged only.
func (m Model) saveVolume() {
	if m.store == nil {
		return
	}
	s := m.engine.Snapshot()
	v := state.VolumeState{Volume: s.Volume, Muted: s.Muted}
	if s.Muted {
		v.Volume = s.VolumeBeforeMute
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := state.SaveVolume(ctx, m.store, v); err != nil {
		m.log.Warn(errmsg.Format(errmsg.OpSaveVolume, err))
	}
}
