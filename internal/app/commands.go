package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/stderr"
)

const (
	searchTimeout   = 15 * time.Second
	downloadTimeout = 10 * time.Minute
	saveTimeout     = 2 * time.Second
)

// searchCmd runs a search in the background.
func (m Model) searchCmd(seq int, query string) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		tracks, err := searcher.SearchSongs(ctx, query)
		return SearchResultMsg{Seq: seq, Query: query, Tracks: tracks, Err: err}
	}
}

// downloadCmd saves track in the background.
func (m Model) downloadCmd(track catalog.Track) tea.Cmd {
	dl := m.downloader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
		defer cancel()
		res, err := dl.Download(ctx, track)
		return DownloadResultMsg{Track: track, Result: res, Err: err}
	}
}

// WatchEngineEvents waits for the next engine event and converts it to a
// message. Handlers re-issue it to keep listening.
func (m Model) WatchEngineEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return EngineStateMsg(e)
		case e := <-sub.PositionChanged:
			return EnginePositionMsg(e)
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}

// WatchStderr waits for the next captured stderr line.
func WatchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}
