package app

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/keymap"
	"github.com/llehouerou/saavn/internal/player"
)

const (
	seekStep   = 5.0
	volumeStep = 0.1
)

// keyResult is the outcome of one key handler.
type keyResult struct {
	handled bool
	cmd     tea.Cmd
}

var notHandled = keyResult{}

func handled(cmd tea.Cmd) keyResult {
	return keyResult{handled: true, cmd: cmd}
}

// chain runs handlers in order until one handles the key.
func chain(handlers ...func() keyResult) (bool, tea.Cmd) {
	for _, h := range handlers {
		if r := h(); r.handled {
			return true, r.cmd
		}
	}
	return false, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := m.keys.Resolve(key)

	// ctrl+c quits from anywhere, including while typing.
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.Focus == FocusSearch {
		switch key {
		case "esc", "tab":
			return m, m.setFocus(FocusList)
		}
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	if action == keymap.ActionQuit {
		return m.quit()
	}

	mp := &m
	if ok, cmd := chain(
		func() keyResult { return mp.handleGlobalKeys(action) },
		func() keyResult { return mp.handleListKeys(action) },
		func() keyResult { return mp.handlePlaybackKeys(action) },
	); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.Songs, cmd = m.Songs.Update(msg)
	return m, cmd
}

func (m *Model) handleGlobalKeys(a keymap.Action) keyResult {
	if a == keymap.ActionFocusSearch {
		return handled(m.setFocus(FocusSearch))
	}
	return notHandled
}

// handleListKeys acts on the selected result.
func (m *Model) handleListKeys(a keymap.Action) keyResult {
	switch a {
	case keymap.ActionPlaySelected:
		m.playSelected()
		return handled(nil)
	case keymap.ActionDownload:
		track, ok := m.Songs.Selected()
		if !ok {
			return handled(nil)
		}
		m.Status = "Downloading " + track.Name + "…"
		return handled(m.downloadCmd(track))
	}
	return notHandled
}

// playSelected makes the selected result the current track and mounts it
// from the start. Selecting the mounted track resumes it instead.
func (m *Model) playSelected() {
	track, ok := m.Songs.Selected()
	if !ok {
		return
	}
	if cur := m.engine.Snapshot().Track; cur != nil && cur.SameAs(&track) {
		m.engine.Play()
		return
	}
	m.log.Info("track selected", zap.String("track", track.Identity()))
	// Mount first: it stops the old progress loop, so no position of the
	// previous track can be reported once the session holds the new one.
	m.engine.Mount(track, 0)
	m.session.SelectTrack(track)
}

func (m *Model) handlePlaybackKeys(a keymap.Action) keyResult {
	switch a {
	case keymap.ActionPlayPause:
		m.engine.Toggle()
	case keymap.ActionSeekBack:
		m.engine.SeekBy(-seekStep)
	case keymap.ActionSeekForward:
		m.engine.SeekBy(seekStep)
	case keymap.ActionVolumeUp:
		m.engine.SetVolume(stepLevel(m.engine.Snapshot(), volumeStep))
		m.saveVolume()
	case keymap.ActionVolumeDown:
		m.engine.SetVolume(stepLevel(m.engine.Snapshot(), -volumeStep))
		m.saveVolume()
	case keymap.ActionMute:
		m.engine.ToggleMute()
		m.saveVolume()
	case keymap.ActionClose:
		m.engine.Close()
	default:
		return notHandled
	}
	return handled(nil)
}

// stepLevel returns the level one volume step away, rounded to hundredths.
// While muted it steps from the level that unmuting would restore.
func stepLevel(s player.Session, delta float64) float64 {
	base := s.Volume
	if s.Muted {
		base = s.VolumeBeforeMute
	}
	return math.Round((base+delta)*100) / 100
}

// quit unmounts without user-close intent: the position is flushed and the
// next start resumes the track.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.log.Info("quitting")
	m.engine.Shutdown()
	return m, tea.Quit
}
