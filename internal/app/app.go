// Package app is the root bubbletea model: it wires the search bar, the
// result list and the player bar to the catalog, the playback engine and
// the session controller.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/download"
	"github.com/llehouerou/saavn/internal/keymap"
	"github.com/llehouerou/saavn/internal/logging"
	"github.com/llehouerou/saavn/internal/player"
	"github.com/llehouerou/saavn/internal/session"
	"github.com/llehouerou/saavn/internal/state"
	"github.com/llehouerou/saavn/internal/ui/searchbar"
	"github.com/llehouerou/saavn/internal/ui/songlist"
)

// The session controller is the engine's upward reporter.
var _ player.Reporter = (*session.Controller)(nil)

// Searcher finds songs for a free-text query.
type Searcher interface {
	SearchSongs(ctx context.Context, query string) ([]catalog.Track, error)
}

// Downloader saves a track to disk.
type Downloader interface {
	Download(ctx context.Context, track catalog.Track) (download.Result, error)
}

// Deps are the collaborators the model drives.
type Deps struct {
	Searcher   Searcher
	Downloader Downloader
	Engine     *player.Engine
	Session    *session.Controller
	Store      state.Store // volume preference
	Logger     *zap.Logger
}

// FocusTarget is the component receiving key input.
type FocusTarget int

const (
	FocusSearch FocusTarget = iota
	FocusList
)

// Model is the root application model.
type Model struct {
	searcher   Searcher
	downloader Downloader
	engine     *player.Engine
	session    *session.Controller
	store      state.Store
	log        *zap.Logger
	sub        *player.Subscription
	keys       *keymap.Resolver

	Search searchbar.Model
	Songs  songlist.Model
	Focus  FocusTarget

	// Search state. Err is the user-facing message of the last failed search.
	Results     []catalog.Track
	Loading     bool
	Err         string
	HasSearched bool
	searchSeq   int

	// Status is the transient message of the bottom line.
	Status string

	Width  int
	Height int
}

// New creates the model. The engine subscription is opened here so that no
// event published before Init is lost.
func New(d Deps) Model {
	m := Model{
		searcher:   d.Searcher,
		downloader: d.Downloader,
		engine:     d.Engine,
		session:    d.Session,
		store:      d.Store,
		log:        logging.OrNop(d.Logger),
		sub:        d.Engine.Subscribe(),
		keys:       keymap.NewResolver(keymap.Default),
		Search:     searchbar.New(),
		Songs:      songlist.New(),
	}
	// The search cursor is static, so focusing yields no blink command
	// worth returning from Init.
	_ = m.setFocus(FocusSearch)
	return m
}

// Init resumes the last track if the session restored one and starts
// listening for engine events.
func (m Model) Init() tea.Cmd {
	if track, pos := m.session.Current(); track != nil {
		m.log.Info("mounting resumed track",
			zap.String("track", track.Identity()),
			zap.Float64("position", pos))
		m.engine.Mount(*track, pos)
	}
	return tea.Batch(m.WatchEngineEvents(), WatchStderr())
}

func (m *Model) setFocus(f FocusTarget) tea.Cmd {
	m.Focus = f
	m.Songs.SetFocused(f == FocusList)
	if f == FocusSearch {
		return m.Search.Focus()
	}
	m.Search.Blur()
	return nil
}
