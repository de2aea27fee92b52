package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/app"
	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/download"
	"github.com/llehouerou/saavn/internal/errmsg"
	"github.com/llehouerou/saavn/internal/mpris"
	"github.com/llehouerou/saavn/internal/notify"
	"github.com/llehouerou/saavn/internal/player"
	"github.com/llehouerou/saavn/internal/session"
	"github.com/llehouerou/saavn/internal/state"
	"github.com/llehouerou/saavn/internal/stderr"
)

// runPlayer wires the application and runs the TUI until the user quits.
func runPlayer(ctx context.Context, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Must precede the audio backend, which writes to fd 2 directly.
	if err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", zap.Error(err))
	}
	defer stderr.Stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close state", zap.Error(err))
		}
	}()

	vol := volumeFor(ctx, store, cfg.InitialVolume(), log)

	ctrl := session.New(store, session.WithLogger(log.Named("session")))
	engine := player.NewEngine(
		player.NewSpeaker(nil, log.Named("speaker")),
		ctrl,
		player.WithLogger(log.Named("player")),
		player.WithVolume(vol.Volume, vol.Muted),
	)

	if media, err := mpris.New(engine); err != nil {
		log.Warn("media controls unavailable", zap.Error(err))
	} else {
		defer media.Close()
	}

	cc := cfg.GetCatalogConfig()
	client := catalog.NewClient(cc.BaseURL, cc.Timeout)

	dlOpts := []download.Option{download.WithLogger(log.Named("download"))}
	if n, err := notify.New(); err == nil {
		dlOpts = append(dlOpts, download.WithNotifier(n))
	} else {
		log.Debug("desktop notifications unavailable", zap.Error(err))
	}
	downloader := download.New(cfg.DownloadDir(), dlOpts...)

	if ctrl.LoadOnStartup(ctx) {
		log.Info("resuming last session")
	}

	model := app.New(app.Deps{
		Searcher:   client,
		Downloader: downloader,
		Engine:     engine,
		Session:    ctrl,
		Store:      store,
		Logger:     log.Named("app"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()
	// Quit already unmounted; this covers a killed program.
	engine.Shutdown()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", runErr)
	}
	return nil
}

// volumeFor returns the saved volume preference, falling back to the
// configured level when none was saved.
func volumeFor(ctx context.Context, store state.Store, fallback float64, log *zap.Logger) state.VolumeState {
	v, err := state.LoadVolume(ctx, store, fallback)
	if err != nil {
		log.Warn("read volume preference", zap.Error(err))
	}
	return v
}
