package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/app"
	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/config"
	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/log"
	"github.com/llehouerou/tunebrew/internal/mpris"
	"github.com/llehouerou/tunebrew/internal/notify"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/player"
	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/stderr"
)

// runTUI wires the session to the audio player, persistence, desktop
// integration and the terminal UI, and blocks until the UI quits.
func runTUI(cfg *config.Config, open *app.Open) error {
	logCfg := cfg.GetLogConfig()
	closeLog, err := log.Setup(log.Options{
		Enabled: *logCfg.Enabled,
		Level:   logCfg.Level,
		JSON:    logCfg.JSON,
		Dir:     logCfg.Dir,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closeLog()
	logger := log.For("cli")

	// Audio libraries write to stderr, which would corrupt the TUI.
	capture, err := stderr.Start(log.For("stderr"))
	if err != nil {
		logger.WithError(err).Warn("stderr not captured")
	} else {
		defer capture.Stop()
	}

	st, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()

	p := player.New()
	defer p.Close()

	session := playback.New(p, playback.WithLikes(likes.New(st)))
	defer session.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := startAnnouncer(ctx, session, notify.New); err != nil {
		logger.WithError(err).Warn("desktop notifications unavailable")
	}

	if adapter, err := mpris.New(session); err != nil {
		logger.WithError(err).Warn("media keys unavailable")
	} else {
		defer adapter.Close()
	}

	var songs app.Catalog
	if cfg.HasAPI() {
		songs = catalog.New(catalog.Config{
			APIURL:        cfg.APIURL,
			ThumbnailBase: cfg.GetThumbnailBase(),
			Artists:       cfg.GetArtists(),
		})
	}

	qr := &app.QRBox{}
	var target share.Capability
	if cfg.ShareBase != "" {
		target = share.ForMethod(cfg.GetShareMethod(), qr.Show)
	}

	m := app.New(app.Deps{
		Session: session,
		State:   st,
		Catalog: songs,
		Sharer:  share.NewSharer(target, cfg.ShareBase),
		Mixer:   p,
		QR:      qr,
	}, app.Options{
		Autoplay:     cfg.GetAutoplay(),
		PollInterval: cfg.GetPollInterval(),
		RecentLimit:  cfg.GetRecentLimit(),
		Open:         open,
	})

	logger.WithField("api", cfg.HasAPI()).Info("starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// startAnnouncer sends desktop notifications for session events until ctx
// is done. Without a notifier the session runs silently.
func startAnnouncer(ctx context.Context, session *playback.Session, newNotifier func() (notify.Notifier, error)) error {
	n, err := newNotifier()
	if err != nil {
		return fmt.Errorf("connect notifier: %w", err)
	}
	announcer := notify.NewAnnouncer(n, notify.NewCovers("", nil), log.For("notify"))
	go announcer.Run(ctx, session.Subscribe())
	return nil
}
