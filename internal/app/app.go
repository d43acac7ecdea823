package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MaskiCoding/StreaMaski/internal/config"
	"github.com/MaskiCoding/StreaMaski/internal/control"
	"github.com/MaskiCoding/StreaMaski/internal/favorites"
	"github.com/MaskiCoding/StreaMaski/internal/prefs"
	"github.com/MaskiCoding/StreaMaski/internal/settings"
	"github.com/MaskiCoding/StreaMaski/internal/streamlink"
	"github.com/MaskiCoding/StreaMaski/internal/supervisor"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
	"github.com/MaskiCoding/StreaMaski/internal/ui"
)

// Options configure the StreaMaski application.
type Options struct {
	ConfigPath   string
	SettingsPath string // empty uses the per-user default
	PrefsPath    string // empty uses ~/.config/streamaski/prefs.toml
	ThemeName    string // overrides the persisted theme preference
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
// Any stream still playing is stopped before Run returns.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()
	logger.Info().Str("version", settings.AppVersion).Msg("starting")

	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath, err = settings.DefaultPath()
		if err != nil {
			return err
		}
	}
	store, err := settings.Open(settingsPath, logger.With().Str("component", "settings").Logger())
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.StatusTimeoutSecs) * time.Second}
	checker := twitch.NewChecker(httpClient, logger.With().Str("component", "status").Logger(), twitch.CheckerOptions{
		CacheTTL:  time.Duration(cfg.StatusCacheSecs) * time.Second,
		WorkerCap: cfg.MaxStatusChecks,
	})

	locator := streamlink.NewLocator(cfg.RelayURL, logger.With().Str("component", "streamlink").Logger())
	locator.Override(cfg.StreamlinkOverride)
	go locator.Discover()

	sup := supervisor.New(locator, logger.With().Str("component", "supervisor").Logger(), supervisor.Options{})

	snap := store.Snapshot()
	registry := favorites.New(snap.QuickSwap, checker, store, logger.With().Str("component", "favorites").Logger())

	controller := control.New(sup, registry, store, logger.With().Str("component", "control").Logger())

	themeName := opts.ThemeName
	if themeName == "" {
		userPrefs, _ := prefs.Load(opts.PrefsPath)
		themeName = userPrefs.Theme
	}

	uiErr := ui.Run(ui.Options{
		Context:        ctx,
		Controller:     controller,
		InitialURL:     snap.LastURL,
		InitialQuality: snap.LastQuality,
		ThemeName:      themeName,
		PrefsPath:      opts.PrefsPath,
		RefreshEvery:   time.Duration(cfg.StatusCacheSecs) * time.Second,
	})

	// The child process must not outlive the interface.
	sup.Stop()
	logger.Info().Msg("shutting down")
	return uiErr
}
