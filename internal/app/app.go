package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nvarley/shopkeep/internal/config"
	"github.com/nvarley/shopkeep/internal/logging"
	"github.com/nvarley/shopkeep/internal/portal"
	"github.com/nvarley/shopkeep/internal/prefs"
	"github.com/nvarley/shopkeep/internal/state"
	"github.com/nvarley/shopkeep/internal/ui"
)

// Options configure the Shopkeep application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shopkeep/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the Shopkeep TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger, closer, err := logging.Open(cfg.LogFile)
	if err != nil {
		// A broken log path should not keep the portal out of reach.
		logger = logging.Discard()
	} else {
		defer func() { _ = closer.Close() }()
	}

	client, err := portal.NewClient(cfg.APIBase, cfg.AssetBase)
	if err != nil {
		return fmt.Errorf("init portal client: %w", err)
	}

	store := &state.Store{}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Resume an existing session, if the server still honors our cookie
	// jar. A failure here just lands the user on the login screen.
	if user, err := client.CurrentUser(ctx); err == nil {
		store.SetUser(user)
		refresh(ctx, store, client, logger)
	}

	// Keep the catalog fresh while the UI runs
	StartRefresher(ctx, store, client, logger, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Logger:    logger,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.View,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
