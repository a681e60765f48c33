package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvarley/shopkeep/internal/portal"
	"github.com/nvarley/shopkeep/internal/state"
)

const (
	defaultRefreshInterval = 30 * time.Second
	maxBackoff             = 5 * time.Minute
)

// StartRefresher launches a background goroutine that refreshes the catalog
// at a fixed cadence while a session is active, backing off while the portal
// is unreachable. It returns immediately.
func StartRefresher(ctx context.Context, store *state.Store, client portal.API, logger *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client, logger)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer.Reset(wait)
		}
	}()
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff. Zero failures returns the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, client portal.API, logger *slog.Logger) {
	// Nothing to refresh before login; the UI triggers the first fetch.
	if !store.Snapshot().Authenticated() {
		return
	}
	products, err := client.ListProducts(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Error("product refresh failed", "error", err)
		return
	}
	favourites, err := client.ListFavourites(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Error("favourites refresh failed", "error", err)
		return
	}
	store.Update(products, favourites, nil)
}
