// Package state provides thread-safe state management for the Shopkeep
// application.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// session user and product catalog between the background refresher and the
// UI. It acts as the coordination point where catalog refreshes meet UI
// rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Refresher):          Consumer (UI):
//	┌──────────────────┐          ┌─────────────────┐
//	│ ListProducts()   │          │                 │
//	│ ListFavourites() │          │                 │
//	│      ↓           │          │                 │
//	│ store.Update()   │─────────→│ store.Snapshot()│
//	│      ↓           │  (mutex) │      ↓          │
//	│  repeat...       │          │  render UI      │
//	└──────────────────┘          └─────────────────┘
//
// The Store mediates between these two independent goroutines, ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable snapshots (defensive copying)
//
// # Update Semantics
//
// The Update method keeps the last successful catalog when a refresh fails:
//
//	// Success case: Replace the catalog
//	store.Update(products, favourites, nil)
//	→ snapshot.Products = products
//	→ snapshot.Favourites = favourites
//	→ snapshot.LastError = nil
//
//	// Error case: Keep old data, record error
//	store.Update(nil, nil, err)
//	→ snapshot.Products = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// This ensures the UI always has the most recent successful data to display,
// while also being informed of refresh failures. SetUser(nil) clears the
// whole snapshot so nothing from a previous session survives a logout.
//
// # Defensive Copying
//
// Both Update and Snapshot perform copies to prevent shared state: product
// slices are cloned, the user struct is copied, and error values are wrapped
// rather than shared. The cost is negligible at catalog scale.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
//
// Snapshot() returns a zero Snapshot if never updated, and updates are
// atomic and immediately visible.
package state
