// Package app provides the orchestration layer for the Shopkeep application.
//
// # Overview
//
// This package wires together configuration, logging, the portal client,
// state management, and the UI to create the complete Shopkeep TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/shopkeep/config.toml
//  2. Load user preferences (theme)
//  3. Open the structured log file
//  4. Initialize the portal HTTP client with its cookie jar
//  5. Create the shared state.Store for UI and refresher coordination
//  6. Try to resume an existing session via /api/user/me
//  7. Launch the background catalog refresher goroutine
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read configuration
//	       ├─────> logging.Open()      Structured log file
//	       ├─────> portal.NewClient()  Create HTTP client
//	       ├─────> state.Store{}       Shared state container
//	       ├─────> StartRefresher()    Launch background updates
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Refresh Behavior
//
// The refresher runs continuously in the background at a configurable
// interval (default: 30 seconds). On each tick it fetches the product list
// and favourites and updates the shared state.Store atomically. Before a
// session exists there is nothing to fetch, so ticks are skipped. While the
// portal is unreachable the interval backs off exponentially, capped at five
// minutes, so a dead server is not hammered.
//
// Submit-path calls (create, update, delete, favourite toggle) are NOT
// routed through the refresher; the UI issues them directly and the
// refresher simply picks up the result on its next pass.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable configuration and client
// initialization failure. Everything else is recoverable: refresh failures
// are logged and recorded in the store, and a broken log path degrades to a
// discard logger rather than keeping the portal out of reach.
package app
