// Package ui implements the Bubble Tea terminal interface for Shopkeep.
//
// # Overview
//
// The UI is a single Bubble Tea program with four views: the login screen,
// the product table, the favourites table, and the product editor. A root
// Model owns the view switch and the shared snapshot; each view keeps its
// widget state in a dedicated struct on the model.
//
//	┌─────────────────────────────────────────────┐
//	│ Model (root)                                │
//	│                                             │
//	│  ViewLogin      loginState   (textinputs)   │
//	│  ViewProducts ┐                             │
//	│  ViewFavourites┴ catalogState (table+search)│
//	│  ViewEditor     *editorState (form+images)  │
//	└─────────────────────────────────────────────┘
//
// # Data Flow
//
// Catalog data arrives through the shared state.Store: a periodic tickMsg
// re-reads the store snapshot that the background refresher keeps current,
// and mutating actions (save, delete, favourite) trigger an immediate
// refetch on completion. All portal calls run as tea.Cmd functions so the
// event loop never blocks on the network.
//
// # Editor Sessions
//
// The editor view wraps one editor.Staging and editor.Form pair per session.
// The session is created when the view opens and disposed when it closes, on
// logout, and on quit, so staged preview files never outlive their session.
// Core outcomes (admission results, validation failures) come back as
// structured values and are translated into toasts here; the editor package
// itself never renders anything.
//
// # Themes
//
// Colors come from a named Theme (Dracula by default). T cycles themes from
// the catalog views and persists the choice via the prefs package.
package ui
