// Package editor holds the state for one product create/edit session: the
// scalar form fields, the image staging area (persisted images, new local
// images pending upload, deletions, and the primary selection), the admission
// gate new files must pass, and the assembler that turns the session state
// into a transport payload.
//
// Images are addressed by logical index: positions [0, len(existing)) cover
// the persisted images, followed by the staged images. All index arithmetic
// goes through resolveLogicalIndex so the two collections never disagree
// about addressing.
//
// Operations return structured outcomes rather than touching the UI; the
// presentation layer translates them into toasts.
package editor
