// Package ui implements a read-only terminal browser of a playlist using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [LoadingView] : Progress while the playlist and video details are fetched
//  2. [ItemListView] : Items in canonical order, each with its tier and prune decision
//  3. [DetailView] : Identifiers, timestamps and decision of the selected item
//
// Nothing is reordered or deleted from here; decisions show what prune would do with the configured cap.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the PlaylistManager while items are fetched.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, x, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
