// Package tasks keeps a live-stream playlist in canonical order and prunes it, with real-time progress reporting.
//
// # Core Operations
//
// [PlaylistManager] exposes four operations over one playlist:
//
//  1. [PlaylistManager.Items] : Fetch the playlist
//     - Lists every entry, then looks up each video's live-streaming details one at a time
//     - Returns items in playlist order; with debug set the raw list is logged
//
//  2. [PlaylistManager.Sort] : Reorder into canonical order
//     - Streamed videos newest first, then scheduled videos latest first, then the rest
//     - Issues one reorder per item with position = index, or nothing if already sorted
//
//  3. [PlaylistManager.Prune] : Sort, re-fetch and delete
//     - Deletes blocked videos, streamed videos beyond the cap and unscheduled videos
//     - Deletes are issued in canonical order
//
//  4. [PlaylistManager.Print] : Write the fetched items in a [formatter.Format]
//
// Under dry-run every reorder and delete is replaced by a log entry; reads always execute.
// A failed remote call aborts the operation; nothing already applied is rolled back.
//
// # Progress Reporting
//
// The optional [ProgressUpdate] channel receives phase, step counters and the item or decision being handled.
// Updates use select with default to prevent blocking.
//
// # Audit Trail
//
// The optional [Recorder] (repositories.RunRepository) receives one run per operation and one action per
// reorder, delete or keep decision. Recording errors are logged and never abort the operation.
package tasks
