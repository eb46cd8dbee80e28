// Package repositories implements SQLite persistence for the audit trail of playlist runs.
//
// Every sort, prune or print invocation is stored as a run, and each reorder, delete or keep decision taken during it
// as an action referencing that run. Deleting a run cascades to its actions.
//
// Key Implementations:
//   - [RunRepository] : Recorder for the playlist manager and the query side of the history command
//
// Schema is owned by the shared migrations (runs, actions) and must be applied before use.
package repositories
