// Package services defines the [Source] interface for the remote playlist data source and implements it for the YouTube Data API v3.
//
// # Source Interface
//
// The playlist manager depends only on four capabilities: list the entries of a playlist, look up a
// video's live-streaming details, move an entry, and delete an entry. All calls are blocking and are
// issued one at a time by the caller.
//
// # YouTube Implementation
//
// [YouTubeService] speaks JSON over HTTP to https://www.googleapis.com/youtube/v3:
//   - GET /playlistItems (parts snippet,id,contentDetails), paged 50 at a time via nextPageToken
//   - GET /videos (parts liveStreamingDetails,contentDetails)
//   - PUT /playlistItems?part=snippet to set a position
//   - DELETE /playlistItems?id=...
//
// Requests are paced with a [rate.Limiter] so long playlists stay under quota bursts.
// Authorization is delegated to the [http.Client], normally built by [TokenClient] from a stored
// [oauth2.Token] with the full youtube scope.
//
// # Error Handling
//
// Non-2xx responses become [APIError], which unwraps to a sentinel from the shared package:
//   - [shared.ErrTokenExpired] : 401, the token was revoked or could not be refreshed
//   - [shared.ErrForbidden] : 403, quota exhausted or playlist not owned
//   - [shared.ErrPlaylistNotFound] : 404 with reason playlistNotFound
//   - [shared.ErrServiceUnavailable] : 5xx
//   - [shared.ErrAPIRequest] : anything else
//
// Malformed timestamps yield [shared.ErrInvalidTimestamp] and records without identifiers yield
// [shared.ErrMissingField]. Nothing is retried here.
package services
