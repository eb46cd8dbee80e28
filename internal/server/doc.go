// Package server runs the short-lived local HTTP server that completes the Google OAuth2 login.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [CallbackRouter] registers method
// patterns on an [http.ServeMux] and wraps the whole mux in middleware, so [LoggingMiddleware] also reports the
// 404s and 405s a browser provokes (favicon requests and the like).
//
// # OAuth Callback Handler
//
// [OAuthHandler] validates the state parameter (CSRF protection), exchanges the authorization code for a token and
// sends the result through a channel. It only processes one callback.
//
// # Usage
//
// auth login starts [Serve] on the configured server host and port, opens the consent page in the
// browser, waits for the callback and cancels the server context once a result arrives.
package server
