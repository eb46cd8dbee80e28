package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/glyn/stream-inspector/internal/server"
	"github.com/glyn/stream-inspector/internal/services"
	"github.com/glyn/stream-inspector/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the OAuth2 authorization code flow against a local callback server and stores the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	yt := r.config.Credentials.YouTube
	oauthConfig, err := services.NewOAuthConfig(yt.Map())
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return err
	}

	handler := server.NewOAuthHandler(oauthConfig, state)
	router := server.NewCallbackRouter(server.LoggingMiddleware(r.logger))
	router.Handler(handler)

	timeout := cmd.Duration("timeout")
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	loginCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(r.config.Server.Host, fmt.Sprint(r.config.Server.Port))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(loginCtx, addr, router, func(a net.Addr) {
			r.logger.Info("waiting for OAuth callback", "addr", a.String(), "timeout", timeout)
		})
	}()

	authURL := services.AuthURL(oauthConfig, state)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
		r.writePlain("Open this URL in your browser to authorize:\n\n%s\n\n", authURL)
	}

	select {
	case result := <-handler.Result():
		cancel()
		<-serveErr
		if err := result.Error(); err != nil {
			return err
		}
		if err := shared.SaveToken(yt.TokenPath, result.Token); err != nil {
			return err
		}
		r.logger.Info("token saved", "path", yt.TokenPath, "expiry", result.Token.Expiry)
		return r.writePlain("✓ Authorization successful\n")
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: no OAuth callback within %s", shared.ErrTimeout, timeout)
	}
}

// AuthStatus reports whether a token is stored and when it expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Credentials.YouTube.TokenPath

	token, err := shared.LoadToken(path)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return r.writePlain("✗ Not authenticated (run 'stream-inspector auth login')\nToken: %s\n", path)
	} else if err != nil {
		return err
	}

	r.writePlain("Token: %s\n", path)
	r.writePlain("Refresh token: %v\n", token.RefreshToken != "")
	if token.Expiry.IsZero() {
		r.writePlain("Expiry: never\n")
	} else {
		r.writePlain("Expiry: %s\n", token.Expiry.Local().Format(time.RFC3339))
	}

	if token.Valid() {
		return r.writePlain("✓ Access token is valid\n")
	}
	if token.RefreshToken != "" {
		return r.writePlain("✓ Access token expired, it will be refreshed on next use\n")
	}
	return r.writePlain("✗ Access token expired and cannot be refreshed (run 'stream-inspector auth login')\n")
}
