package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/glyn/stream-inspector/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"

	// ScopeYouTube grants full read and write access to the account's playlists.
	ScopeYouTube = "https://www.googleapis.com/auth/youtube"
)

// NewOAuthConfig builds the [oauth2.Config] for the installed-app flow.
func NewOAuthConfig(credentials map[string]string) (*oauth2.Config, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := credentials["redirect_uri"]
	if redirectURI == "" {
		redirectURI = "http://127.0.0.1:3000/callback"
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{ScopeYouTube},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}, nil
}

// AuthURL returns the consent URL. Offline access is requested so a refresh token is issued.
func AuthURL(config *oauth2.Config, state string) string {
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// TokenClient returns an [http.Client] that authorizes requests with token, refreshing it as needed.
//
// onRefresh is called with every newly issued token so it can be persisted; it must not block.
func TokenClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token)) *http.Client {
	src := config.TokenSource(ctx, token)
	if onRefresh != nil {
		src = &notifyingTokenSource{src: src, last: token.AccessToken, notify: onRefresh}
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, src))
}

type notifyingTokenSource struct {
	mu     sync.Mutex
	src    oauth2.TokenSource
	last   string
	notify func(*oauth2.Token)
}

func (s *notifyingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		s.notify(tok)
	}
	return tok, nil
}
