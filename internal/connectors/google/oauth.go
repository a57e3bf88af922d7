package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Scopes requested during authorisation: read the blog folder, read
// document exports, and keep the change cursor in the appDataFolder.
var Scopes = []string{
	drive.DriveReadonlyScope,
	"https://www.googleapis.com/auth/documents.readonly",
	drive.DriveAppdataScope,
}

// Ensure Authoriser implements the interface.
var _ driven.Authoriser = (*Authoriser)(nil)

// Authoriser implements the Google OAuth code flow for the blog's
// single account.
type Authoriser struct {
	config *oauth2.Config
}

// NewAuthoriser creates an authoriser for the configured OAuth app.
func NewAuthoriser(clientID, clientSecret, redirectURL string) *Authoriser {
	return &Authoriser{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       Scopes,
		},
	}
}

// AuthURL constructs the consent screen URL. Offline access plus a
// forced consent prompt, otherwise Google omits the refresh token on
// repeat authorisations.
func (a *Authoriser) AuthURL(state string) string {
	return a.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades a one-time authorisation code for credentials.
func (a *Authoriser) Exchange(ctx context.Context, code string) (*domain.Credentials, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorisation code: %w", WrapError(err))
	}
	creds := credentialsFromToken(token)
	return &creds, nil
}

// Config returns the underlying oauth2 config, used to build
// refreshing token sources.
func (a *Authoriser) Config() *oauth2.Config {
	return a.config
}

func credentialsFromToken(token *oauth2.Token) domain.Credentials {
	return domain.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Scopes:       Scopes,
	}
}

func tokenFromCredentials(creds *domain.Credentials) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    creds.TokenType,
		Expiry:       creds.Expiry,
	}
}
