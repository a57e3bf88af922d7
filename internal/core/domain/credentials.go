package domain

import "time"

// Credentials holds the OAuth tokens for the Google account that owns
// the blog folder. Exactly one set exists per deployment; a refresh
// overwrites it in place.
type Credentials struct {
	// AccessToken is the bearer token for Drive API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
	// Scopes are the OAuth scopes the tokens were granted for.
	Scopes []string `json:"scopes,omitempty"`
}

// IsExpired returns true if the access token has expired.
func (c *Credentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// IsAuthenticated returns true if the credentials contain a token.
func (c *Credentials) IsAuthenticated() bool {
	return c != nil && c.AccessToken != ""
}

// HasRefreshToken returns true if a refresh token is available.
func (c *Credentials) HasRefreshToken() bool {
	return c != nil && c.RefreshToken != ""
}
