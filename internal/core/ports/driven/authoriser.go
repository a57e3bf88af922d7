package driven

import (
	"context"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// Authoriser encapsulates the provider's OAuth code flow: building the
// consent URL and exchanging the one-time authorisation code for
// tokens. Provider quirks (Google's access_type=offline, forced
// consent prompt) live behind this interface.
type Authoriser interface {
	// AuthURL constructs the consent screen URL.
	AuthURL(state string) string

	// Exchange trades a one-time authorisation code for credentials.
	Exchange(ctx context.Context, code string) (*domain.Credentials, error)
}
