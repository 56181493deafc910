// Package identity talks to the external sign-in provider. Only the
// authorization-code flow is used: build the consent URL, then trade the
// returned code for the caller's profile.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"investmate/internal/services"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Provider resolves an authorization code into an identity.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (services.Identity, error)
}

// Compile-time check to ensure GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)

// GoogleProvider signs users in with Google using the profile and email scopes.
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider builds a provider for the given OAuth client.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

type googleUserInfo struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Exchange trades code for a token and fetches the signed-in profile.
// A custom HTTP client may be supplied through ctx with oauth2.HTTPClient.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (services.Identity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return services.Identity{}, fmt.Errorf("exchanging code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return services.Identity{}, fmt.Errorf("building userinfo request: %w", err)
	}

	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return services.Identity{}, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Identity{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return services.Identity{}, fmt.Errorf("decoding userinfo: %w", err)
	}
	if info.Sub == "" {
		return services.Identity{}, fmt.Errorf("userinfo missing subject")
	}

	return services.Identity{
		ProviderID:  info.Sub,
		DisplayName: info.Name,
		Email:       info.Email,
	}, nil
}
