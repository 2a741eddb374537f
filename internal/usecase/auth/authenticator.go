package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/matchpoint-app/backend/internal/config"
	"github.com/matchpoint-app/backend/internal/domain"
)

// Identity is what a provider asserts about a user after verifying a credential.
type Identity struct {
	Provider    string
	ProviderID  string
	Email       string
	DisplayName string
	AvatarURL   *string
}

// Authenticator verifies a provider-specific credential (an ID token for
// Google, an access token for Facebook) and returns the asserted identity.
type Authenticator interface {
	Provider() string
	Authenticate(ctx context.Context, credential string) (*Identity, error)
}

// BuildAuthenticators instantiates one Authenticator per provider enabled in
// config. The set is fixed at startup; an unknown provider name is an error.
func BuildAuthenticators(cfg *config.AuthConfig) (map[string]Authenticator, error) {
	authenticators := make(map[string]Authenticator)
	for _, name := range cfg.Providers {
		switch name {
		case domain.ProviderLocal:
			// Local is handled by AuthUseCase directly (bcrypt).
		case domain.ProviderGoogle:
			authenticators[name] = NewGoogleAuthenticator(cfg.GoogleClientID)
		case domain.ProviderFacebook:
			authenticators[name] = NewFacebookAuthenticator(cfg.FacebookAppID, cfg.FacebookSecret)
		default:
			return nil, fmt.Errorf("unknown auth provider: %s", name)
		}
	}
	return authenticators, nil
}

// GoogleAuthenticator validates Google ID tokens via the tokeninfo endpoint.
type GoogleAuthenticator struct {
	clientID string
}

func NewGoogleAuthenticator(clientID string) *GoogleAuthenticator {
	return &GoogleAuthenticator{clientID: clientID}
}

func (a *GoogleAuthenticator) Provider() string {
	return domain.ProviderGoogle
}

func (a *GoogleAuthenticator) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	svc, err := oauth2api.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	info, err := svc.Tokeninfo().IdToken(credential).Context(ctx).Do()
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Token must have been issued for this app.
	if info.Audience != a.clientID {
		return nil, domain.ErrInvalidCredentials
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, domain.ErrInvalidCredentials
	}

	return &Identity{
		Provider:    domain.ProviderGoogle,
		ProviderID:  info.UserId,
		Email:       info.Email,
		DisplayName: displayNameFromEmail(info.Email),
	}, nil
}

// FacebookAuthenticator validates Facebook access tokens against the Graph API.
type FacebookAuthenticator struct {
	appID      string
	appSecret  string
	httpClient *http.Client
	graphURL   string
}

func NewFacebookAuthenticator(appID, appSecret string) *FacebookAuthenticator {
	return &FacebookAuthenticator{
		appID:      appID,
		appSecret:  appSecret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		graphURL:   "https://graph.facebook.com",
	}
}

func (a *FacebookAuthenticator) Provider() string {
	return domain.ProviderFacebook
}

func (a *FacebookAuthenticator) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	// appsecret_proof ties the request to our app secret so a leaked token
	// cannot be replayed against our Graph API calls.
	mac := hmac.New(sha256.New, []byte(a.appSecret))
	mac.Write([]byte(credential))
	proof := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("fields", "id,name,email,picture")
	q.Set("access_token", credential)
	q.Set("appsecret_proof", proof)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.graphURL+"/me?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call graph api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidCredentials
	}

	var body struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode graph response: %w", err)
	}
	if body.ID == "" || body.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity := &Identity{
		Provider:    domain.ProviderFacebook,
		ProviderID:  body.ID,
		Email:       body.Email,
		DisplayName: body.Name,
	}
	if body.Picture.Data.URL != "" {
		avatar := body.Picture.Data.URL
		identity.AvatarURL = &avatar
	}
	return identity, nil
}

func displayNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
