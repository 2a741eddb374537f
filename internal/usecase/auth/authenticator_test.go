package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/config"
	"github.com/matchpoint-app/backend/internal/domain"
)

func TestBuildAuthenticators(t *testing.T) {
	t.Run("builds configured providers", func(t *testing.T) {
		authenticators, err := BuildAuthenticators(&config.AuthConfig{
			Providers:      []string{"local", "google", "facebook"},
			GoogleClientID: "client-id",
			FacebookAppID:  "app-id",
			FacebookSecret: "app-secret",
		})
		require.NoError(t, err)

		// Local has no Authenticator; it is handled by the usecase itself.
		assert.Len(t, authenticators, 2)
		assert.Contains(t, authenticators, domain.ProviderGoogle)
		assert.Contains(t, authenticators, domain.ProviderFacebook)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := BuildAuthenticators(&config.AuthConfig{Providers: []string{"github"}})
		assert.Error(t, err)
	})
}

func TestFacebookAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/me", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("appsecret_proof"))
			assert.Equal(t, "fb-token", r.URL.Query().Get("access_token"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"fb-42","name":"Fred","email":"fred@example.com","picture":{"data":{"url":"https://cdn/pic.jpg"}}}`))
		}))
		defer srv.Close()

		a := NewFacebookAuthenticator("app-id", "app-secret")
		a.graphURL = srv.URL

		identity, err := a.Authenticate(ctx, "fb-token")
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderFacebook, identity.Provider)
		assert.Equal(t, "fb-42", identity.ProviderID)
		assert.Equal(t, "fred@example.com", identity.Email)
		assert.Equal(t, "Fred", identity.DisplayName)
		require.NotNil(t, identity.AvatarURL)
		assert.Equal(t, "https://cdn/pic.jpg", *identity.AvatarURL)
	})

	t.Run("rejected token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
		}))
		defer srv.Close()

		a := NewFacebookAuthenticator("app-id", "app-secret")
		a.graphURL = srv.URL

		_, err := a.Authenticate(ctx, "bad-token")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("identity without email is refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"fb-43","name":"NoMail"}`))
		}))
		defer srv.Close()

		a := NewFacebookAuthenticator("app-id", "app-secret")
		a.graphURL = srv.URL

		_, err := a.Authenticate(ctx, "fb-token")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
