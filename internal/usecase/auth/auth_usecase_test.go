package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUserRepo struct {
	repository.UserRepository

	byID    map[int]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[int]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateOnlineStatus(ctx context.Context, id int, isOnline bool) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsOnline = isOnline
	return nil
}

type fakeSessionRepo struct {
	repository.SessionRepository

	byToken map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	f.byToken[s.Token] = s
	return nil
}

func (f *fakeSessionRepo) GetByToken(ctx context.Context, hashedToken string) (*domain.Session, error) {
	s, ok := f.byToken[hashedToken]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) DeleteByToken(ctx context.Context, hashedToken string) error {
	delete(f.byToken, hashedToken)
	return nil
}

type staticAuthenticator struct {
	identity *Identity
	err      error
}

func (a *staticAuthenticator) Provider() string { return a.identity.Provider }

func (a *staticAuthenticator) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.identity, nil
}

func newTestUseCase(authenticators map[string]Authenticator) (*AuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	uc := NewAuthUseCase(userRepo, sessionRepo, authenticators, testSecret, time.Hour)
	return uc, userRepo, sessionRepo
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login round trip", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		reg, err := uc.Register(ctx, &RegisterRequest{
			Email:       "alice@example.com",
			Password:    "correct horse",
			DisplayName: "Alice",
		}, "test-agent", "127.0.0.1")
		require.NoError(t, err)
		assert.True(t, reg.IsNewUser)
		assert.NotEmpty(t, reg.Token)
		assert.Equal(t, domain.ProviderLocal, reg.User.Provider)

		login, err := uc.Login(ctx, &LoginRequest{
			Email:    "alice@example.com",
			Password: "correct horse",
		}, "test-agent", "127.0.0.1")
		require.NoError(t, err)
		assert.False(t, login.IsNewUser)
		assert.Equal(t, reg.User.ID, login.User.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		req := &RegisterRequest{Email: "bob@example.com", Password: "password1", DisplayName: "Bob"}
		_, err := uc.Register(ctx, req, "", "")
		require.NoError(t, err)

		_, err = uc.Register(ctx, req, "", "")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		_, err := uc.Register(ctx, &RegisterRequest{
			Email: "carol@example.com", Password: "password1", DisplayName: "Carol",
		}, "", "")
		require.NoError(t, err)

		_, err = uc.Login(ctx, &LoginRequest{Email: "carol@example.com", Password: "nope"}, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		_, err := uc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "irrelevant"}, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("banned user cannot log in", func(t *testing.T) {
		uc, userRepo, _ := newTestUseCase(nil)

		reg, err := uc.Register(ctx, &RegisterRequest{
			Email: "dave@example.com", Password: "password1", DisplayName: "Dave",
		}, "", "")
		require.NoError(t, err)
		userRepo.byID[reg.User.ID].IsBanned = true

		_, err = uc.Login(ctx, &LoginRequest{Email: "dave@example.com", Password: "password1"}, "", "")
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})
}

func TestLoginWithProvider(t *testing.T) {
	ctx := context.Background()
	identity := &Identity{
		Provider:    domain.ProviderGoogle,
		ProviderID:  "g-123",
		Email:       "eve@example.com",
		DisplayName: "eve",
	}

	t.Run("first login creates the account", func(t *testing.T) {
		uc, _, _ := newTestUseCase(map[string]Authenticator{
			domain.ProviderGoogle: &staticAuthenticator{identity: identity},
		})

		resp, err := uc.LoginWithProvider(ctx, &ProviderLoginRequest{
			Provider: domain.ProviderGoogle, Credential: "id-token",
		}, "", "")
		require.NoError(t, err)
		assert.True(t, resp.IsNewUser)
		assert.Nil(t, resp.User.PasswordHash)

		// Same identity logs into the same account.
		again, err := uc.LoginWithProvider(ctx, &ProviderLoginRequest{
			Provider: domain.ProviderGoogle, Credential: "id-token",
		}, "", "")
		require.NoError(t, err)
		assert.False(t, again.IsNewUser)
		assert.Equal(t, resp.User.ID, again.User.ID)
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		_, err := uc.LoginWithProvider(ctx, &ProviderLoginRequest{
			Provider: domain.ProviderFacebook, Credential: "token",
		}, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad credential", func(t *testing.T) {
		uc, _, _ := newTestUseCase(map[string]Authenticator{
			domain.ProviderGoogle: &staticAuthenticator{
				identity: identity,
				err:      domain.ErrInvalidCredentials,
			},
		})

		_, err := uc.LoginWithProvider(ctx, &ProviderLoginRequest{
			Provider: domain.ProviderGoogle, Credential: "garbage",
		}, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resolves the user", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		reg, err := uc.Register(ctx, &RegisterRequest{
			Email: "frank@example.com", Password: "password1", DisplayName: "Frank",
		}, "", "")
		require.NoError(t, err)

		userID, err := uc.VerifyToken(ctx, reg.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, userID)
	})

	t.Run("logout invalidates the token immediately", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		reg, err := uc.Register(ctx, &RegisterRequest{
			Email: "grace@example.com", Password: "password1", DisplayName: "Grace",
		}, "", "")
		require.NoError(t, err)

		require.NoError(t, uc.Logout(ctx, reg.Token))

		_, err = uc.VerifyToken(ctx, reg.Token)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("garbage token", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)

		_, err := uc.VerifyToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		uc, _, _ := newTestUseCase(nil)
		other := NewAuthUseCase(newFakeUserRepo(), newFakeSessionRepo(), nil,
			"another-secret-another-secret-123", time.Hour)

		reg, err := other.Register(ctx, &RegisterRequest{
			Email: "mallory@example.com", Password: "password1", DisplayName: "Mallory",
		}, "", "")
		require.NoError(t, err)

		_, err = uc.VerifyToken(ctx, reg.Token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
