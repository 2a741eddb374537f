package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type AuthUseCase struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	authenticators map[string]Authenticator
	jwtSecret      string
	tokenTTL       time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	authenticators map[string]Authenticator,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		authenticators: authenticators,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

// RegisterRequest represents a local signup
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=64"`
}

// LoginRequest represents a local login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProviderLoginRequest represents an OAuth provider login
type ProviderLoginRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a local account and opens a session.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		Provider:     domain.ProviderLocal,
		DisplayName:  req.DisplayName,
		IsOnline:     true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: true}, nil
}

// Login authenticates a local account.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err == domain.ErrUserNotFound {
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Provider != domain.ProviderLocal || user.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, domain.ErrUserBanned
	}

	if err := uc.userRepo.UpdateOnlineStatus(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("failed to update online status: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: false}, nil
}

// LoginWithProvider verifies an OAuth credential and logs the user in,
// creating the account on first sight of this provider identity.
func (uc *AuthUseCase) LoginWithProvider(ctx context.Context, req *ProviderLoginRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	authenticator, ok := uc.authenticators[req.Provider]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	identity, err := authenticator.Authenticate(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByProvider(ctx, identity.Provider, identity.ProviderID)
	isNewUser := false

	if err == domain.ErrUserNotFound {
		user = &domain.User{
			Email:       identity.Email,
			Provider:    identity.Provider,
			ProviderID:  &identity.ProviderID,
			DisplayName: identity.DisplayName,
			AvatarURL:   identity.AvatarURL,
			IsOnline:    true,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		isNewUser = true
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsBanned {
		return nil, domain.ErrUserBanned
	}

	if err := uc.userRepo.UpdateOnlineStatus(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("failed to update online status: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user, IsNewUser: isNewUser}, nil
}

// createSession creates a new session and returns JWT token
func (uc *AuthUseCase) createSession(ctx context.Context, userID int, deviceInfo, ipAddress string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:     userID,
		Token:      uc.hashToken(tokenString),
		DeviceInfo: &deviceInfo,
		IPAddress:  &ipAddress,
		ExpiresAt:  expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	// A valid JWT is not enough: the session must still exist, so bans and
	// logouts take effect immediately.
	hashedToken := uc.hashToken(tokenString)
	session, err := uc.sessionRepo.GetByToken(ctx, hashedToken)
	if err != nil {
		return 0, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return 0, domain.ErrSessionExpired
	}

	return int(userID), nil
}

// Logout deletes user session
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	hashedToken := uc.hashToken(tokenString)
	return uc.sessionRepo.DeleteByToken(ctx, hashedToken)
}

// hashToken creates SHA256 hash of token for storage
func (uc *AuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
