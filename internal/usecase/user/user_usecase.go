package user

import (
	"context"
	"fmt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/infrastructure/media"
	"github.com/matchpoint-app/backend/internal/repository"
)

type UserUseCase struct {
	userRepo  repository.UserRepository
	sportRepo repository.SportRepository
	media     *media.Service
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	sportRepo repository.SportRepository,
	mediaService *media.Service,
) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		sportRepo: sportRepo,
		media:     mediaService,
	}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=64"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
}

// AvatarUploadResponse carries a presigned PUT URL for a new avatar
type AvatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

// GetProfile returns the user with their sports.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID int) (*domain.User, []*domain.Sport, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	sports, err := uc.sportRepo.GetUserSports(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user sports: %w", err)
	}
	return user, sports, nil
}

// UpdateProfile applies the non-nil fields of req to the user.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ListSports returns the sports catalog.
func (uc *UserUseCase) ListSports(ctx context.Context) ([]*domain.Sport, error) {
	return uc.sportRepo.List(ctx)
}

// AddSport adds a sport to the user's interests. Idempotent.
func (uc *UserUseCase) AddSport(ctx context.Context, userID, sportID int) error {
	if _, err := uc.sportRepo.GetByID(ctx, sportID); err != nil {
		return err
	}
	return uc.sportRepo.AddUserSport(ctx, userID, sportID)
}

// RemoveSport removes a sport from the user's interests.
func (uc *UserUseCase) RemoveSport(ctx context.Context, userID, sportID int) error {
	return uc.sportRepo.RemoveUserSport(ctx, userID, sportID)
}

// PresignAvatarUpload returns a presigned URL the client PUTs the avatar to.
func (uc *UserUseCase) PresignAvatarUpload(ctx context.Context, userID int, fileName, contentType string) (*AvatarUploadResponse, error) {
	url, key, err := uc.media.PresignUpload(ctx, fmt.Sprintf("avatars/%d", userID), fileName, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign avatar upload: %w", err)
	}
	return &AvatarUploadResponse{UploadURL: url, Key: key}, nil
}

// SetOnline marks the user online. Called when the websocket connects.
func (uc *UserUseCase) SetOnline(ctx context.Context, userID int) error {
	return uc.userRepo.UpdateOnlineStatus(ctx, userID, true)
}

// SetOffline marks the user offline. Called when the websocket drops.
func (uc *UserUseCase) SetOffline(ctx context.Context, userID int) error {
	return uc.userRepo.UpdateOnlineStatus(ctx, userID, false)
}
