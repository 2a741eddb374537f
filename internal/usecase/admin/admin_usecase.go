package admin

import (
	"context"
	"fmt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

// Notifier persists a notification and pushes it to the user's personal room.
type Notifier interface {
	Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error
}

type AdminUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	matchRepo   repository.MatchRepository
	chatRepo    repository.ChatRepository
	orderRepo   repository.OrderRepository
	reportRepo  repository.ReportRepository
	notifier    Notifier
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	matchRepo repository.MatchRepository,
	chatRepo repository.ChatRepository,
	orderRepo repository.OrderRepository,
	reportRepo repository.ReportRepository,
	notifier Notifier,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		matchRepo:   matchRepo,
		chatRepo:    chatRepo,
		orderRepo:   orderRepo,
		reportRepo:  reportRepo,
		notifier:    notifier,
	}
}

// Stats is the admin dashboard summary
type Stats struct {
	Users       int `json:"users"`
	Matches     int `json:"matches"`
	Chats       int `json:"chats"`
	Orders      int `json:"orders"`
	OpenReports int `json:"open_reports"`
}

// CreateReportRequest represents a user report
type CreateReportRequest struct {
	TargetUserID int    `json:"target_user_id" binding:"required"`
	Reason       string `json:"reason" binding:"required,min=3,max=1000"`
}

// GetStats gathers the dashboard counters.
func (uc *AdminUseCase) GetStats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.Users, err = uc.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Matches, err = uc.matchRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	if stats.Chats, err = uc.chatRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count chats: %w", err)
	}
	if stats.Orders, err = uc.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if stats.OpenReports, err = uc.reportRepo.CountByStatus(ctx, domain.ReportOpen); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	return &stats, nil
}

// ListUsers pages through all users.
func (uc *AdminUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

// BanUser bans a user, kills their sessions and tells them why.
func (uc *AdminUseCase) BanUser(ctx context.Context, userID int, reason string) error {
	if err := uc.userRepo.SetBanned(ctx, userID, true); err != nil {
		return err
	}
	if err := uc.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	content := "Your account was banned"
	if reason != "" {
		content = fmt.Sprintf("Your account was banned: %s", reason)
	}
	if err := uc.notifier.Notify(ctx, userID, domain.NotificationModeration, content, nil); err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	return nil
}

// UnbanUser lifts a ban.
func (uc *AdminUseCase) UnbanUser(ctx context.Context, userID int) error {
	if err := uc.userRepo.SetBanned(ctx, userID, false); err != nil {
		return err
	}
	if err := uc.notifier.Notify(ctx, userID, domain.NotificationModeration, "Your account was unbanned", nil); err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	return nil
}

// DeleteUser removes a user and, via cascade, everything they own.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID int) error {
	return uc.userRepo.Delete(ctx, userID)
}

// CreateReport files a report against another user. Not admin-gated.
func (uc *AdminUseCase) CreateReport(ctx context.Context, reporterID int, req *CreateReportRequest) (*domain.Report, error) {
	if reporterID == req.TargetUserID {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.userRepo.GetByID(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterID:   reporterID,
		TargetUserID: req.TargetUserID,
		Reason:       req.Reason,
		Status:       domain.ReportOpen,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// ListReports pages through reports in a given status.
func (uc *AdminUseCase) ListReports(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	return uc.reportRepo.ListByStatus(ctx, status, limit, offset)
}

// ResolveReport closes a report as RESOLVED or DISMISSED.
func (uc *AdminUseCase) ResolveReport(ctx context.Context, reportID int, status domain.ReportStatus) error {
	if status != domain.ReportResolved && status != domain.ReportDismissed {
		return domain.ErrInvalidInput
	}
	if _, err := uc.reportRepo.GetByID(ctx, reportID); err != nil {
		return err
	}
	return uc.reportRepo.UpdateStatus(ctx, reportID, status)
}
