package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/matchpoint-app/backend/internal/config"
	"github.com/matchpoint-app/backend/internal/delivery/http"
	"github.com/matchpoint-app/backend/internal/delivery/http/handler"
	"github.com/matchpoint-app/backend/internal/delivery/http/middleware"
	"github.com/matchpoint-app/backend/internal/infrastructure/database"
	"github.com/matchpoint-app/backend/internal/infrastructure/media"
	"github.com/matchpoint-app/backend/internal/infrastructure/payments"
	"github.com/matchpoint-app/backend/internal/infrastructure/server"
	"github.com/matchpoint-app/backend/internal/realtime"
	"github.com/matchpoint-app/backend/internal/repository/postgres"
	"github.com/matchpoint-app/backend/internal/usecase/admin"
	"github.com/matchpoint-app/backend/internal/usecase/auth"
	"github.com/matchpoint-app/backend/internal/usecase/chat"
	"github.com/matchpoint-app/backend/internal/usecase/event"
	"github.com/matchpoint-app/backend/internal/usecase/match"
	"github.com/matchpoint-app/backend/internal/usecase/notification"
	"github.com/matchpoint-app/backend/internal/usecase/order"
	"github.com/matchpoint-app/backend/internal/usecase/shop"
	"github.com/matchpoint-app/backend/internal/usecase/tournament"
	"github.com/matchpoint-app/backend/internal/usecase/user"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Hub    *realtime.Hub
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Infrastructure services
	mediaService, err := media.NewService(ctx, &cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media service: %w", err)
	}
	paymentsClient := payments.NewClient(&cfg.Payments)

	// Realtime hub
	hub := realtime.NewHub(redisClient)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	sportRepo := postgres.NewSportRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	tournamentRepo := postgres.NewTournamentRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Initialize use cases
	authenticators, err := auth.BuildAuthenticators(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to build authenticators: %w", err)
	}

	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		authenticators,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
	)
	userUseCase := user.NewUserUseCase(userRepo, sportRepo, mediaService)
	notificationUseCase := notification.NewNotificationUseCase(notificationRepo, hub)
	matchUseCase := match.NewMatchUseCase(matchRepo, userRepo, notificationUseCase, hub)
	chatUseCase := chat.NewChatUseCase(chatRepo, userRepo, hub)
	eventUseCase := event.NewEventUseCase(eventRepo, userRepo, sportRepo, notificationUseCase)
	tournamentUseCase := tournament.NewTournamentUseCase(tournamentRepo, sportRepo, userRepo)
	shopUseCase := shop.NewShopUseCase(productRepo, userRepo, mediaService)
	orderUseCase := order.NewOrderUseCase(orderRepo, productRepo, paymentsClient, notificationUseCase)
	adminUseCase := admin.NewAdminUseCase(
		userRepo,
		sessionRepo,
		matchRepo,
		chatRepo,
		orderRepo,
		reportRepo,
		notificationUseCase,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase, userUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	eventHandler := handler.NewEventHandler(eventUseCase)
	tournamentHandler := handler.NewTournamentHandler(tournamentUseCase)
	shopHandler := handler.NewShopHandler(shopUseCase)
	orderHandler := handler.NewOrderHandler(orderUseCase)
	adminHandler := handler.NewAdminHandler(adminUseCase)
	wsHandler := handler.NewWSHandler(hub, chatUseCase, userUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase, userRepo)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		userHandler,
		matchHandler,
		chatHandler,
		notificationHandler,
		eventHandler,
		tournamentHandler,
		shopHandler,
		orderHandler,
		adminHandler,
		wsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Hub:    hub,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
