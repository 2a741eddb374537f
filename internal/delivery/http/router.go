package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/matchpoint-app/backend/internal/delivery/http/handler"
	"github.com/matchpoint-app/backend/internal/delivery/http/middleware"
)

// future validates that a time.Time lies after now. Used for event and
// tournament start times.
func future(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && t.After(time.Now())
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("future", future)
	}
}

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	matchHandler        *handler.MatchHandler
	chatHandler         *handler.ChatHandler
	notificationHandler *handler.NotificationHandler
	eventHandler        *handler.EventHandler
	tournamentHandler   *handler.TournamentHandler
	shopHandler         *handler.ShopHandler
	orderHandler        *handler.OrderHandler
	adminHandler        *handler.AdminHandler
	wsHandler           *handler.WSHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	notificationHandler *handler.NotificationHandler,
	eventHandler *handler.EventHandler,
	tournamentHandler *handler.TournamentHandler,
	shopHandler *handler.ShopHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	wsHandler *handler.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		matchHandler:        matchHandler,
		chatHandler:         chatHandler,
		notificationHandler: notificationHandler,
		eventHandler:        eventHandler,
		tournamentHandler:   tournamentHandler,
		shopHandler:         shopHandler,
		orderHandler:        orderHandler,
		adminHandler:        adminHandler,
		wsHandler:           wsHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()
	router.Use(middleware.CORS())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Websocket gateway
	router.GET("/ws", r.authMiddleware.RequireAuth(), r.wsHandler.Connect)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/provider", r.authHandler.ProviderLogin)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.userHandler.GetMyProfile)
				profile.PUT("/me", r.userHandler.UpdateMyProfile)
				profile.POST("/me/avatar", r.userHandler.PresignAvatar)
				profile.POST("/me/sports/:sport_id", r.userHandler.AddSport)
				profile.DELETE("/me/sports/:sport_id", r.userHandler.RemoveSport)
				profile.GET("/:user_id", r.userHandler.GetProfileByUserID)
			}

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.GET("/candidates", r.matchHandler.FindMatches)
				matches.POST("", r.matchHandler.CreateMatch)
				matches.POST("/:match_id/accept", r.matchHandler.AcceptMatch)
				matches.POST("/:match_id/reject", r.matchHandler.RejectMatch)
			}

			// Chat routes
			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.ListChats)
				chats.GET("/:chat_id/messages", r.chatHandler.GetMessages)
				chats.POST("/:chat_id/messages", r.chatHandler.SendMessage)
				chats.GET("/:chat_id/members", r.chatHandler.GetMembers)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.GET("/unread", r.notificationHandler.CountUnread)
				notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
				notifications.POST("/:notification_id/read", r.notificationHandler.MarkRead)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.GET("", r.eventHandler.List)
				events.POST("", r.eventHandler.Create)
				events.GET("/:event_id", r.eventHandler.Get)
				events.DELETE("/:event_id", r.eventHandler.Delete)
				events.POST("/:event_id/join", r.eventHandler.Join)
				events.POST("/:event_id/leave", r.eventHandler.Leave)
				events.GET("/:event_id/participants", r.eventHandler.Participants)
			}

			// Tournament and team routes
			tournaments := protected.Group("/tournaments")
			{
				tournaments.GET("", r.tournamentHandler.List)
				tournaments.GET("/:tournament_id", r.tournamentHandler.Get)
				tournaments.GET("/:tournament_id/teams", r.tournamentHandler.RegisteredTeams)
				tournaments.POST("/:tournament_id/teams", r.tournamentHandler.RegisterTeam)
			}
			teams := protected.Group("/teams")
			{
				teams.POST("", r.tournamentHandler.CreateTeam)
				teams.GET("/:team_id/members", r.tournamentHandler.TeamMembers)
				teams.POST("/:team_id/members", r.tournamentHandler.AddTeamMember)
			}

			// Marketplace routes
			products := protected.Group("/products")
			{
				products.GET("", r.shopHandler.ListProducts)
				products.POST("", r.shopHandler.CreateProduct)
				products.POST("/image", r.shopHandler.PresignImage)
				products.GET("/:product_id", r.shopHandler.GetProduct)
				products.PUT("/:product_id", r.shopHandler.UpdateProduct)
				products.DELETE("/:product_id", r.shopHandler.DeleteProduct)
				products.GET("/:product_id/reviews", r.shopHandler.ListReviews)
				products.POST("/:product_id/reviews", r.shopHandler.CreateReview)
			}
			cart := protected.Group("/cart")
			{
				cart.GET("", r.shopHandler.GetCart)
				cart.POST("", r.shopHandler.AddToCart)
				cart.DELETE("/:product_id", r.shopHandler.RemoveFromCart)
			}
			favorites := protected.Group("/favorites")
			{
				favorites.GET("", r.shopHandler.ListFavorites)
				favorites.POST("/:product_id", r.shopHandler.AddFavorite)
				favorites.DELETE("/:product_id", r.shopHandler.RemoveFavorite)
			}

			// Order routes
			orders := protected.Group("/orders")
			{
				orders.GET("", r.orderHandler.List)
				orders.POST("/checkout", r.orderHandler.Checkout)
				orders.GET("/:order_id", r.orderHandler.Get)
			}

			// Reports (any authenticated user may file one)
			protected.POST("/reports", r.adminHandler.CreateReport)

			// Admin routes
			adminGroup := protected.Group("/admin")
			adminGroup.Use(r.authMiddleware.RequireAdmin())
			{
				adminGroup.GET("/stats", r.adminHandler.Stats)
				adminGroup.GET("/users", r.adminHandler.ListUsers)
				adminGroup.POST("/users/:user_id/ban", r.adminHandler.BanUser)
				adminGroup.POST("/users/:user_id/unban", r.adminHandler.UnbanUser)
				adminGroup.DELETE("/users/:user_id", r.adminHandler.DeleteUser)
				adminGroup.GET("/reports", r.adminHandler.ListReports)
				adminGroup.POST("/reports/:report_id/resolve", r.adminHandler.ResolveReport)
				adminGroup.POST("/tournaments", r.tournamentHandler.Create)
			}
		}

		// Sports catalog (public)
		v1.GET("/sports", r.userHandler.ListSports)
	}

	return router
}
