package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/warthug/points-backend/internal/config"
	"github.com/warthug/points-backend/internal/handlers"
	"github.com/warthug/points-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers wired up in main.
type HandlerDependencies struct {
	UserHandler        *handlers.UserHandler
	DailyPointHandler  *handlers.DailyPointHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	StakeHandler       *handlers.StakeHandler
	PromoHandler       *handlers.PromoHandler
	TaskHandler        *handlers.TaskHandler
	AuthHandler        *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps *HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ResponseTimeMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Registration
		public.POST("/register", deps.UserHandler.Register)

		// User routes
		users := public.Group("/users")
		{
			users.GET("/:telegramUserId", deps.UserHandler.GetDetails)
			users.GET("/:telegramUserId/referrals", deps.UserHandler.GetReferrals)
			users.POST("/:telegramUserId/start-earning", deps.UserHandler.StartEarning)
			users.POST("/:telegramUserId/claim", deps.UserHandler.ClaimEarnings)
		}
		public.POST("/claim-hourly-points", deps.UserHandler.ClaimHourly)
		public.POST("/play-game", deps.UserHandler.PlayGame)

		// Daily claim routes
		daily := public.Group("/daily")
		{
			daily.POST("/claim", deps.DailyPointHandler.Claim)
			daily.GET("/status/:telegramUserId", deps.DailyPointHandler.GetStatus)
		}

		// Leaderboard routes
		leaderboard := public.Group("/leaderboard")
		{
			leaderboard.GET("", deps.LeaderboardHandler.GetLeaderboard)
			leaderboard.GET("/all", deps.LeaderboardHandler.GetAllRanked)
			leaderboard.GET("/rank/:username", deps.LeaderboardHandler.GetRank)
		}

		// Stake routes
		stakes := public.Group("/stakes")
		{
			stakes.POST("", deps.StakeHandler.Create)
			stakes.POST("/:id/claim", deps.StakeHandler.Claim)
			stakes.POST("/:id/unstake", deps.StakeHandler.Unstake)
			stakes.GET("/active/:telegramUserId", deps.StakeHandler.GetActive)
			stakes.GET("/claimable/:telegramUserId", deps.StakeHandler.GetClaimable)
		}

		// Promo code routes
		public.POST("/promo/apply", deps.PromoHandler.Apply)

		// Task routes
		tasks := public.Group("/tasks")
		{
			tasks.GET("", deps.TaskHandler.GetTasksForUser)
			tasks.GET("/completed/:telegramUserId", deps.TaskHandler.GetCompletedTasks)
			tasks.GET("/:id", deps.TaskHandler.GetTask)
			tasks.POST("/:id/complete", deps.TaskHandler.CompleteTask)
		}

		// Wallet routes
		public.PUT("/wallet-address", deps.UserHandler.UpdateWalletAddress)
		public.GET("/wallet-address", deps.UserHandler.GetWalletAddress)
		public.GET("/wallets", deps.UserHandler.GetAllWallets)

		// Stats
		public.GET("/stats", deps.UserHandler.GetTotalStats)
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/promo", deps.PromoHandler.Create)

		adminTasks := admin.Group("/tasks")
		{
			adminTasks.POST("", deps.TaskHandler.CreateTask)
			adminTasks.POST("/bulk", deps.TaskHandler.CreateTasks)
			adminTasks.PUT("/:id", deps.TaskHandler.UpdateTask)
			adminTasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
		}

		admin.PUT("/users/:telegramUserId/tier", deps.UserHandler.SetTier)
	}

	return router
}
