package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warthug/points-backend/api/routes"
	"github.com/warthug/points-backend/internal/config"
	"github.com/warthug/points-backend/internal/handlers"
	"github.com/warthug/points-backend/internal/repositories"
	mongorepo "github.com/warthug/points-backend/internal/repositories/mongodb"
	"github.com/warthug/points-backend/internal/services"
	"github.com/warthug/points-backend/pkg/mongodb"
	"github.com/warthug/points-backend/pkg/telegram"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database()

	// Initialize repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var dailyPointRepo repositories.DailyPointRepository = mongorepo.NewDailyPointRepository(db)
	var stakeRepo repositories.StakeRepository = mongorepo.NewStakeRepository(db)
	var promoRepo repositories.PromoCodeRepository = mongorepo.NewPromoCodeRepository(db)
	var taskRepo repositories.TaskRepository = mongorepo.NewTaskRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)
	var cascadeRepo repositories.ReferralCascadeRepository = mongorepo.NewReferralCascadeRepository(db)

	// Telegram notifier
	notifier := telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.MockAPI)

	// Initialize services
	referralService := services.NewReferralService(userRepo, dailyPointRepo, cascadeRepo)
	userService := services.NewUserService(userRepo, dailyPointRepo, referralService, notifier)
	dailyPointService := services.NewDailyPointService(userRepo, dailyPointRepo)
	leaderboardService := services.NewLeaderboardService(userRepo)
	stakeService := services.NewStakeService(userRepo, stakeRepo)
	promoService := services.NewPromoService(userRepo, promoRepo, taskRepo, cfg.Rewards.PromoRequiresTasks)
	taskService := services.NewTaskService(taskRepo, userRepo)
	authService := services.NewAuthService(adminRepo, cfg)

	// Initialize handlers
	handlerDeps := &routes.HandlerDependencies{
		UserHandler:        handlers.NewUserHandler(userService),
		DailyPointHandler:  handlers.NewDailyPointHandler(dailyPointService),
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
		StakeHandler:       handlers.NewStakeHandler(stakeService),
		PromoHandler:       handlers.NewPromoHandler(promoService),
		TaskHandler:        handlers.NewTaskHandler(taskService),
		AuthHandler:        handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
