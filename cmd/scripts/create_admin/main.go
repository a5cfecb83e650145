package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/warthug/points-backend/internal/config"
	mongorepo "github.com/warthug/points-backend/internal/repositories/mongodb"
	"github.com/warthug/points-backend/internal/services"
	"github.com/warthug/points-backend/pkg/mongodb"
)

// Creates an admin user from command line arguments: email and password.
func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 3 {
		log.Fatal("Usage: create_admin <email> <password>")
	}
	email := os.Args[1]
	password := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database()

	adminRepo := mongorepo.NewAdminUserRepository(db)
	authService := services.NewAuthService(adminRepo, cfg)

	admin, err := authService.CreateAdmin(context.Background(), email, password)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s", admin.Email)
}
