package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/pkg/mongodb"
)

// Imports tasks from a CSV file (title,description,link,points) into MongoDB.
func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get MongoDB connection string from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	// Get database name from environment
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "warthug"
	}

	// Get CSV file path from command line arguments
	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	// Connect to MongoDB
	client, err := mongodb.NewClient(mongoURI, dbName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database()

	if err := importTasks(db, csvFilePath); err != nil {
		log.Fatalf("Failed to import tasks: %v", err)
	}

	log.Println("Tasks imported successfully")
}

// importTasks reads the CSV file and inserts each row as an active task.
func importTasks(db *mongo.Database, csvFilePath string) error {
	// Open CSV file
	file, err := os.Open(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Parse CSV file
	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %v", err)
	}

	// Check if CSV file has header
	if len(records) < 2 {
		return fmt.Errorf("CSV file is empty or has only header")
	}

	tasksCollection := db.Collection("tasks")

	imported := 0
	for i, record := range records {
		// Skip header
		if i == 0 {
			continue
		}

		if len(record) < 4 {
			log.Printf("Warning: Record %d has less than 4 fields, skipping", i)
			continue
		}

		title := record[0]
		description := record[1]
		link := record[2]
		points, err := strconv.Atoi(record[3])
		if err != nil || points <= 0 {
			log.Printf("Warning: Record %d has invalid points, skipping", i)
			continue
		}

		now := time.Now()
		task := models.Task{
			Title:       title,
			Description: description,
			Link:        link,
			Points:      points,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err = tasksCollection.InsertOne(ctx, task)
		cancel()
		if err != nil {
			log.Printf("Warning: Failed to insert record %d: %v", i, err)
			continue
		}
		imported++
	}

	log.Printf("Imported %d tasks", imported)
	return nil
}
