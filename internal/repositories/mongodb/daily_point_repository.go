package mongodb

import (
	"context"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure DailyPointRepository implements the interface
var _ repositories.DailyPointRepository = (*DailyPointRepository)(nil)

// DailyPointRepository handles MongoDB operations for DailyPoint
type DailyPointRepository struct {
	collection *mongo.Collection
}

// NewDailyPointRepository creates a new DailyPointRepository
func NewDailyPointRepository(db *mongo.Database) *DailyPointRepository {
	return &DailyPointRepository{
		collection: db.Collection("daily_points"),
	}
}

// Create inserts a new daily point record
func (r *DailyPointRepository) Create(ctx context.Context, dp *models.DailyPoint) error {
	dp.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, dp)
	return err
}

// FindByUserID finds the daily point record for a user (1:1)
func (r *DailyPointRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DailyPoint, error) {
	var dp models.DailyPoint
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&dp)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &dp, nil
}

// Update updates an existing daily point record
func (r *DailyPointRepository) Update(ctx context.Context, dp *models.DailyPoint) error {
	filter := bson.M{"_id": dp.ID}
	update := bson.M{"$set": dp}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
