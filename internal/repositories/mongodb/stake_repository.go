package mongodb

import (
	"context"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure StakeRepository implements the interface
var _ repositories.StakeRepository = (*StakeRepository)(nil)

// StakeRepository handles MongoDB operations for Stake
type StakeRepository struct {
	collection *mongo.Collection
}

// NewStakeRepository creates a new StakeRepository
func NewStakeRepository(db *mongo.Database) *StakeRepository {
	return &StakeRepository{
		collection: db.Collection("stakes"),
	}
}

// Create inserts a new stake
func (r *StakeRepository) Create(ctx context.Context, stake *models.Stake) error {
	stake.ID = primitive.NewObjectID()
	stake.CreatedAt = time.Now()
	stake.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, stake)
	return err
}

// FindByID finds a stake by ID
func (r *StakeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Stake, error) {
	var stake models.Stake
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stake)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &stake, nil
}

// FindActiveByUserID finds a user's active stakes
func (r *StakeRepository) FindActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Stake, error) {
	return r.find(ctx, bson.M{"user": userID, "status": models.StakeActive})
}

// FindClaimableByUserID finds a user's active stakes whose period has ended
func (r *StakeRepository) FindClaimableByUserID(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]*models.Stake, error) {
	return r.find(ctx, bson.M{
		"user":    userID,
		"status":  models.StakeActive,
		"endDate": bson.M{"$lte": now},
	})
}

// Update updates an existing stake
func (r *StakeRepository) Update(ctx context.Context, stake *models.Stake) error {
	stake.UpdatedAt = time.Now()
	filter := bson.M{"_id": stake.ID}
	update := bson.M{"$set": stake}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *StakeRepository) find(ctx context.Context, filter bson.M) ([]*models.Stake, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []*models.Stake
	if err = cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}
	if stakes == nil {
		stakes = []*models.Stake{}
	}
	return stakes, nil
}
