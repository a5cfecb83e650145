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

// Compile-time check to ensure ReferralCascadeRepository implements the interface
var _ repositories.ReferralCascadeRepository = (*ReferralCascadeRepository)(nil)

// ReferralCascadeRepository handles MongoDB operations for ReferralCascade
type ReferralCascadeRepository struct {
	collection *mongo.Collection
}

// NewReferralCascadeRepository creates a new ReferralCascadeRepository
func NewReferralCascadeRepository(db *mongo.Database) *ReferralCascadeRepository {
	return &ReferralCascadeRepository{
		collection: db.Collection("referral_cascades"),
	}
}

// Create inserts a new cascade record
func (r *ReferralCascadeRepository) Create(ctx context.Context, cascade *models.ReferralCascade) error {
	cascade.ID = primitive.NewObjectID()
	cascade.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, cascade)
	return err
}

// FindByNewUserID finds the cascade record created for a registration
func (r *ReferralCascadeRepository) FindByNewUserID(ctx context.Context, newUserID primitive.ObjectID) (*models.ReferralCascade, error) {
	var cascade models.ReferralCascade
	err := r.collection.FindOne(ctx, bson.M{"newUser": newUserID}).Decode(&cascade)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &cascade, nil
}

// Update updates an existing cascade record (watermark advance)
func (r *ReferralCascadeRepository) Update(ctx context.Context, cascade *models.ReferralCascade) error {
	filter := bson.M{"_id": cascade.ID}
	update := bson.M{"$set": cascade}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
