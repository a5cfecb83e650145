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

// Compile-time check to ensure PromoCodeRepository implements the interface
var _ repositories.PromoCodeRepository = (*PromoCodeRepository)(nil)

// PromoCodeRepository handles MongoDB operations for PromoCode
type PromoCodeRepository struct {
	collection *mongo.Collection
}

// NewPromoCodeRepository creates a new PromoCodeRepository
func NewPromoCodeRepository(db *mongo.Database) *PromoCodeRepository {
	return &PromoCodeRepository{
		collection: db.Collection("promo_codes"),
	}
}

// Create inserts a new promo code
func (r *PromoCodeRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	promo.ID = primitive.NewObjectID()
	promo.CreatedAt = time.Now()
	promo.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, promo)
	return err
}

// FindByCode finds a promo code by its unique code
func (r *PromoCodeRepository) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promo)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &promo, nil
}
