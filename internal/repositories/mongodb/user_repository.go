package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByIDs finds users by a set of IDs
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// FindByTelegramID finds a user by their Telegram user ID
func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramUserID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"telegramUserId": telegramUserID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username (which doubles as the referral code)
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByWalletAddress finds a user by wallet address
func (r *UserRepository) FindByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"walletAddress": walletAddress}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll retrieves all users (consider pagination for production)
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": user}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// IncrementEarnings atomically increments balance and totalEarnings
func (r *UserRepository) IncrementEarnings(ctx context.Context, id primitive.ObjectID, amount int) error {
	if amount <= 0 {
		return errors.New("amount to add must be positive")
	}
	filter := bson.M{"_id": id}
	update := bson.M{"$inc": bson.M{"balance": amount, "totalEarnings": amount}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// TotalStats aggregates the stats snapshot in a single pipeline: total users,
// total lifetime points, users who claimed within the daily window and users
// active within the hourly window.
func (r *UserRepository) TotalStats(ctx context.Context, dailyCutoff, onlineCutoff time.Time) (*models.TotalStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalUsers": bson.M{"$sum": 1},
			"totalMined": bson.M{"$sum": "$totalEarnings"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agg []struct {
		TotalUsers int64 `bson:"totalUsers"`
		TotalMined int64 `bson:"totalMined"`
	}
	if err = cursor.All(ctx, &agg); err != nil {
		return nil, err
	}

	stats := &models.TotalStats{}
	if len(agg) > 0 {
		stats.TotalUsers = agg[0].TotalUsers
		stats.TotalMined = agg[0].TotalMined
	}

	daily, err := r.collection.CountDocuments(ctx, bson.M{"lastClaimTime": bson.M{"$gte": dailyCutoff}})
	if err != nil {
		return nil, err
	}
	stats.DailyUsers = daily

	online, err := r.collection.CountDocuments(ctx, bson.M{"lastActive": bson.M{"$gte": onlineCutoff}})
	if err != nil {
		return nil, err
	}
	stats.OnlineUsers = online

	return stats, nil
}

// FindWallets lists telegramUserId, username and walletAddress for all users
func (r *UserRepository) FindWallets(ctx context.Context) ([]*models.WalletEntry, error) {
	opts := options.Find().SetProjection(bson.M{
		"telegramUserId": 1,
		"username":       1,
		"walletAddress":  1,
	})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wallets []*models.WalletEntry
	if err = cursor.All(ctx, &wallets); err != nil {
		return nil, err
	}
	if wallets == nil {
		wallets = []*models.WalletEntry{}
	}
	return wallets, nil
}
