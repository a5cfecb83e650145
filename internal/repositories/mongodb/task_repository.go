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

// Compile-time check to ensure TaskRepository implements the interface
var _ repositories.TaskRepository = (*TaskRepository)(nil)

// TaskRepository handles MongoDB operations for Task
type TaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection("tasks"),
	}
}

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, task)
	return err
}

// CreateMany inserts a batch of tasks
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		task.ID = primitive.NewObjectID()
		task.CreatedAt = time.Now()
		task.UpdatedAt = time.Now()
		docs = append(docs, task)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID finds a task by ID
func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &task, nil
}

// FindByIDs finds tasks by a set of IDs
func (r *TaskRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Task, error) {
	if len(ids) == 0 {
		return []*models.Task{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindActive retrieves all active tasks
func (r *TaskRepository) FindActive(ctx context.Context) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

// FindAll retrieves all tasks
func (r *TaskRepository) FindAll(ctx context.Context) ([]*models.Task, error) {
	return r.find(ctx, bson.M{})
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()
	filter := bson.M{"_id": task.ID}
	update := bson.M{"$set": task}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]*models.Task, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}
