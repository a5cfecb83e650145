package services

import (
	"context"
	"time"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService handles task management and per-user task completion.
type TaskService struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CompleteTask marks a task completed for a user and credits its points.
// A task can be completed at most once per user.
func (s *TaskService) CompleteTask(ctx context.Context, username string, taskID primitive.ObjectID, now time.Time) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if user.HasCompletedTask(task.ID) {
		return nil, models.ErrTaskAlreadyCompleted
	}

	user.TasksCompleted = append(user.TasksCompleted, task.ID)
	user.AddEarnings(task.Points)
	user.LastActive = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetTasksForUser lists active tasks the user has not completed yet.
func (s *TaskService) GetTasksForUser(ctx context.Context, username string) ([]*models.Task, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	active, err := s.taskRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]*models.Task, 0, len(active))
	for _, task := range active {
		if !user.HasCompletedTask(task.ID) {
			pending = append(pending, task)
		}
	}
	return pending, nil
}

// GetCompletedTasks lists the tasks a user has completed.
func (s *TaskService) GetCompletedTasks(ctx context.Context, telegramUserID string) ([]*models.Task, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.FindByIDs(ctx, user.TasksCompleted)
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

// GetActiveTasks lists all active tasks.
func (s *TaskService) GetActiveTasks(ctx context.Context) ([]*models.Task, error) {
	return s.taskRepo.FindActive(ctx)
}

// CreateTask creates a new task.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) error {
	return s.taskRepo.Create(ctx, task)
}

// CreateTasks creates a batch of tasks.
func (s *TaskService) CreateTasks(ctx context.Context, tasks []*models.Task) error {
	return s.taskRepo.CreateMany(ctx, tasks)
}

// UpdateTask updates an existing task.
func (s *TaskService) UpdateTask(ctx context.Context, task *models.Task) error {
	return s.taskRepo.Update(ctx, task)
}

// DeleteTask deletes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	return s.taskRepo.Delete(ctx, id)
}
