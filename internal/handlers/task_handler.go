package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/services"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CompleteTask handles POST /tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is required"})
		return
	}

	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	user, err := h.taskService.CompleteTask(c.Request.Context(), request.Username, taskID, time.Now())
	if err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Task completed successfully",
		"newBalance": user.Balance,
	})
}

// GetTasksForUser handles GET /tasks?username=
func (h *TaskHandler) GetTasksForUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		tasks, err := h.taskService.GetActiveTasks(c.Request.Context())
		if err != nil {
			handleError(c, err, "No tasks found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
		return
	}

	tasks, err := h.taskService.GetTasksForUser(c.Request.Context(), username)
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetCompletedTasks handles GET /tasks/completed/:telegramUserId
func (h *TaskHandler) GetCompletedTasks(c *gin.Context) {
	tasks, err := h.taskService.GetCompletedTasks(c.Request.Context(), c.Param("telegramUserId"))
	if err != nil {
		handleError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetTask handles GET /tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /admin/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var request struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Link        string `json:"link"`
		Points      int    `json:"points" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and points are required"})
		return
	}

	task := &models.Task{
		Title:       request.Title,
		Description: request.Description,
		Link:        request.Link,
		Points:      request.Points,
		IsActive:    true,
	}
	if err := h.taskService.CreateTask(c.Request.Context(), task); err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

// CreateTasks handles POST /admin/tasks/bulk
func (h *TaskHandler) CreateTasks(c *gin.Context) {
	var request struct {
		Tasks []*models.Task `json:"tasks" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "At least one task is required"})
		return
	}

	for _, task := range request.Tasks {
		task.IsActive = true
	}
	if err := h.taskService.CreateTasks(c.Request.Context(), request.Tasks); err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tasks created successfully", "count": len(request.Tasks)})
}

// UpdateTask handles PUT /admin/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		handleError(c, err, "Task not found")
		return
	}

	var request struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Link        *string `json:"link"`
		Points      *int    `json:"points"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}
	if request.Link != nil {
		task.Link = *request.Link
	}
	if request.Points != nil {
		task.Points = *request.Points
	}
	if request.IsActive != nil {
		task.IsActive = *request.IsActive
	}

	if err := h.taskService.UpdateTask(c.Request.Context(), task); err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": task})
}

// DeleteTask handles DELETE /admin/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		handleError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
