package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a one-off action rewarded with a flat point amount. Completion is
// tracked per user in User.TasksCompleted.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	Points      int                `bson:"points" json:"points"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
