package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Derived status labels
const (
	StatusCompleted = "Completed"
	StatusOverdue   = "Overdue"
	StatusPending   = "Pending"
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Completed   bool               `bson:"completed" json:"completed"`
	Priority    string             `bson:"priority" json:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Status derives the display status from the snapshot and the current time.
// It is computed at serialization time and never stored.
func (t *Task) Status(now time.Time) string {
	if t.Completed {
		return StatusCompleted
	}
	if t.DueDate != nil && t.DueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}

// DaysUntilDue returns ceil((dueDate - now) / 24h), or nil without a due date.
func (t *Task) DaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	days := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
	return &days
}

// TaskQuery narrows and orders a list query. A nil Completed and empty
// Priority mean "match all". Both stores interpret it identically.
type TaskQuery struct {
	Completed *bool
	Priority  string
	SortBy    string
	SortDesc  bool
}
