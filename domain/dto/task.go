package dto

import (
	"strings"
	"time"

	"taskmanager-api/domain/models"
)

// Date layouts accepted on the wire. Mongoose accepted both a bare date
// and a full ISO 8601 timestamp, so both stay valid here.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a wire-format due date.
func ParseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitempty,dateonly,futuredate"`
}

// Normalize trims string fields before validation, matching the reference
// behavior where rules apply to the trimmed value. A present-but-empty
// dueDate is treated as absent.
func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) == "" {
		r.DueDate = nil
	}
}

// UpdateTaskRequest is a partial patch: one optional field per task
// attribute. A nil field is left untouched; a present field must satisfy
// the same rule as at creation.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitempty,dateonly,futuredate"`
}

func (r *UpdateTaskRequest) Normalize() {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
	if r.DueDate != nil {
		trimmed := strings.TrimSpace(*r.DueDate)
		r.DueDate = &trimmed
	}
}

// TaskFilterRequest carries the raw list query parameters. Completed is a
// pointer so an absent key and a present-but-empty key stay distinct.
type TaskFilterRequest struct {
	Completed *string
	Priority  string
	SortBy    string
	SortOrder string
}

// Resolve turns the raw query into a filter + sort specification.
//
// A present completed key always applies a strict equality filter against
// value == "true", so ?completed=yes filters for incomplete tasks instead
// of being ignored. This mirrors the reference coercion and is kept for
// wire compatibility. Unknown sortBy values pass through opaquely; any
// sortOrder other than the literal "asc" sorts descending.
func (r TaskFilterRequest) Resolve() models.TaskQuery {
	query := models.TaskQuery{
		SortBy:   "createdAt",
		SortDesc: true,
	}

	if r.Completed != nil {
		completed := *r.Completed == "true"
		query.Completed = &completed
	}
	if r.Priority != "" {
		query.Priority = r.Priority
	}
	if r.SortBy != "" {
		query.SortBy = r.SortBy
	}
	if r.SortOrder == "asc" {
		query.SortDesc = false
	}

	return query
}

type TaskResponse struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Completed    bool       `json:"completed"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Status       string     `json:"status"`
	DaysUntilDue *int       `json:"daysUntilDue,omitempty"`
}
