package dto

import (
	"time"

	"taskmanager-api/domain/models"
)

// TaskToResponse serializes a task snapshot, computing the derived
// status and daysUntilDue fields against now.
func TaskToResponse(task *models.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:           task.ID.Hex(),
		Title:        task.Title,
		Description:  task.Description,
		Completed:    task.Completed,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		Status:       task.Status(now),
		DaysUntilDue: task.DaysUntilDue(now),
	}
}

func TasksToResponses(tasks []*models.Task, now time.Time) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = TaskToResponse(task, now)
	}
	return responses
}
