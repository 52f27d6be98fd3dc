package handlers

import (
	"context"

	"taskmanager-api/domain/services"
)

// Services contains everything the handlers need.
type Services struct {
	TaskService  services.TaskService
	DatabasePing func(context.Context) error
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	TaskHandler   *TaskHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TaskHandler:   NewTaskHandler(services.TaskService),
		HealthHandler: NewHealthHandler(services.DatabasePing),
	}
}
