package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"taskmanager-api/domain/dto"
	"taskmanager-api/domain/models"
)

type TaskService interface {
	ListTasks(ctx context.Context, query models.TaskQuery) ([]*models.Task, error)
	GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id primitive.ObjectID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id primitive.ObjectID) error
}
