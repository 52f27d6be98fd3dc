package serviceimpl

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"taskmanager-api/domain/dto"
	"taskmanager-api/domain/models"
	"taskmanager-api/domain/repositories"
	"taskmanager-api/domain/services"
	"taskmanager-api/pkg/errs"
	"taskmanager-api/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
}

func NewTaskService(taskRepo repositories.TaskRepository) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, query models.TaskQuery) ([]*models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, errs.NotFound("Task", id.Hex())
		}
		logger.ErrorContext(ctx, "Failed to get task", "task_id", id.Hex(), "error", err)
		return nil, err
	}
	return task, nil
}

// CreateTask persists a validated, normalized candidate with a
// server-assigned id and timestamps. Defaults: empty description,
// medium priority, not completed.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	now := time.Now().UTC()

	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if req.DueDate != nil {
		dueDate, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			// validation runs before this; an unparseable date here is a bug
			return nil, errs.Internal(err)
		}
		task.DueDate = &dueDate
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID.Hex(), "title", task.Title)
	return task, nil
}

// UpdateTask merges only the fields present in the request into the stored
// record and bumps updatedAt. Absent fields are left untouched.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id primitive.ObjectID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			logger.WarnContext(ctx, "Task not found for update", "task_id", id.Hex())
			return nil, errs.NotFound("Task", id.Hex())
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			dueDate, err := dto.ParseDate(*req.DueDate)
			if err != nil {
				return nil, errs.Internal(err)
			}
			task.DueDate = &dueDate
		}
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, errs.NotFound("Task", id.Hex())
		}
		logger.ErrorContext(ctx, "Failed to update task", "task_id", id.Hex(), "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", id.Hex())
	return task, nil
}

// DeleteTask removes a task permanently. Deleting an already-deleted id
// reports NotFound, never a second success.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			logger.WarnContext(ctx, "Task not found for deletion", "task_id", id.Hex())
			return errs.NotFound("Task", id.Hex())
		}
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", id.Hex(), "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", id.Hex())
	return nil
}
