package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"taskmanager-api/domain/dto"
	"taskmanager-api/domain/services"
	"taskmanager-api/pkg/errs"
	"taskmanager-api/pkg/logger"
	"taskmanager-api/pkg/utils"
	"taskmanager-api/pkg/validation"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filter := dto.TaskFilterRequest{
		Priority:  c.Query("priority"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	// a present-but-empty completed key still filters, an absent one does not
	if c.Context().QueryArgs().Has("completed") {
		completed := c.Query("completed")
		filter.Completed = &completed
	}

	tasks, err := h.taskService.ListTasks(ctx, filter.Resolve())
	if err != nil {
		return err
	}

	responses := dto.TasksToResponses(tasks, time.Now().UTC())
	return utils.ListSuccessResponse(c, len(responses), responses)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	idStr := c.Params("id")
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", idStr)
		return errs.InvalidID(idStr)
	}

	task, err := h.taskService.GetTask(ctx, id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task, time.Now().UTC()))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Normalize()
	if violations := validation.ValidateStruct(&req); len(violations) > 0 {
		logger.WarnContext(ctx, "Task validation failed", "violations", len(violations))
		return errs.Validation(violations)
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		return err
	}

	return utils.CreatedResponse(c, "Task created successfully", dto.TaskToResponse(task, time.Now().UTC()))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	idStr := c.Params("id")
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", idStr)
		return errs.InvalidID(idStr)
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Normalize()
	if violations := validation.ValidateStruct(&req); len(violations) > 0 {
		logger.WarnContext(ctx, "Task validation failed", "task_id", idStr, "violations", len(violations))
		return errs.Validation(violations)
	}

	task, err := h.taskService.UpdateTask(ctx, id, &req)
	if err != nil {
		return err
	}

	return utils.UpdatedResponse(c, "Task updated successfully", dto.TaskToResponse(task, time.Now().UTC()))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	idStr := c.Params("id")
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", idStr)
		return errs.InvalidID(idStr)
	}

	if err := h.taskService.DeleteTask(ctx, id); err != nil {
		return err
	}

	return utils.NoContentResponse(c)
}
