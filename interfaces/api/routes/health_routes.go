package routes

import (
	"github.com/gofiber/fiber/v2"
	"taskmanager-api/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)

	// route catalogue, mirroring what the API exposes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Task Manager API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": fiber.Map{
				"GET /api/tasks": fiber.Map{
					"description": "List all tasks with optional filtering",
					"queryParams": fiber.Map{
						"completed": "boolean - Filter by completion status",
						"priority":  "string - Filter by priority (low, medium, high)",
						"sortBy":    "string - Sort field (default: createdAt)",
						"sortOrder": "string - Sort order (asc, desc)",
					},
				},
				"GET /api/tasks/:id": "Get a single task by ID",
				"POST /api/tasks": fiber.Map{
					"description":    "Create a new task",
					"requiredFields": []string{"title"},
					"optionalFields": []string{"description", "priority", "dueDate"},
				},
				"PUT /api/tasks/:id":    "Update an existing task, all fields optional",
				"DELETE /api/tasks/:id": "Delete a task by ID",
				"GET /health":           "Health check endpoint",
			},
		})
	})
}
