package routes

import (
	"github.com/gofiber/fiber/v2"
	"taskmanager-api/interfaces/api/handlers"
	"taskmanager-api/interfaces/api/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api")
	SetupTaskRoutes(api, h)

	// must be registered last: everything unmatched is a route-not-found
	app.Use(middleware.NotFoundHandler())
}
