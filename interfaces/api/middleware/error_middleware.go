package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"taskmanager-api/pkg/errs"
	"taskmanager-api/pkg/logger"
)

// availableRoutes is listed in the route-not-found envelope.
var availableRoutes = []string{
	"GET /",
	"GET /health",
	"GET /api/tasks",
	"GET /api/tasks/:id",
	"POST /api/tasks",
	"PUT /api/tasks/:id",
	"DELETE /api/tasks/:id",
}

// ErrorHandler is the single shaping step for every handler-level error.
// It maps the error taxonomy onto the uniform envelope.
func ErrorHandler(isProduction bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := errs.As(err); ok {
			return shape(c, e, isProduction)
		}

		if fe, ok := err.(*fiber.Error); ok {
			// unclassified framework error (unparseable body, oversized
			// payload, ...) keeps its status but gets the envelope shape
			return c.Status(fe.Code).JSON(errs.Envelope{
				Error: fe.Message,
				Details: errs.Details{
					Message: fe.Message,
					Type:    errs.KindServer,
				},
			})
		}

		logger.ErrorContext(c.UserContext(), "Unhandled error", "error", err)
		return shape(c, errs.Internal(err), isProduction)
	}
}

func shape(c *fiber.Ctx, e *errs.Error, isProduction bool) error {
	envelope := errs.Envelope{
		Error: e.Message,
		Details: errs.Details{
			Message:          e.Detail,
			Type:             e.Kind,
			ValidationErrors: e.Fields,
			Field:            e.Field,
		},
	}

	if e.Kind == errs.KindServer {
		if isProduction {
			envelope.Details.Message = "Something went wrong on our end"
		} else {
			envelope.Details.Stack = string(debug.Stack())
		}
	}

	return c.Status(e.Status()).JSON(envelope)
}

// NotFoundHandler terminates the chain for unmatched routes with a
// distinct envelope listing the known routes.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(errs.Envelope{
			Error: "Route not found",
			Details: errs.Details{
				Message:         fmt.Sprintf("The requested route %s does not exist", c.OriginalURL()),
				Type:            errs.KindNotFound,
				AvailableRoutes: availableRoutes,
			},
		})
	}
}
