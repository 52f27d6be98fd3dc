package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the liveness probe. The ping function reports
// whether the document store connection is alive.
type HealthHandler struct {
	ping func(context.Context) error
}

func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	database := "disconnected"
	if h.ping != nil && h.ping(c.UserContext()) == nil {
		database = "connected"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": database,
	})
}
