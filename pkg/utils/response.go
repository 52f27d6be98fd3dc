package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Success response shapes follow the reference API: list responses carry a
// count, mutations carry a confirmation message. Error responses never go
// through these helpers; they are shaped centrally by the error middleware.

type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(DataResponse{
		Success: true,
		Data:    data,
	})
}

func ListSuccessResponse(c *fiber.Ctx, count int, data any) error {
	return c.Status(fiber.StatusOK).JSON(ListResponse{
		Success: true,
		Count:   count,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func UpdatedResponse(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func NoContentResponse(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
