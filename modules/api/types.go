package api

import "github.com/gofiber/fiber/v2"

// Response is the uniform envelope every JSON endpoint returns. Export
// endpoints that stream documents bypass it.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{Success: true, Data: data, Message: message})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}
