package api

import (
	"fmt"

	"github.com/SahilGarg15/TaskFlow/modules/export"
	"github.com/gofiber/fiber/v2"
)

// ImportBody is the import request body.
type ImportBody struct {
	Tasks []export.ImportItem `json:"tasks"`
}

// ExportCSV handles GET /export/csv. The CSV document is streamed directly
// instead of being wrapped in the JSON envelope.
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	resp, err := h.exports.ExportCSV(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", resp.Filename))
	return c.Status(fiber.StatusOK).SendString(resp.Content)
}

// ExportJSON handles GET /export/json, sending the envelope as a download.
func (h *Handlers) ExportJSON(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	envelope, err := h.exports.ExportJSON(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("tasks-%s.json", envelope.ExportDate.Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).JSON(envelope)
}

// ImportTasks handles POST /export/import.
func (h *Handlers) ImportTasks(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var body ImportBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Tasks must be a non-empty array")
	}

	resp, err := h.exports.Import(c.UserContext(), userID, body.Tasks)
	if err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, fiber.Map{"count": resp.Count}, resp.Message)
}
