package api

import (
	"github.com/gofiber/fiber/v2"
)

// CommentBody is the create/update comment request body.
type CommentBody struct {
	Text string `json:"text"`
}

// ListComments handles GET /comments/task/:taskId.
func (h *Handlers) ListComments(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	resp, err := h.comments.List(c.UserContext(), userID, c.Params("taskId"))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, resp)
}

// AddComment handles POST /comments/task/:taskId.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var body CommentBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v, err := h.comments.Add(c.UserContext(), userID, c.Params("taskId"), body.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusCreated, v)
}

// UpdateComment handles PUT /comments/:commentId.
func (h *Handlers) UpdateComment(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var body CommentBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v, err := h.comments.Update(c.UserContext(), userID, c.Params("commentId"), body.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, v)
}

// DeleteComment handles DELETE /comments/:commentId.
func (h *Handlers) DeleteComment(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	if err := h.comments.Delete(c.UserContext(), userID, c.Params("commentId")); err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
