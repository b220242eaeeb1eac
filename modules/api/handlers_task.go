package api

import (
	"strconv"

	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/gofiber/fiber/v2"
)

// BulkUpdateBody is the bulk update request body.
type BulkUpdateBody struct {
	TaskIDs []string   `json:"taskIds"`
	Update  task.Patch `json:"update"`
}

// ListTasks handles GET /tasks with filtering, search, sorting and
// pagination via query parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	req := task.ListTasksRequest{
		UserID:   userID,
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
		Page:     c.QueryInt("page"),
		Limit:    c.QueryInt("limit"),
	}
	if raw := c.Query("isArchived"); raw != "" {
		if archived, err := strconv.ParseBool(raw); err == nil {
			req.IsArchived = &archived
		}
	}

	resp, err := h.tasks.List(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, resp)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	t, err := h.tasks.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, t)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// The owner is always the requester, whatever the body carried.
	req.UserID = userID

	t, err := h.tasks.Create(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusCreated, t)
}

// UpdateTask handles PUT /tasks/:id. The body is a strict patch; unknown
// fields are rejected rather than ignored.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var patch task.Patch
	if err := decodeStrict(c.Body(), &patch); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid update: only title, description, status, priority, dueDate, tags and isArchived may be changed")
	}

	req := task.UpdateTaskRequest{
		UserID: userID,
		TaskID: c.Params("id"),
		Update: patch,
	}
	t, err := h.tasks.Update(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, t)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	if err := h.tasks.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Task deleted successfully")
}

// BulkUpdateTasks handles PUT /tasks/bulk: one patch applied to many owned
// tasks, all or nothing.
func (h *Handlers) BulkUpdateTasks(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var body BulkUpdateBody
	if err := decodeStrict(c.Body(), &body); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req := task.BulkUpdateRequest{
		UserID:  userID,
		TaskIDs: body.TaskIDs,
		Update:  body.Update,
	}
	modified, err := h.tasks.BulkUpdate(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"modifiedCount": modified})
}

// ArchiveTask handles PUT /tasks/:id/archive, toggling the archived flag.
func (h *Handlers) ArchiveTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	resp, err := h.tasks.ArchiveToggle(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, resp.Task, resp.Message)
}

// DuplicateTask handles POST /tasks/:id/duplicate.
func (h *Handlers) DuplicateTask(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	t, err := h.tasks.Duplicate(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusCreated, t)
}

// TaskStats handles GET /tasks/stats.
func (h *Handlers) TaskStats(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	stats, err := h.analytics.GetStats(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, stats)
}

// TaskAnalytics handles GET /tasks/analytics.
func (h *Handlers) TaskAnalytics(c *fiber.Ctx) error {
	userID, ok := requesterID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	report, err := h.analytics.GetAnalytics(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, fiber.StatusOK, report)
}
