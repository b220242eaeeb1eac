package export

import (
	"context"
	"time"
)

// ExportedTask is the reduced task shape included in JSON exports.
type ExportedTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// JSONEnvelope is the JSON export document.
type JSONEnvelope struct {
	ExportDate time.Time      `json:"exportDate"`
	TotalTasks int            `json:"totalTasks"`
	Tasks      []ExportedTask `json:"tasks"`
}

// ExportCSVRequest asks for the owner's tasks as CSV.
type ExportCSVRequest struct {
	UserID string `json:"user_id"`
}

// ExportCSVResponse carries the rendered CSV document.
type ExportCSVResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ExportJSONRequest asks for the owner's tasks as a JSON envelope.
type ExportJSONRequest struct {
	UserID string `json:"user_id"`
}

// ImportItem is one raw element of an import payload. Fields are loosely
// typed because the payload comes straight from user-supplied JSON; Normalize
// decides what each value means.
type ImportItem struct {
	Title       any `json:"title"`
	Description any `json:"description"`
	Status      any `json:"status"`
	Priority    any `json:"priority"`
	DueDate     any `json:"dueDate"`
	Tags        any `json:"tags"`
}

// ImportRequest inserts the items as new tasks owned by the requester.
type ImportRequest struct {
	UserID string       `json:"user_id"`
	Tasks  []ImportItem `json:"tasks"`
}

// ImportResponse reports the import outcome.
type ImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Port defines the interface other modules use to reach export.
type Port interface {
	ExportCSV(ctx context.Context, userID string) (*ExportCSVResponse, error)
	ExportJSON(ctx context.Context, userID string) (*JSONEnvelope, error)
	Import(ctx context.Context, userID string, items []ImportItem) (*ImportResponse, error)
}
