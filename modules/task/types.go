package task

import (
	"context"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
)

// Patch is the explicit partial-update structure for task mutation. Only the
// listed fields are mutable; the HTTP layer rejects unknown keys before a
// Patch is ever built.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	IsArchived  *bool      `json:"isArchived,omitempty"`
}

// IsZero reports whether no field is set.
func (p *Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && p.Tags == nil && p.IsArchived == nil
}

// CreateTaskRequest is the request for creating a task. UserID is the
// authenticated requester; any owner supplied in a request body never
// reaches this struct.
type CreateTaskRequest struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// ListTasksRequest is the request for listing an owner's tasks.
type ListTasksRequest struct {
	UserID     string `json:"user_id"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	IsArchived *bool  `json:"isArchived,omitempty"`
	Search     string `json:"search,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	Order      string `json:"order,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// Pagination describes the page window of a listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalTasks  int64 `json:"totalTasks"`
	HasMore     bool  `json:"hasMore"`
}

// ListTasksResponse is the response for a task listing.
type ListTasksResponse struct {
	Tasks      []*domain.Task `json:"tasks"`
	Count      int            `json:"count"`
	Pagination Pagination     `json:"pagination"`
}

// TaskReply wraps a single task crossing the service bus.
type TaskReply struct {
	Task domain.Task `json:"task"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for partially updating a task.
type UpdateTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Update Patch  `json:"update"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// AuthorizeOwnerRequest asks whether a task exists and belongs to the user.
type AuthorizeOwnerRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// AuthorizeOwnerResponse is returned when the ownership check passes; a
// failed check travels back as an error instead.
type AuthorizeOwnerResponse struct {
	Authorized bool `json:"authorized"`
}

// BulkUpdateRequest applies one patch to many owned tasks, all or nothing.
type BulkUpdateRequest struct {
	UserID  string   `json:"user_id"`
	TaskIDs []string `json:"taskIds"`
	Update  Patch    `json:"update"`
}

// BulkUpdateResponse reports how many records the bulk write modified.
type BulkUpdateResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// ArchiveToggleRequest flips a task's archived flag.
type ArchiveToggleRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ArchiveToggleResponse carries the updated record and a human-readable
// message reflecting the new state.
type ArchiveToggleResponse struct {
	Task    domain.Task `json:"task"`
	Message string      `json:"message"`
}

// DuplicateTaskRequest copies a task into a fresh pending one.
type DuplicateTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// StatusCountsRequest asks for the owner's per-status task counts.
type StatusCountsRequest struct {
	UserID string `json:"user_id"`
}

// StatusCountsResponse holds per-status counts over non-archived tasks.
type StatusCountsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// PriorityCountsRequest asks for the owner's priority histogram.
type PriorityCountsRequest struct {
	UserID string `json:"user_id"`
}

// PriorityCountsResponse maps priority value to count; zero-count priorities
// are absent.
type PriorityCountsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// CompletionSeriesRequest asks for completions grouped by calendar day since
// the given instant.
type CompletionSeriesRequest struct {
	UserID string    `json:"user_id"`
	Since  time.Time `json:"since"`
}

// DayCount is one day of the completion trend.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// CompletionSeriesResponse is the ordered daily completion series; days with
// no completions are omitted.
type CompletionSeriesResponse struct {
	Days []DayCount `json:"days"`
}

// CountOverdueRequest counts overdue tasks against the supplied "now" so the
// caller controls the consistency boundary.
type CountOverdueRequest struct {
	UserID string    `json:"user_id"`
	Now    time.Time `json:"now"`
}

// CountOverdueResponse is the overdue task count.
type CountOverdueResponse struct {
	Count int64 `json:"count"`
}

// CompletionSpansRequest asks for creation/completion pairs of completed tasks.
type CompletionSpansRequest struct {
	UserID string `json:"user_id"`
}

// CompletionSpansResponse carries the spans used for latency averaging.
type CompletionSpansResponse struct {
	Spans []CompletionSpan `json:"spans"`
}

// ExportTasksRequest asks for the owner's exportable tasks.
type ExportTasksRequest struct {
	UserID string `json:"user_id"`
}

// ExportTasksResponse lists all non-archived tasks, newest first.
type ExportTasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// ImportTaskRecord is one normalized task to insert during a batch import.
type ImportTaskRecord struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
}

// ImportTasksRequest inserts the records as new tasks owned by the requester,
// atomically.
type ImportTasksRequest struct {
	UserID string             `json:"user_id"`
	Tasks  []ImportTaskRecord `json:"tasks"`
}

// ImportTasksResponse reports how many tasks the import created.
type ImportTasksResponse struct {
	Count int `json:"count"`
}

// Port defines the interface other modules use to reach the task store.
type Port interface {
	List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Create(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	AuthorizeOwner(ctx context.Context, userID, taskID string) error
	BulkUpdate(ctx context.Context, req *BulkUpdateRequest) (int64, error)
	ArchiveToggle(ctx context.Context, userID, taskID string) (*ArchiveToggleResponse, error)
	Duplicate(ctx context.Context, userID, taskID string) (*domain.Task, error)
	StatusCounts(ctx context.Context, userID string) (*StatusCountsResponse, error)
	PriorityCounts(ctx context.Context, userID string) (map[string]int64, error)
	CompletionSeries(ctx context.Context, userID string, since time.Time) ([]DayCount, error)
	CountOverdue(ctx context.Context, userID string, now time.Time) (int64, error)
	CompletionSpans(ctx context.Context, userID string) ([]CompletionSpan, error)
	ExportTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	ImportTasks(ctx context.Context, userID string, records []ImportTaskRecord) (int, error)
}
