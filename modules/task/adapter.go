package task

import (
	"context"
	"encoding/json"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// adapter wraps the task ServiceContainer for type-safe cross-module calls.
type adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a Port backed by the task module's service container.
func NewAdapter(container mono.ServiceContainer) Port {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &adapter{container: container}
}

// call is a small wrapper over the request-reply helper. Service errors
// cross the bus as strings; sentinel messages stay intact for the boundary
// layer to classify, so no extra wrapping happens here.
func call[Req any, Resp any](ctx context.Context, a *adapter, service string, req *Req, resp *Resp) error {
	return helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

func (a *adapter) List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := call(ctx, a, "list-tasks", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	req := GetTaskRequest{UserID: userID, TaskID: taskID}
	var resp TaskReply
	if err := call(ctx, a, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (a *adapter) Create(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	var resp TaskReply
	if err := call(ctx, a, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (a *adapter) Update(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	var resp TaskReply
	if err := call(ctx, a, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (a *adapter) Delete(ctx context.Context, userID, taskID string) error {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp DeleteTaskResponse
	return call(ctx, a, "delete-task", &req, &resp)
}

func (a *adapter) AuthorizeOwner(ctx context.Context, userID, taskID string) error {
	req := AuthorizeOwnerRequest{UserID: userID, TaskID: taskID}
	var resp AuthorizeOwnerResponse
	return call(ctx, a, "authorize-owner", &req, &resp)
}

func (a *adapter) BulkUpdate(ctx context.Context, req *BulkUpdateRequest) (int64, error) {
	var resp BulkUpdateResponse
	if err := call(ctx, a, "bulk-update", req, &resp); err != nil {
		return 0, err
	}
	return resp.ModifiedCount, nil
}

func (a *adapter) ArchiveToggle(ctx context.Context, userID, taskID string) (*ArchiveToggleResponse, error) {
	req := ArchiveToggleRequest{UserID: userID, TaskID: taskID}
	var resp ArchiveToggleResponse
	if err := call(ctx, a, "archive-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) Duplicate(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	req := DuplicateTaskRequest{UserID: userID, TaskID: taskID}
	var resp TaskReply
	if err := call(ctx, a, "duplicate-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (a *adapter) StatusCounts(ctx context.Context, userID string) (*StatusCountsResponse, error) {
	req := StatusCountsRequest{UserID: userID}
	var resp StatusCountsResponse
	if err := call(ctx, a, "status-counts", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) PriorityCounts(ctx context.Context, userID string) (map[string]int64, error) {
	req := PriorityCountsRequest{UserID: userID}
	var resp PriorityCountsResponse
	if err := call(ctx, a, "priority-counts", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Counts, nil
}

func (a *adapter) CompletionSeries(ctx context.Context, userID string, since time.Time) ([]DayCount, error) {
	req := CompletionSeriesRequest{UserID: userID, Since: since}
	var resp CompletionSeriesResponse
	if err := call(ctx, a, "completion-series", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

func (a *adapter) CountOverdue(ctx context.Context, userID string, now time.Time) (int64, error) {
	req := CountOverdueRequest{UserID: userID, Now: now}
	var resp CountOverdueResponse
	if err := call(ctx, a, "count-overdue", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (a *adapter) CompletionSpans(ctx context.Context, userID string) ([]CompletionSpan, error) {
	req := CompletionSpansRequest{UserID: userID}
	var resp CompletionSpansResponse
	if err := call(ctx, a, "completion-spans", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Spans, nil
}

func (a *adapter) ExportTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	req := ExportTasksRequest{UserID: userID}
	var resp ExportTasksResponse
	if err := call(ctx, a, "export-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (a *adapter) ImportTasks(ctx context.Context, userID string, records []ImportTaskRecord) (int, error) {
	req := ImportTasksRequest{UserID: userID, Tasks: records}
	var resp ImportTasksResponse
	if err := call(ctx, a, "import-tasks", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
