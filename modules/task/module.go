package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SahilGarg15/TaskFlow/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides the task store, access control, and bulk operations.
type Module struct {
	db      *gorm.DB
	repo    *Repository
	service *Service
	bus     mono.EventBus
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new task Module.
func NewModule() *Module {
	dbPath := os.Getenv("TASKS_DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.bus = bus
	if m.service != nil {
		m.service.SetEventBus(bus)
	}
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
		events.TasksImportedV1.ToBase(),
	}
}

// Start opens the SQLite database, runs migrations, and builds the service.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	m.repo = NewRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.repo)
	if m.bus != nil {
		m.service.SetEventBus(m.bus)
	}

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health reports database connectivity.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get database connection: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"database": m.dbPath},
	}
}

// RegisterServices registers the task request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "authorize-owner", json.Unmarshal, json.Marshal, m.handleAuthorizeOwner,
	); err != nil {
		return fmt.Errorf("failed to register authorize-owner service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "bulk-update", json.Unmarshal, json.Marshal, m.handleBulkUpdate,
	); err != nil {
		return fmt.Errorf("failed to register bulk-update service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "archive-task", json.Unmarshal, json.Marshal, m.handleArchiveToggle,
	); err != nil {
		return fmt.Errorf("failed to register archive-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "duplicate-task", json.Unmarshal, json.Marshal, m.handleDuplicate,
	); err != nil {
		return fmt.Errorf("failed to register duplicate-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "status-counts", json.Unmarshal, json.Marshal, m.handleStatusCounts,
	); err != nil {
		return fmt.Errorf("failed to register status-counts service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "priority-counts", json.Unmarshal, json.Marshal, m.handlePriorityCounts,
	); err != nil {
		return fmt.Errorf("failed to register priority-counts service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "completion-series", json.Unmarshal, json.Marshal, m.handleCompletionSeries,
	); err != nil {
		return fmt.Errorf("failed to register completion-series service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "count-overdue", json.Unmarshal, json.Marshal, m.handleCountOverdue,
	); err != nil {
		return fmt.Errorf("failed to register count-overdue service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "completion-spans", json.Unmarshal, json.Marshal, m.handleCompletionSpans,
	); err != nil {
		return fmt.Errorf("failed to register completion-spans service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "export-tasks", json.Unmarshal, json.Marshal, m.handleExportTasks,
	); err != nil {
		return fmt.Errorf("failed to register export-tasks service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "import-tasks", json.Unmarshal, json.Marshal, m.handleImportTasks,
	); err != nil {
		return fmt.Errorf("failed to register import-tasks service: %w", err)
	}

	log.Printf("[task] Registered services: list-tasks, get-task, create-task, update-task, delete-task, " +
		"authorize-owner, bulk-update, archive-task, duplicate-task, status-counts, priority-counts, " +
		"completion-series, count-overdue, completion-spans, export-tasks, import-tasks")
	return nil
}

func (m *Module) handleList(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.List(&req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

func (m *Module) handleGet(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Get(req.TaskID, req.UserID)
	if err != nil {
		return TaskReply{}, err
	}
	return TaskReply{Task: *t}, nil
}

func (m *Module) handleCreate(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Create(req.UserID, &req)
	if err != nil {
		return TaskReply{}, err
	}
	return TaskReply{Task: *t}, nil
}

func (m *Module) handleUpdate(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Update(&req)
	if err != nil {
		return TaskReply{}, err
	}
	return TaskReply{Task: *t}, nil
}

func (m *Module) handleDelete(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(req.TaskID, req.UserID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

func (m *Module) handleAuthorizeOwner(_ context.Context, req AuthorizeOwnerRequest, _ *mono.Msg) (AuthorizeOwnerResponse, error) {
	if err := m.service.AuthorizeOwner(req.TaskID, req.UserID); err != nil {
		return AuthorizeOwnerResponse{Authorized: false}, err
	}
	return AuthorizeOwnerResponse{Authorized: true}, nil
}

func (m *Module) handleBulkUpdate(_ context.Context, req BulkUpdateRequest, _ *mono.Msg) (BulkUpdateResponse, error) {
	modified, err := m.service.BulkUpdate(&req)
	if err != nil {
		return BulkUpdateResponse{}, err
	}
	return BulkUpdateResponse{ModifiedCount: modified}, nil
}

func (m *Module) handleArchiveToggle(_ context.Context, req ArchiveToggleRequest, _ *mono.Msg) (ArchiveToggleResponse, error) {
	resp, err := m.service.ArchiveToggle(req.TaskID, req.UserID)
	if err != nil {
		return ArchiveToggleResponse{}, err
	}
	return *resp, nil
}

func (m *Module) handleDuplicate(_ context.Context, req DuplicateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Duplicate(req.TaskID, req.UserID)
	if err != nil {
		return TaskReply{}, err
	}
	return TaskReply{Task: *t}, nil
}

func (m *Module) handleStatusCounts(_ context.Context, req StatusCountsRequest, _ *mono.Msg) (StatusCountsResponse, error) {
	resp, err := m.service.StatusCounts(req.UserID)
	if err != nil {
		return StatusCountsResponse{}, err
	}
	return *resp, nil
}

func (m *Module) handlePriorityCounts(_ context.Context, req PriorityCountsRequest, _ *mono.Msg) (PriorityCountsResponse, error) {
	counts, err := m.service.PriorityCounts(req.UserID)
	if err != nil {
		return PriorityCountsResponse{}, err
	}
	return PriorityCountsResponse{Counts: counts}, nil
}

func (m *Module) handleCompletionSeries(_ context.Context, req CompletionSeriesRequest, _ *mono.Msg) (CompletionSeriesResponse, error) {
	days, err := m.service.CompletionSeries(req.UserID, req.Since)
	if err != nil {
		return CompletionSeriesResponse{}, err
	}
	return CompletionSeriesResponse{Days: days}, nil
}

func (m *Module) handleCountOverdue(_ context.Context, req CountOverdueRequest, _ *mono.Msg) (CountOverdueResponse, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	count, err := m.service.CountOverdue(req.UserID, now)
	if err != nil {
		return CountOverdueResponse{}, err
	}
	return CountOverdueResponse{Count: count}, nil
}

func (m *Module) handleCompletionSpans(_ context.Context, req CompletionSpansRequest, _ *mono.Msg) (CompletionSpansResponse, error) {
	spans, err := m.service.CompletionSpans(req.UserID)
	if err != nil {
		return CompletionSpansResponse{}, err
	}
	return CompletionSpansResponse{Spans: spans}, nil
}

func (m *Module) handleExportTasks(_ context.Context, req ExportTasksRequest, _ *mono.Msg) (ExportTasksResponse, error) {
	tasks, err := m.service.ExportTasks(req.UserID)
	if err != nil {
		return ExportTasksResponse{}, err
	}
	return ExportTasksResponse{Tasks: tasks}, nil
}

func (m *Module) handleImportTasks(_ context.Context, req ImportTasksRequest, _ *mono.Msg) (ImportTasksResponse, error) {
	count, err := m.service.ImportTasks(req.UserID, req.Tasks)
	if err != nil {
		return ImportTasksResponse{}, err
	}
	return ImportTasksResponse{Count: count}, nil
}
