package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/SahilGarg15/TaskFlow/modules/auth"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides comment services for tasks.
type Module struct {
	db       *gorm.DB
	repo     *Repository
	service  *Service
	taskPort task.Port
	authPort auth.AuthPort
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new comment module.
func NewModule() *Module {
	dbPath := os.Getenv("COMMENTS_DB_PATH")
	if dbPath == "" {
		dbPath = "comments.db"
	}
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "comment"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task", "auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewAdapter(container)
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	}
}

// Start initializes the comment module.
func (m *Module) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}

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
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(m.repo, m.taskPort, m.authPort)

	log.Printf("[comment] Module started (database: %s, depends on: task, auth)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[comment] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-comments", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-comments service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "add-comment", json.Unmarshal, json.Marshal, m.handleAdd,
	); err != nil {
		return fmt.Errorf("failed to register add-comment service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-comment", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-comment service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-comment", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-comment service: %w", err)
	}

	log.Printf("[comment] Registered services: list-comments, add-comment, update-comment, delete-comment")
	return nil
}

func (m *Module) handleList(ctx context.Context, req ListCommentsRequest, _ *mono.Msg) (ListCommentsResponse, error) {
	resp, err := m.service.List(ctx, req.UserID, req.TaskID)
	if err != nil {
		return ListCommentsResponse{}, err
	}
	return *resp, nil
}

func (m *Module) handleAdd(ctx context.Context, req AddCommentRequest, _ *mono.Msg) (CommentReply, error) {
	v, err := m.service.Add(ctx, req.UserID, req.TaskID, req.Text)
	if err != nil {
		return CommentReply{}, err
	}
	return CommentReply{Comment: *v}, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateCommentRequest, _ *mono.Msg) (CommentReply, error) {
	v, err := m.service.Update(ctx, req.UserID, req.CommentID, req.Text)
	if err != nil {
		return CommentReply{}, err
	}
	return CommentReply{Comment: *v}, nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteCommentRequest, _ *mono.Msg) (DeleteCommentResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.CommentID); err != nil {
		return DeleteCommentResponse{}, err
	}
	return DeleteCommentResponse{Deleted: true}, nil
}
