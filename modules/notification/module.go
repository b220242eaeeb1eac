package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SahilGarg15/TaskFlow/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityEntry is one logged task activity.
type ActivityEntry struct {
	TaskID    string    `json:"taskId,omitempty"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Module records task activity by consuming domain events. The log is
// in-memory and bounded; it exists for operator visibility, not durability.
type Module struct {
	entries []ActivityEntry
	mu      sync.RWMutex
}

// maxEntries caps the in-memory activity log.
const maxEntries = 1000

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new notification module.
func NewModule() *Module {
	return &Module{
		entries: make([]ActivityEntry, 0),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to all task events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TasksImportedV1, m.handleTasksImported, m); err != nil {
		return fmt.Errorf("failed to register TasksImported consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskUpdated, TaskCompleted, TaskDeleted, TasksImported")
	return nil
}

func (m *Module) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.UserID, "task_created",
		fmt.Sprintf("Task '%s' created", event.Title))
	return nil
}

func (m *Module) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.UserID, "task_updated",
		fmt.Sprintf("Task %s updated", event.TaskID))
	return nil
}

func (m *Module) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.UserID, "task_completed",
		fmt.Sprintf("Task %s completed", event.TaskID))
	return nil
}

func (m *Module) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.UserID, "task_deleted",
		fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *Module) handleTasksImported(_ context.Context, event events.TasksImportedEvent, _ *mono.Msg) error {
	m.record("", event.UserID, "tasks_imported",
		fmt.Sprintf("%d tasks imported", event.Count))
	return nil
}

func (m *Module) record(taskID, userID, activityType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, ActivityEntry{
		TaskID:    taskID,
		UserID:    userID,
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now(),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// Activity returns a copy of the logged entries, oldest first.
func (m *Module) Activity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ActivityEntry, len(m.entries))
	copy(result, m.entries)
	return result
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
