package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SahilGarg15/TaskFlow/events"
	"github.com/SahilGarg15/TaskFlow/modules/cache"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module provides per-owner analytics over the task module, cached in Redis
// and invalidated by task events.
type Module struct {
	service  *Service
	taskPort task.Port
	cache    *cache.Cache
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new analytics module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "analytics"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.taskPort = task.NewAdapter(container)
	}
}

// SetCache wires the shared Redis cache. Optional; without it every request
// recomputes.
func (m *Module) SetCache(c *cache.Cache) {
	m.cache = c
	if m.service != nil {
		m.service.cache = c
	}
}

// Start initializes the analytics module.
func (m *Module) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.cache == nil {
		log.Println("[analytics] Warning: cache not set, reports will not be cached")
	}
	m.service = NewService(m.taskPort, m.cache)
	log.Println("[analytics] Module started (depends on: task)")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[analytics] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-analytics", json.Unmarshal, json.Marshal, m.handleGetAnalytics,
	); err != nil {
		return fmt.Errorf("failed to register get-analytics service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-stats", json.Unmarshal, json.Marshal, m.handleGetStats,
	); err != nil {
		return fmt.Errorf("failed to register get-stats service: %w", err)
	}

	log.Printf("[analytics] Registered services: get-analytics, get-stats")
	return nil
}

// RegisterEventConsumers subscribes to every task event; any of them makes
// the owner's cached reports stale.
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

	log.Printf("[analytics] Registered event consumers: TaskCreated, TaskUpdated, TaskCompleted, TaskDeleted, TasksImported")
	return nil
}

func (m *Module) handleGetAnalytics(ctx context.Context, req GetAnalyticsRequest, _ *mono.Msg) (Report, error) {
	report, err := m.service.GetAnalytics(ctx, req.UserID)
	if err != nil {
		return Report{}, err
	}
	return *report, nil
}

func (m *Module) handleGetStats(ctx context.Context, req GetStatsRequest, _ *mono.Msg) (Stats, error) {
	stats, err := m.service.GetStats(ctx, req.UserID)
	if err != nil {
		return Stats{}, err
	}
	return *stats, nil
}

func (m *Module) handleTaskCreated(ctx context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.UserID)
	return nil
}

func (m *Module) handleTaskUpdated(ctx context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.UserID)
	return nil
}

func (m *Module) handleTaskCompleted(ctx context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.UserID)
	return nil
}

func (m *Module) handleTaskDeleted(ctx context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.UserID)
	return nil
}

func (m *Module) handleTasksImported(ctx context.Context, event events.TasksImportedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.UserID)
	return nil
}
