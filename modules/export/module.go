package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module provides task export and import services.
type Module struct {
	service  *Service
	taskPort task.Port
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)

// NewModule creates a new export module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "export"
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

// Start initializes the export module.
func (m *Module) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	m.service = NewService(m.taskPort)
	log.Println("[export] Module started (depends on: task)")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[export] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "export-csv", json.Unmarshal, json.Marshal, m.handleExportCSV,
	); err != nil {
		return fmt.Errorf("failed to register export-csv service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "export-json", json.Unmarshal, json.Marshal, m.handleExportJSON,
	); err != nil {
		return fmt.Errorf("failed to register export-json service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "import-tasks", json.Unmarshal, json.Marshal, m.handleImport,
	); err != nil {
		return fmt.Errorf("failed to register import-tasks service: %w", err)
	}

	log.Printf("[export] Registered services: export-csv, export-json, import-tasks")
	return nil
}

func (m *Module) handleExportCSV(ctx context.Context, req ExportCSVRequest, _ *mono.Msg) (ExportCSVResponse, error) {
	resp, err := m.service.ExportCSV(ctx, req.UserID)
	if err != nil {
		return ExportCSVResponse{}, err
	}
	return *resp, nil
}

func (m *Module) handleExportJSON(ctx context.Context, req ExportJSONRequest, _ *mono.Msg) (JSONEnvelope, error) {
	resp, err := m.service.ExportJSON(ctx, req.UserID)
	if err != nil {
		return JSONEnvelope{}, err
	}
	return *resp, nil
}

func (m *Module) handleImport(ctx context.Context, req ImportRequest, _ *mono.Msg) (ImportResponse, error) {
	resp, err := m.service.Import(ctx, req.UserID, req.Tasks)
	if err != nil {
		return ImportResponse{}, err
	}
	return *resp, nil
}
