package export

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// adapter wraps the export ServiceContainer for type-safe cross-module calls.
type adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a Port backed by the export module's service container.
func NewAdapter(container mono.ServiceContainer) Port {
	if container == nil {
		panic("export adapter requires non-nil ServiceContainer")
	}
	return &adapter{container: container}
}

func (a *adapter) ExportCSV(ctx context.Context, userID string) (*ExportCSVResponse, error) {
	req := ExportCSVRequest{UserID: userID}
	var resp ExportCSVResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "export-csv", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) ExportJSON(ctx context.Context, userID string) (*JSONEnvelope, error) {
	req := ExportJSONRequest{UserID: userID}
	var resp JSONEnvelope
	if err := helper.CallRequestReplyService(
		ctx, a.container, "export-json", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) Import(ctx context.Context, userID string, items []ImportItem) (*ImportResponse, error) {
	req := ImportRequest{UserID: userID, Tasks: items}
	var resp ImportResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "import-tasks", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}
