package analytics

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// adapter wraps the analytics ServiceContainer for type-safe cross-module calls.
type adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a Port backed by the analytics module's service container.
func NewAdapter(container mono.ServiceContainer) Port {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &adapter{container: container}
}

func (a *adapter) GetAnalytics(ctx context.Context, userID string) (*Report, error) {
	req := GetAnalyticsRequest{UserID: userID}
	var resp Report
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-analytics", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) GetStats(ctx context.Context, userID string) (*Stats, error) {
	req := GetStatsRequest{UserID: userID}
	var resp Stats
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-stats", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}
