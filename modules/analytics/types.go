package analytics

import (
	"context"

	"github.com/SahilGarg15/TaskFlow/modules/task"
)

// Report is the fixed-shape productivity report for one owner. Every
// quantity is computed against a single instant captured when the request
// arrives.
type Report struct {
	TotalTasks             int64            `json:"totalTasks"`
	CompletedTasks         int64            `json:"completedTasks"`
	ByPriority             map[string]int64 `json:"byPriority"`
	CompletionTrend        []task.DayCount  `json:"completionTrend"`
	OverdueTasks           int64            `json:"overdueTasks"`
	AvgCompletionTimeHours int              `json:"avgCompletionTimeHours"`
	ProductivityScore      int              `json:"productivityScore"`
}

// Stats is the per-owner status breakdown.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// GetAnalyticsRequest asks for the owner's full report.
type GetAnalyticsRequest struct {
	UserID string `json:"user_id"`
}

// GetStatsRequest asks for the owner's status counts.
type GetStatsRequest struct {
	UserID string `json:"user_id"`
}

// Port defines the interface other modules use to reach analytics.
type Port interface {
	GetAnalytics(ctx context.Context, userID string) (*Report, error)
	GetStats(ctx context.Context, userID string) (*Stats, error)
}
