package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/SahilGarg15/TaskFlow/modules/task"
)

// stubTaskPort supplies canned aggregates. Unimplemented Port methods come
// from the embedded nil interface and panic if reached.
type stubTaskPort struct {
	task.Port
	statusCounts task.StatusCountsResponse
	priorities   map[string]int64
	series       []task.DayCount
	overdue      int64
	spans        []task.CompletionSpan
}

func (s *stubTaskPort) StatusCounts(_ context.Context, _ string) (*task.StatusCountsResponse, error) {
	counts := s.statusCounts
	return &counts, nil
}

func (s *stubTaskPort) PriorityCounts(_ context.Context, _ string) (map[string]int64, error) {
	return s.priorities, nil
}

func (s *stubTaskPort) CompletionSeries(_ context.Context, _ string, _ time.Time) ([]task.DayCount, error) {
	return s.series, nil
}

func (s *stubTaskPort) CountOverdue(_ context.Context, _ string, _ time.Time) (int64, error) {
	return s.overdue, nil
}

func (s *stubTaskPort) CompletionSpans(_ context.Context, _ string) ([]task.CompletionSpan, error) {
	return s.spans, nil
}

func TestService_GetAnalytics(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	port := &stubTaskPort{
		statusCounts: task.StatusCountsResponse{Total: 4, Pending: 1, InProgress: 0, Completed: 3},
		priorities:   map[string]int64{"high": 2, "low": 1},
		series: []task.DayCount{
			{Day: "2026-08-18", Count: 1},
			{Day: "2026-08-20", Count: 2},
		},
		overdue: 1,
		spans: []task.CompletionSpan{
			{CreatedAt: base, CompletedAt: base.Add(10 * time.Hour)},
			{CreatedAt: base, CompletedAt: base.Add(14 * time.Hour)},
		},
	}
	s := NewService(port, nil)

	report, err := s.GetAnalytics(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetAnalytics() error = %v", err)
	}

	if report.TotalTasks != 4 || report.CompletedTasks != 3 {
		t.Errorf("unexpected totals %d/%d", report.TotalTasks, report.CompletedTasks)
	}
	if report.OverdueTasks != 1 {
		t.Errorf("expected 1 overdue, got %d", report.OverdueTasks)
	}
	if report.ByPriority["high"] != 2 || report.ByPriority["low"] != 1 {
		t.Errorf("unexpected priorities %v", report.ByPriority)
	}
	if _, present := report.ByPriority["medium"]; present {
		t.Error("expected zero-count priority absent")
	}
	if len(report.CompletionTrend) != 2 || report.CompletionTrend[0].Day != "2026-08-18" {
		t.Errorf("unexpected trend %v", report.CompletionTrend)
	}
	if report.AvgCompletionTimeHours != 12 {
		t.Errorf("expected 12 average hours, got %d", report.AvgCompletionTimeHours)
	}
	if report.ProductivityScore != 75 {
		t.Errorf("expected score 75, got %d", report.ProductivityScore)
	}
}

func TestService_GetStats(t *testing.T) {
	port := &stubTaskPort{
		statusCounts: task.StatusCountsResponse{Total: 2, Pending: 1, Completed: 1},
	}
	s := NewService(port, nil)

	stats, err := s.GetStats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Completed != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestAvgCompletionHours(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		spans []task.CompletionSpan
		want  int
	}{
		{"no completions", nil, 0},
		{
			"single span rounds up",
			[]task.CompletionSpan{{CreatedAt: base, CompletedAt: base.Add(90 * time.Minute)}},
			2,
		},
		{
			"mean of several",
			[]task.CompletionSpan{
				{CreatedAt: base, CompletedAt: base.Add(1 * time.Hour)},
				{CreatedAt: base, CompletedAt: base.Add(3 * time.Hour)},
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := avgCompletionHours(tt.spans); got != tt.want {
				t.Errorf("avgCompletionHours() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 5, 0},
		{"all completed", 5, 5, 100},
		{"rounded", 1, 3, 33},
		{"rounded up", 2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := productivityScore(tt.completed, tt.total); got != tt.want {
				t.Errorf("productivityScore(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}
