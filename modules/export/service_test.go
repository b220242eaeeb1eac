package export

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
	"github.com/SahilGarg15/TaskFlow/modules/task"
)

// stubTaskPort feeds the export selection and captures what Import inserts.
// Other Port methods come from the embedded nil interface and panic if
// reached.
type stubTaskPort struct {
	task.Port
	tasks    []*domain.Task
	imported []task.ImportTaskRecord
}

func (s *stubTaskPort) ExportTasks(_ context.Context, _ string) ([]*domain.Task, error) {
	return s.tasks, nil
}

func (s *stubTaskPort) ImportTasks(_ context.Context, _ string, records []task.ImportTaskRecord) (int, error) {
	s.imported = records
	return len(records), nil
}

func TestExportImportRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	due := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	port := &stubTaskPort{tasks: []*domain.Task{
		{
			Title:       "Ship release",
			Description: "v2 rollout",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			DueDate:     &due,
			Tags:        []string{"work", "release"},
			CreatedAt:   created,
		},
		{
			Title:     "Water plants",
			Status:    domain.StatusPending,
			Priority:  domain.PriorityLow,
			CreatedAt: created,
		},
	}}
	s := NewService(port)

	envelope, err := s.ExportJSON(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if envelope.TotalTasks != 2 {
		t.Fatalf("expected 2 exported tasks, got %d", envelope.TotalTasks)
	}

	// Feed the export back through JSON, the way a client re-importing a
	// downloaded file would.
	raw, err := json.Marshal(envelope.Tasks)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var items []ImportItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	resp, err := s.Import(context.Background(), "alice", items)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 imported tasks, got %d", resp.Count)
	}
	if len(port.imported) != 2 {
		t.Fatalf("expected 2 records handed to the task module, got %d", len(port.imported))
	}

	first := port.imported[0]
	if first.Title != "Ship release" || first.Description != "v2 rollout" {
		t.Errorf("unexpected record %+v", first)
	}
	if first.Status != "in-progress" || first.Priority != "high" {
		t.Errorf("enums did not survive the round trip: %q/%q", first.Status, first.Priority)
	}
	if first.DueDate == nil || !first.DueDate.Equal(due) {
		t.Errorf("due date did not survive the round trip: %v", first.DueDate)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "work" || first.Tags[1] != "release" {
		t.Errorf("tags did not survive the round trip: %v", first.Tags)
	}

	second := port.imported[1]
	if second.Title != "Water plants" || second.Status != "pending" || second.Priority != "low" {
		t.Errorf("unexpected record %+v", second)
	}
	if second.DueDate != nil {
		t.Errorf("expected no due date, got %v", second.DueDate)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", second.Tags)
	}
}
