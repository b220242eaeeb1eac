package export

import (
	"strings"
	"testing"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
)

func TestRenderCSV(t *testing.T) {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 8, 21, 15, 30, 0, 0, time.UTC)

	t.Run("header only when no tasks", func(t *testing.T) {
		got := renderCSV(nil)
		want := csvHeader + "\n"
		if got != want {
			t.Errorf("renderCSV(nil) = %q, want %q", got, want)
		}
	})

	t.Run("quotes are doubled", func(t *testing.T) {
		tasks := []*domain.Task{{
			Title:     `He said "hi"`,
			Status:    domain.StatusPending,
			Priority:  domain.PriorityMedium,
			CreatedAt: created,
		}}
		got := renderCSV(tasks)
		if !strings.Contains(got, `"He said ""hi"""`) {
			t.Errorf("expected doubled quotes in %q", got)
		}
	})

	t.Run("full row", func(t *testing.T) {
		tasks := []*domain.Task{{
			Title:       "Ship it",
			Description: "With, commas",
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityHigh,
			Tags:        []string{"work", "urgent"},
			CreatedAt:   created,
			CompletedAt: &completed,
		}}
		lines := strings.Split(strings.TrimRight(renderCSV(tasks), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0] != csvHeader {
			t.Errorf("unexpected header %q", lines[0])
		}
		want := `"Ship it","With, commas",completed,high,,"work, urgent",` +
			created.Format(time.RFC3339) + "," + completed.Format(time.RFC3339)
		if lines[1] != want {
			t.Errorf("row = %q, want %q", lines[1], want)
		}
	})

	t.Run("empty dates stay empty", func(t *testing.T) {
		tasks := []*domain.Task{{
			Title:     "Bare",
			Status:    domain.StatusPending,
			Priority:  domain.PriorityLow,
			CreatedAt: created,
		}}
		row := strings.Split(strings.TrimRight(renderCSV(tasks), "\n"), "\n")[1]
		if !strings.HasSuffix(row, ",") {
			t.Errorf("expected trailing empty completed-at field in %q", row)
		}
	})
}

func TestNormalizeItem(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		record, err := normalizeItem(ImportItem{})
		if err != nil {
			t.Fatalf("normalizeItem() error = %v", err)
		}
		if record.Title != "Untitled Task" {
			t.Errorf("expected default title, got %q", record.Title)
		}
		if record.Status != "pending" || record.Priority != "medium" {
			t.Errorf("expected default enums, got %q/%q", record.Status, record.Priority)
		}
		if record.Tags == nil || len(record.Tags) != 0 {
			t.Errorf("expected empty tags, got %v", record.Tags)
		}
	})

	t.Run("mistyped fields fall back", func(t *testing.T) {
		record, err := normalizeItem(ImportItem{
			Title:    42,
			Status:   "done",
			Priority: []any{"high"},
			Tags:     "not-a-list",
		})
		if err != nil {
			t.Fatalf("normalizeItem() error = %v", err)
		}
		if record.Title != "Untitled Task" || record.Status != "pending" || record.Priority != "medium" {
			t.Errorf("unexpected record %+v", record)
		}
		if len(record.Tags) != 0 {
			t.Errorf("expected empty tags, got %v", record.Tags)
		}
	})

	t.Run("valid fields kept", func(t *testing.T) {
		record, err := normalizeItem(ImportItem{
			Title:    "  Real task  ",
			Status:   "in-progress",
			Priority: "high",
			DueDate:  "2026-09-01T12:00:00Z",
			Tags:     []any{"a", 7, "b"},
		})
		if err != nil {
			t.Fatalf("normalizeItem() error = %v", err)
		}
		if record.Title != "Real task" {
			t.Errorf("expected trimmed title, got %q", record.Title)
		}
		if record.Status != "in-progress" || record.Priority != "high" {
			t.Errorf("unexpected enums %q/%q", record.Status, record.Priority)
		}
		if record.DueDate == nil || record.DueDate.Day() != 1 {
			t.Errorf("unexpected due date %v", record.DueDate)
		}
		if len(record.Tags) != 2 || record.Tags[0] != "a" || record.Tags[1] != "b" {
			t.Errorf("expected non-string tags dropped, got %v", record.Tags)
		}
	})

	t.Run("unparseable due date fails", func(t *testing.T) {
		if _, err := normalizeItem(ImportItem{DueDate: "next tuesday"}); err != ErrInvalidDueDate {
			t.Errorf("normalizeItem() error = %v, want %v", err, ErrInvalidDueDate)
		}
		if _, err := normalizeItem(ImportItem{DueDate: 1234}); err != ErrInvalidDueDate {
			t.Errorf("normalizeItem() error = %v, want %v", err, ErrInvalidDueDate)
		}
	})
}
