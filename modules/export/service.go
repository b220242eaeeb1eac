package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
	"github.com/SahilGarg15/TaskFlow/modules/task"
)

var (
	// ErrTasksRequired is returned when an import payload has no tasks.
	ErrTasksRequired = errors.New("tasks must be a non-empty array")
	// ErrInvalidDueDate is returned when an import dueDate cannot be parsed.
	// One bad date fails the whole import; partial imports never happen.
	ErrInvalidDueDate = errors.New("invalid due date format")
)

// Service renders exports and normalizes imports on top of the task module.
type Service struct {
	taskPort task.Port
}

// NewService creates a new export service.
func NewService(taskPort task.Port) *Service {
	return &Service{taskPort: taskPort}
}

// ExportCSV renders the owner's non-archived tasks as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, userID string) (*ExportCSVResponse, error) {
	tasks, err := s.taskPort.ExportTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("tasks-%s.csv", time.Now().Format("2006-01-02"))
	return &ExportCSVResponse{
		Filename: filename,
		Content:  renderCSV(tasks),
	}, nil
}

// ExportJSON renders the owner's non-archived tasks as a JSON envelope with
// a reduced per-task shape.
func (s *Service) ExportJSON(ctx context.Context, userID string) (*JSONEnvelope, error) {
	tasks, err := s.taskPort.ExportTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportedTask, 0, len(tasks))
	for _, t := range tasks {
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		exported = append(exported, ExportedTask{
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
			Tags:        tags,
			CreatedAt:   t.CreatedAt,
			CompletedAt: t.CompletedAt,
		})
	}

	return &JSONEnvelope{
		ExportDate: time.Now(),
		TotalTasks: len(exported),
		Tasks:      exported,
	}, nil
}

// Import normalizes the raw items and batch-inserts them through the task
// module, atomically.
func (s *Service) Import(ctx context.Context, userID string, items []ImportItem) (*ImportResponse, error) {
	if len(items) == 0 {
		return nil, ErrTasksRequired
	}

	records := make([]task.ImportTaskRecord, 0, len(items))
	for _, item := range items {
		record, err := normalizeItem(item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	count, err := s.taskPort.ImportTasks(ctx, userID, records)
	if err != nil {
		return nil, err
	}

	return &ImportResponse{
		Message: fmt.Sprintf("Successfully imported %d tasks", count),
		Count:   count,
	}, nil
}

// normalizeItem maps one loosely-typed import element onto a task record.
// Missing or mistyped fields fall back to defaults; only an unparseable
// dueDate is a hard failure.
func normalizeItem(item ImportItem) (task.ImportTaskRecord, error) {
	record := task.ImportTaskRecord{
		Title:       "Untitled Task",
		Description: "",
		Status:      string(domain.StatusPending),
		Priority:    string(domain.PriorityMedium),
		Tags:        []string{},
	}

	if title, ok := item.Title.(string); ok && strings.TrimSpace(title) != "" {
		record.Title = strings.TrimSpace(title)
	}
	if description, ok := item.Description.(string); ok {
		record.Description = description
	}
	if status, ok := item.Status.(string); ok && domain.ValidStatus(status) {
		record.Status = status
	}
	if priority, ok := item.Priority.(string); ok && domain.ValidPriority(priority) {
		record.Priority = priority
	}
	if item.DueDate != nil {
		raw, ok := item.DueDate.(string)
		if !ok {
			return record, ErrInvalidDueDate
		}
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return record, ErrInvalidDueDate
		}
		record.DueDate = &due
	}
	if rawTags, ok := item.Tags.([]any); ok {
		tags := make([]string, 0, len(rawTags))
		for _, rawTag := range rawTags {
			if tag, ok := rawTag.(string); ok {
				tags = append(tags, tag)
			}
		}
		record.Tags = tags
	}

	return record, nil
}
