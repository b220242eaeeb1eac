package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// sortColumns whitelists the fields a caller may sort by.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
}

// ListFilter narrows and orders an owner's task listing.
type ListFilter struct {
	Status     string
	Priority   string
	IsArchived *bool
	Search     string
	SortBy     string
	Order      string
	Page       int
	Limit      int
}

// StatusCount is one row of a group-by-status aggregation.
type StatusCount struct {
	Status string
	Count  int64
}

// PriorityCount is one row of a group-by-priority aggregation.
type PriorityCount struct {
	Priority string
	Count    int64
}

// CompletionSpan holds the creation/completion pair of a completed task.
type CompletionSpan struct {
	CreatedAt   time.Time
	CompletedAt time.Time
}

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for tasks.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Create saves a new task.
func (r *Repository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID regardless of owner. Callers are
// responsible for the ownership check so that not-found and not-owner
// remain distinct failures.
func (r *Repository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// List retrieves a page of the owner's tasks matching the filter, plus the
// total match count before pagination.
func (r *Repository) List(userID string, f ListFilter) ([]*domain.Task, int64, error) {
	q := r.db.Model(&domain.Task{}).Where("user_id = ?", userID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.IsArchived != nil {
		q = q.Where("is_archived = ?", *f.IsArchived)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		direction = "ASC"
	}

	var tasks []*domain.Task
	err := q.Order(column + " " + direction).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// FindOwnedByIDs returns the subset of ids that resolve to tasks owned by
// the user.
func (r *Repository) FindOwnedByIDs(userID string, ids []string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Save persists the full task record. Concurrent writers follow
// last-write-wins; there is no version check.
func (r *Repository) Save(t *domain.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes a task permanently. Comments are not cascaded.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateWhereOwned applies the column updates to every listed task still
// owned by the user, in a single conditional write, and returns the number
// of rows modified.
func (r *Repository) UpdateWhereOwned(userID string, ids []string, updates map[string]any) (int64, error) {
	result := r.db.Model(&domain.Task{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bulk update tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetCompletedAtWhereNull stamps completed_at on the listed owned rows that
// do not have one yet. Used after a bulk status change into completed so
// already-completed tasks keep their original timestamp.
func (r *Repository) SetCompletedAtWhereNull(userID string, ids []string, completedAt time.Time) error {
	err := r.db.Model(&domain.Task{}).
		Where("id IN ? AND user_id = ? AND completed_at IS NULL", ids, userID).
		Update("completed_at", completedAt).Error
	if err != nil {
		return fmt.Errorf("failed to stamp completion time: %w", err)
	}
	return nil
}

// StatusCounts groups the owner's non-archived tasks by status, so the
// breakdown always sums to the same population CountByOwner totals.
func (r *Repository) StatusCounts(userID string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.Model(&domain.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ? AND is_archived = ?", userID, false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}
	return rows, nil
}

// PriorityCounts groups the owner's non-archived tasks by priority.
// Priorities with no matching tasks are simply absent.
func (r *Repository) PriorityCounts(userID string) ([]PriorityCount, error) {
	var rows []PriorityCount
	err := r.db.Model(&domain.Task{}).
		Select("priority, COUNT(*) AS count").
		Where("user_id = ? AND is_archived = ?", userID, false).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}
	return rows, nil
}

// CompletionTimes returns the completion timestamps of the owner's tasks
// completed at or after since. Day grouping happens in the service layer to
// stay independent of the SQLite datetime encoding.
func (r *Repository) CompletionTimes(userID string, since time.Time) ([]time.Time, error) {
	var tasks []domain.Task
	err := r.db.Select("completed_at").
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, since).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completion times: %w", err)
	}
	times := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		if t.CompletedAt != nil {
			times = append(times, *t.CompletedAt)
		}
	}
	return times, nil
}

// CountOverdue counts the owner's non-archived tasks past their due date and
// not yet completed.
func (r *Repository) CountOverdue(userID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).
		Where("user_id = ? AND is_archived = ? AND due_date IS NOT NULL AND due_date < ? AND status <> ?",
			userID, false, now, domain.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return count, nil
}

// CountByOwner counts the owner's non-archived tasks, optionally narrowed to
// a single status.
func (r *Repository) CountByOwner(userID string, status domain.Status) (int64, error) {
	q := r.db.Model(&domain.Task{}).Where("user_id = ? AND is_archived = ?", userID, false)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// CompletionSpans returns creation/completion pairs for all of the owner's
// completed tasks that carry a completion timestamp, archived included.
func (r *Repository) CompletionSpans(userID string) ([]CompletionSpan, error) {
	var tasks []domain.Task
	err := r.db.Select("created_at, completed_at").
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL", userID, domain.StatusCompleted).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completion spans: %w", err)
	}
	spans := make([]CompletionSpan, 0, len(tasks))
	for _, t := range tasks {
		if t.CompletedAt != nil {
			spans = append(spans, CompletionSpan{CreatedAt: t.CreatedAt, CompletedAt: *t.CompletedAt})
		}
	}
	return spans, nil
}

// FindForExport returns all of the owner's non-archived tasks, newest first.
func (r *Repository) FindForExport(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for export: %w", err)
	}
	return tasks, nil
}

// CreateBatch inserts all tasks inside one transaction; either every record
// is persisted or none are.
func (r *Repository) CreateBatch(tasks []*domain.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("failed to insert imported tasks: %w", err)
		}
		return nil
	})
}
