package task

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	domain "github.com/SahilGarg15/TaskFlow/domain/task"
	"github.com/SahilGarg15/TaskFlow/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task is created without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidStatus is returned for a status outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidPriority is returned for a priority outside the allowed set.
	ErrInvalidPriority = errors.New("invalid priority value")
	// ErrNotTaskOwner is returned when a task exists but the requester does
	// not own it. Observably distinct from ErrTaskNotFound.
	ErrNotTaskOwner = errors.New("not authorized to access this task")
	// ErrTaskIDsRequired is returned when a bulk update names no tasks.
	ErrTaskIDsRequired = errors.New("task ids are required")
	// ErrBulkNotOwned is returned when any id in a bulk update is missing or
	// owned by someone else; nothing is written in that case.
	ErrBulkNotOwned = errors.New("not authorized to update some tasks")
	// ErrUpdateRequired is returned when a bulk update carries an empty patch.
	ErrUpdateRequired = errors.New("update is required")
	// ErrImportEmpty is returned when a batch import carries no records.
	ErrImportEmpty = errors.New("import tasks are required")
)

const (
	// DefaultPage is the first page of a listing.
	DefaultPage = 1
	// DefaultPageSize is the listing page size when none is requested.
	DefaultPageSize = 10
)

// Service implements the task store operations with per-owner authorization.
type Service struct {
	repo *Repository
	bus  mono.EventBus
}

// NewService creates a new task Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus wires the event bus; events are best-effort and a nil bus
// disables publishing.
func (s *Service) SetEventBus(bus mono.EventBus) {
	s.bus = bus
}

// authorizeOwner confirms the task exists, then that the requester owns it.
// Existence is checked first so callers can distinguish 404 from 403.
func (s *Service) authorizeOwner(taskID, userID string) (*domain.Task, error) {
	t, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(userID) {
		return nil, ErrNotTaskOwner
	}
	return t, nil
}

// AuthorizeOwner exposes the ownership check to other modules (comment
// creation and listing gate on parent-task ownership).
func (s *Service) AuthorizeOwner(taskID, userID string) error {
	_, err := s.authorizeOwner(taskID, userID)
	return err
}

// List returns a page of the owner's tasks.
func (s *Service) List(req *ListTasksRequest) (*ListTasksResponse, error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.Priority != "" && !domain.ValidPriority(req.Priority) {
		return nil, ErrInvalidPriority
	}

	page := req.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	tasks, total, err := s.repo.List(req.UserID, ListFilter{
		Status:     req.Status,
		Priority:   req.Priority,
		IsArchived: req.IsArchived,
		Search:     req.Search,
		SortBy:     req.SortBy,
		Order:      req.Order,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListTasksResponse{
		Tasks: tasks,
		Count: len(tasks),
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalTasks:  total,
			HasMore:     page < totalPages,
		},
	}, nil
}

// Get returns a single owned task.
func (s *Service) Get(taskID, userID string) (*domain.Task, error) {
	return s.authorizeOwner(taskID, userID)
}

// Create validates the input and persists a new task owned by userID,
// regardless of any owner supplied in the raw request.
func (s *Service) Create(userID string, req *CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := domain.StatusPending
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return nil, ErrInvalidStatus
		}
		status = domain.Status(req.Status)
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		if !domain.ValidPriority(req.Priority) {
			return nil, ErrInvalidPriority
		}
		priority = domain.Priority(req.Priority)
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.StatusCompleted {
		t.CompletedAt = &now
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	s.publishCreated(t)
	return t, nil
}

// validatePatch checks the mutable fields of a partial update.
func validatePatch(p *Patch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Status != nil && !domain.ValidStatus(*p.Status) {
		return ErrInvalidStatus
	}
	if p.Priority != nil && !domain.ValidPriority(*p.Priority) {
		return ErrInvalidPriority
	}
	return nil
}

// Update applies a partial update to an owned task and returns the
// post-update record. CompletedAt is maintained on status transitions: set
// when the task enters completed, cleared when it leaves.
func (s *Service) Update(req *UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.authorizeOwner(req.TaskID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(&req.Update); err != nil {
		return nil, err
	}
	if req.Update.IsZero() {
		return t, nil
	}

	now := time.Now()
	completedNow := false
	p := req.Update

	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		next := domain.Status(*p.Status)
		if next != t.Status {
			if next == domain.StatusCompleted {
				t.CompletedAt = &now
				completedNow = true
			} else {
				t.CompletedAt = nil
			}
		}
		t.Status = next
	}
	if p.Priority != nil {
		t.Priority = domain.Priority(*p.Priority)
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.IsArchived != nil {
		t.IsArchived = *p.IsArchived
	}
	t.UpdatedAt = now

	if err := s.repo.Save(t); err != nil {
		return nil, err
	}

	s.publishUpdated(t)
	if completedNow {
		s.publishCompleted(t)
	}
	return t, nil
}

// Delete removes an owned task. Its comments are intentionally left in
// place; the comment store never cascades.
func (s *Service) Delete(taskID, userID string) error {
	t, err := s.authorizeOwner(taskID, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(taskID); err != nil {
		return err
	}

	if s.bus != nil {
		ev := events.TaskDeletedEvent{TaskID: taskID, UserID: t.UserID, DeletedAt: time.Now()}
		if err := events.TaskDeletedV1.Publish(s.bus, ev, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", taskID, err)
		}
	}
	return nil
}

// BulkUpdate applies one patch to every listed task after verifying each id
// resolves to a task the user owns. Any missing or foreign id rejects the
// whole operation before anything is written.
func (s *Service) BulkUpdate(req *BulkUpdateRequest) (int64, error) {
	if len(req.TaskIDs) == 0 {
		return 0, ErrTaskIDsRequired
	}
	if req.Update.IsZero() {
		return 0, ErrUpdateRequired
	}
	if err := validatePatch(&req.Update); err != nil {
		return 0, err
	}

	owned, err := s.repo.FindOwnedByIDs(req.UserID, req.TaskIDs)
	if err != nil {
		return 0, err
	}
	if len(owned) != len(req.TaskIDs) {
		return 0, ErrBulkNotOwned
	}

	now := time.Now()
	p := req.Update
	updates := map[string]any{"updated_at": now}
	if p.Title != nil {
		updates["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.DueDate != nil {
		updates["due_date"] = *p.DueDate
	}
	if p.IsArchived != nil {
		updates["is_archived"] = *p.IsArchived
	}
	if p.Tags != nil {
		// The tags column stores JSON; map-style Updates bypasses the
		// serializer, so marshal here.
		encoded, err := json.Marshal(*p.Tags)
		if err != nil {
			return 0, err
		}
		updates["tags"] = string(encoded)
	}
	if p.Status != nil {
		updates["status"] = *p.Status
		if domain.Status(*p.Status) != domain.StatusCompleted {
			updates["completed_at"] = nil
		}
	}

	modified, err := s.repo.UpdateWhereOwned(req.UserID, req.TaskIDs, updates)
	if err != nil {
		return 0, err
	}
	if p.Status != nil && domain.Status(*p.Status) == domain.StatusCompleted {
		if err := s.repo.SetCompletedAtWhereNull(req.UserID, req.TaskIDs, now); err != nil {
			return 0, err
		}
	}

	for _, t := range owned {
		s.publishUpdated(t)
	}
	return modified, nil
}

// ArchiveToggle flips the archived flag on an owned task and returns the
// updated record with a message reflecting the new state.
func (s *Service) ArchiveToggle(taskID, userID string) (*ArchiveToggleResponse, error) {
	t, err := s.authorizeOwner(taskID, userID)
	if err != nil {
		return nil, err
	}

	t.IsArchived = !t.IsArchived
	t.UpdatedAt = time.Now()
	if err := s.repo.Save(t); err != nil {
		return nil, err
	}

	msg := "Task unarchived"
	if t.IsArchived {
		msg = "Task archived"
	}
	s.publishUpdated(t)
	return &ArchiveToggleResponse{Task: *t, Message: msg}, nil
}

// Duplicate creates a pending copy of an owned task. Title gains a
// " (Copy)" suffix; due date, archive flag, completion state, and
// timestamps are not copied.
func (s *Service) Duplicate(taskID, userID string) (*domain.Task, error) {
	src, err := s.authorizeOwner(taskID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	copyTask := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       src.Title + " (Copy)",
		Description: src.Description,
		Status:      domain.StatusPending,
		Priority:    src.Priority,
		Tags:        append([]string(nil), src.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(copyTask); err != nil {
		return nil, err
	}

	s.publishCreated(copyTask)
	return copyTask, nil
}

// StatusCounts returns the owner's per-status counts over non-archived tasks.
func (s *Service) StatusCounts(userID string) (*StatusCountsResponse, error) {
	total, err := s.repo.CountByOwner(userID, "")
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.StatusCounts(userID)
	if err != nil {
		return nil, err
	}

	resp := &StatusCountsResponse{Total: total}
	for _, row := range rows {
		switch domain.Status(row.Status) {
		case domain.StatusPending:
			resp.Pending = row.Count
		case domain.StatusInProgress:
			resp.InProgress = row.Count
		case domain.StatusCompleted:
			resp.Completed = row.Count
		}
	}
	return resp, nil
}

// PriorityCounts returns the owner's non-archived priority histogram.
func (s *Service) PriorityCounts(userID string) (map[string]int64, error) {
	rows, err := s.repo.PriorityCounts(userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Count
	}
	return counts, nil
}

// CompletionSeries groups the owner's completions since the given instant by
// UTC calendar day, ascending. Days with no completions are omitted.
func (s *Service) CompletionSeries(userID string, since time.Time) ([]DayCount, error) {
	times, err := s.repo.CompletionTimes(userID, since)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int)
	for _, ts := range times {
		byDay[ts.UTC().Format("2006-01-02")]++
	}
	days := make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		days = append(days, DayCount{Day: day, Count: count})
	}
	sortDayCounts(days)
	return days, nil
}

// sortDayCounts orders the series ascending by day. YYYY-MM-DD sorts
// lexicographically.
func sortDayCounts(days []DayCount) {
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].Day < days[j-1].Day; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
}

// CountOverdue counts non-archived, not-completed tasks due before now.
func (s *Service) CountOverdue(userID string, now time.Time) (int64, error) {
	return s.repo.CountOverdue(userID, now)
}

// CompletionSpans returns the creation/completion pairs used for completion
// latency averaging.
func (s *Service) CompletionSpans(userID string) ([]CompletionSpan, error) {
	return s.repo.CompletionSpans(userID)
}

// ExportTasks returns the owner's non-archived tasks, newest first.
func (s *Service) ExportTasks(userID string) ([]*domain.Task, error) {
	return s.repo.FindForExport(userID)
}

// ImportTasks inserts the already-normalized records as new tasks owned by
// userID in one transaction: either every record lands or none do.
func (s *Service) ImportTasks(userID string, records []ImportTaskRecord) (int, error) {
	if len(records) == 0 {
		return 0, ErrImportEmpty
	}

	now := time.Now()
	tasks := make([]*domain.Task, 0, len(records))
	for _, rec := range records {
		if !domain.ValidStatus(rec.Status) {
			return 0, ErrInvalidStatus
		}
		if !domain.ValidPriority(rec.Priority) {
			return 0, ErrInvalidPriority
		}
		tags := rec.Tags
		if tags == nil {
			tags = []string{}
		}
		tasks = append(tasks, &domain.Task{
			ID:          uuid.New().String(),
			UserID:      userID,
			Title:       rec.Title,
			Description: rec.Description,
			Status:      domain.Status(rec.Status),
			Priority:    domain.Priority(rec.Priority),
			DueDate:     rec.DueDate,
			Tags:        tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.CreateBatch(tasks); err != nil {
		return 0, err
	}

	if s.bus != nil {
		ev := events.TasksImportedEvent{UserID: userID, Count: len(tasks), ImportedAt: now}
		if err := events.TasksImportedV1.Publish(s.bus, ev, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TasksImported event for user %s: %v", userID, err)
		}
	}
	return len(tasks), nil
}

func (s *Service) publishCreated(t *domain.Task) {
	if s.bus == nil {
		return
	}
	ev := events.TaskCreatedEvent{TaskID: t.ID, Title: t.Title, UserID: t.UserID, CreatedAt: t.CreatedAt}
	if err := events.TaskCreatedV1.Publish(s.bus, ev, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", t.ID, err)
	}
}

func (s *Service) publishUpdated(t *domain.Task) {
	if s.bus == nil {
		return
	}
	ev := events.TaskUpdatedEvent{TaskID: t.ID, UserID: t.UserID, UpdatedAt: time.Now()}
	if err := events.TaskUpdatedV1.Publish(s.bus, ev, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskUpdated event for task %s: %v", t.ID, err)
	}
}

func (s *Service) publishCompleted(t *domain.Task) {
	if s.bus == nil || t.CompletedAt == nil {
		return
	}
	ev := events.TaskCompletedEvent{TaskID: t.ID, UserID: t.UserID, CompletedAt: *t.CompletedAt}
	if err := events.TaskCompletedV1.Publish(s.bus, ev, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", t.ID, err)
	}
}
