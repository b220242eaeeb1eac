package task

import "time"

// Status represents the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidStatus reports whether s is one of the allowed status values.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the allowed priority values.
func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the core domain entity representing a tracked task.
// Tags are stored as a JSON-serialized column; ordering is preserved but
// irrelevant for queries.
type Task struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Status      Status     `gorm:"size:20;not null;default:pending;index" json:"status"`
	Priority    Priority   `gorm:"size:20;not null;default:medium;index" json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	IsArchived  bool       `gorm:"not null;default:false;index" json:"isArchived"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// OwnedBy reports whether the task belongs to the given user.
func (t *Task) OwnedBy(userID string) bool {
	return t.UserID == userID
}
