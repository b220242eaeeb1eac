package comment

import (
	"errors"
	"fmt"

	domain "github.com/SahilGarg15/TaskFlow/domain/comment"
	"gorm.io/gorm"
)

// ErrCommentNotFound is returned when a comment does not exist.
var ErrCommentNotFound = errors.New("comment not found")

// Repository provides access to comment storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for comments.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Comment{})
}

// Create saves a new comment.
func (r *Repository) Create(c *domain.Comment) error {
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID retrieves a comment by its ID.
func (r *Repository) FindByID(id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &c, nil
}

// ListByTask retrieves a task's comments, newest first.
func (r *Repository) ListByTask(taskID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Save persists the full comment record.
func (r *Repository) Save(c *domain.Comment) error {
	if err := r.db.Save(c).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// Delete removes a comment permanently.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Comment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
