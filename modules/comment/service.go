package comment

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/SahilGarg15/TaskFlow/domain/comment"
	"github.com/SahilGarg15/TaskFlow/modules/auth"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"github.com/google/uuid"
)

var (
	// ErrTextRequired is returned when the comment text is blank.
	ErrTextRequired = errors.New("comment text is required")
	// ErrTextTooLong is returned when the comment text exceeds the limit.
	ErrTextTooLong = errors.New("comment cannot be more than 1000 characters")
	// ErrNotCommentAuthor is returned when a non-author tries to modify a comment.
	ErrNotCommentAuthor = errors.New("not authorized to modify this comment")
)

// Service implements comment business logic. Parent-task ownership gates
// listing and creation; edits and deletes are author-only regardless of who
// owns the task.
type Service struct {
	repo     *Repository
	taskPort task.Port
	authPort auth.AuthPort
}

// NewService creates a new comment service.
func NewService(repo *Repository, taskPort task.Port, authPort auth.AuthPort) *Service {
	return &Service{repo: repo, taskPort: taskPort, authPort: authPort}
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrTextRequired
	}
	// The limit counts characters, not bytes; multibyte text gets the full
	// thousand.
	if utf8.RuneCountInString(text) > domain.MaxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}

// List returns a task's comments, newest first, each annotated with the
// author's current name and email.
func (s *Service) List(ctx context.Context, userID, taskID string) (*ListCommentsResponse, error) {
	if err := s.taskPort.AuthorizeOwner(ctx, userID, taskID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByTask(taskID)
	if err != nil {
		return nil, err
	}

	// One author lookup per distinct user, not per comment.
	authors := make(map[string]Author)
	views := make([]View, 0, len(comments))
	for _, c := range comments {
		author, err := s.resolveAuthor(ctx, authors, c.UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, toView(c, author))
	}

	return &ListCommentsResponse{Comments: views, Count: len(views)}, nil
}

// Add creates a comment on a task the requester owns.
func (s *Service) Add(ctx context.Context, userID, taskID, text string) (*View, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	if err := s.taskPort.AuthorizeOwner(ctx, userID, taskID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &domain.Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		UserID:    userID,
		Text:      text,
		IsEdited:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	v := toView(c, author)
	return &v, nil
}

// Update replaces a comment's text and marks it edited. Only the author may
// update, whoever owns the parent task.
func (s *Service) Update(ctx context.Context, userID, commentID, text string) (*View, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if !c.AuthoredBy(userID) {
		return nil, ErrNotCommentAuthor
	}

	c.Text = text
	c.IsEdited = true
	if err := s.repo.Save(c); err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, nil, c.UserID)
	if err != nil {
		return nil, err
	}
	v := toView(c, author)
	return &v, nil
}

// Delete removes a comment. Author-only.
func (s *Service) Delete(_ context.Context, userID, commentID string) error {
	c, err := s.repo.FindByID(commentID)
	if err != nil {
		return err
	}
	if !c.AuthoredBy(userID) {
		return ErrNotCommentAuthor
	}
	return s.repo.Delete(commentID)
}

// resolveAuthor looks up a user's identity, memoizing in cache when the
// caller provides one. A missing user still yields a view with only the ID
// so stale comments survive account deletion.
func (s *Service) resolveAuthor(ctx context.Context, cache map[string]Author, userID string) (Author, error) {
	if cache != nil {
		if a, ok := cache[userID]; ok {
			return a, nil
		}
	}

	author := Author{ID: userID}
	if user, err := s.authPort.GetUser(ctx, userID); err == nil {
		author.Name = user.Name
		author.Email = user.Email
	}

	if cache != nil {
		cache[userID] = author
	}
	return author, nil
}

func toView(c *domain.Comment, author Author) View {
	return View{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Author:    author,
		Text:      c.Text,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
