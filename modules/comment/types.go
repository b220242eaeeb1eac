package comment

import (
	"context"
	"time"
)

// Author is the comment author's identity snapshot, resolved from the auth
// module at read time rather than stored alongside the comment.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View is a comment annotated with its author.
type View struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	IsEdited  bool      `json:"isEdited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListCommentsRequest asks for a task's comments; the requester must own the
// parent task.
type ListCommentsRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ListCommentsResponse carries the task's comments, newest first.
type ListCommentsResponse struct {
	Comments []View `json:"comments"`
	Count    int    `json:"count"`
}

// AddCommentRequest creates a comment on an owned task. The author is always
// the requester.
type AddCommentRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Text   string `json:"text"`
}

// UpdateCommentRequest replaces a comment's text; author-only.
type UpdateCommentRequest struct {
	UserID    string `json:"user_id"`
	CommentID string `json:"comment_id"`
	Text      string `json:"text"`
}

// CommentReply wraps a single annotated comment crossing the service bus.
type CommentReply struct {
	Comment View `json:"comment"`
}

// DeleteCommentRequest removes a comment; author-only.
type DeleteCommentRequest struct {
	UserID    string `json:"user_id"`
	CommentID string `json:"comment_id"`
}

// DeleteCommentResponse is the response for deleting a comment.
type DeleteCommentResponse struct {
	Deleted bool `json:"deleted"`
}

// Port defines the interface other modules use to reach comments.
type Port interface {
	List(ctx context.Context, userID, taskID string) (*ListCommentsResponse, error)
	Add(ctx context.Context, userID, taskID, text string) (*View, error)
	Update(ctx context.Context, userID, commentID, text string) (*View, error)
	Delete(ctx context.Context, userID, commentID string) error
}
