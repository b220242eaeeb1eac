package comment

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// adapter wraps the comment ServiceContainer for type-safe cross-module calls.
type adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a Port backed by the comment module's service container.
func NewAdapter(container mono.ServiceContainer) Port {
	if container == nil {
		panic("comment adapter requires non-nil ServiceContainer")
	}
	return &adapter{container: container}
}

func (a *adapter) List(ctx context.Context, userID, taskID string) (*ListCommentsResponse, error) {
	req := ListCommentsRequest{UserID: userID, TaskID: taskID}
	var resp ListCommentsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-comments", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *adapter) Add(ctx context.Context, userID, taskID, text string) (*View, error) {
	req := AddCommentRequest{UserID: userID, TaskID: taskID, Text: text}
	var resp CommentReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "add-comment", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp.Comment, nil
}

func (a *adapter) Update(ctx context.Context, userID, commentID, text string) (*View, error) {
	req := UpdateCommentRequest{UserID: userID, CommentID: commentID, Text: text}
	var resp CommentReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-comment", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp.Comment, nil
}

func (a *adapter) Delete(ctx context.Context, userID, commentID string) error {
	req := DeleteCommentRequest{UserID: userID, CommentID: commentID}
	var resp DeleteCommentResponse
	return helper.CallRequestReplyService(
		ctx, a.container, "delete-comment", json.Marshal, json.Unmarshal, &req, &resp,
	)
}
