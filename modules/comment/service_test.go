package comment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	userdomain "github.com/SahilGarg15/TaskFlow/domain/user"
	"github.com/SahilGarg15/TaskFlow/modules/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubTaskPort answers the ownership check with a fixed result. The other
// Port methods come from the embedded nil interface and panic if reached.
type stubTaskPort struct {
	task.Port
	authorizeErr error
}

func (s *stubTaskPort) AuthorizeOwner(_ context.Context, _, _ string) error {
	return s.authorizeErr
}

type stubAuthPort struct {
	users map[string]*userdomain.User
}

func (s *stubAuthPort) ValidateToken(_ context.Context, _ string) (*userdomain.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthPort) GetUser(_ context.Context, userID string) (*userdomain.User, error) {
	if user, ok := s.users[userID]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func setupService(t *testing.T, authorizeErr error) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	auth := &stubAuthPort{users: map[string]*userdomain.User{
		"alice": {ID: "alice", Name: "Alice", Email: "alice@example.com"},
	}}
	return NewService(repo, &stubTaskPort{authorizeErr: authorizeErr}, auth)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("valid comment with author snapshot", func(t *testing.T) {
		s := setupService(t, nil)
		v, err := s.Add(ctx, "alice", "task-1", "  Looks good  ")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if v.Text != "Looks good" {
			t.Errorf("expected trimmed text, got %q", v.Text)
		}
		if v.IsEdited {
			t.Error("expected IsEdited false at creation")
		}
		if v.Author.Name != "Alice" || v.Author.Email != "alice@example.com" {
			t.Errorf("unexpected author %+v", v.Author)
		}
	})

	t.Run("validation", func(t *testing.T) {
		s := setupService(t, nil)
		if _, err := s.Add(ctx, "alice", "task-1", "   "); !errors.Is(err, ErrTextRequired) {
			t.Errorf("Add() error = %v, want %v", err, ErrTextRequired)
		}
		long := strings.Repeat("x", 1001)
		if _, err := s.Add(ctx, "alice", "task-1", long); !errors.Is(err, ErrTextTooLong) {
			t.Errorf("Add() error = %v, want %v", err, ErrTextTooLong)
		}
		exactly := strings.Repeat("x", 1000)
		if _, err := s.Add(ctx, "alice", "task-1", exactly); err != nil {
			t.Errorf("Add() at limit error = %v", err)
		}
	})

	t.Run("limit counts runes not bytes", func(t *testing.T) {
		s := setupService(t, nil)
		multibyte := strings.Repeat("é", 1000)
		if _, err := s.Add(ctx, "alice", "task-1", multibyte); err != nil {
			t.Errorf("Add() with 1000 multibyte characters error = %v", err)
		}
		if _, err := s.Add(ctx, "alice", "task-1", multibyte+"é"); !errors.Is(err, ErrTextTooLong) {
			t.Errorf("Add() over the rune limit error = %v, want %v", err, ErrTextTooLong)
		}
	})

	t.Run("parent ownership failure propagates", func(t *testing.T) {
		gateErr := errors.New("not authorized to access this task")
		s := setupService(t, gateErr)
		if _, err := s.Add(ctx, "alice", "task-1", "hi"); !errors.Is(err, gateErr) {
			t.Errorf("Add() error = %v, want %v", err, gateErr)
		}
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, nil)

	first, err := s.Add(ctx, "alice", "task-1", "first")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// Force distinct creation times so ordering is deterministic.
	c, err := s.repo.FindByID(first.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	c.CreatedAt = c.CreatedAt.Add(-time.Minute)
	if err := s.repo.Save(c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := s.Add(ctx, "alice", "task-1", "second"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add(ctx, "alice", "task-2", "other task"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	resp, err := s.List(ctx, "alice", "task-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 comments, got %d", resp.Count)
	}
	if resp.Comments[0].Text != "second" {
		t.Errorf("expected newest first, got %q", resp.Comments[0].Text)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, nil)

	created, err := s.Add(ctx, "alice", "task-1", "original")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	t.Run("author can edit", func(t *testing.T) {
		v, err := s.Update(ctx, "alice", created.ID, "edited")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if v.Text != "edited" || !v.IsEdited {
			t.Errorf("unexpected result %+v", v)
		}
	})

	t.Run("non-author rejected", func(t *testing.T) {
		if _, err := s.Update(ctx, "bob", created.ID, "hijack"); !errors.Is(err, ErrNotCommentAuthor) {
			t.Errorf("Update() error = %v, want %v", err, ErrNotCommentAuthor)
		}
	})

	t.Run("missing comment", func(t *testing.T) {
		if _, err := s.Update(ctx, "alice", "missing", "x"); !errors.Is(err, ErrCommentNotFound) {
			t.Errorf("Update() error = %v, want %v", err, ErrCommentNotFound)
		}
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, nil)

	created, err := s.Add(ctx, "alice", "task-1", "bye")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := s.Delete(ctx, "bob", created.ID); !errors.Is(err, ErrNotCommentAuthor) {
		t.Fatalf("foreign Delete() error = %v, want %v", err, ErrNotCommentAuthor)
	}
	if err := s.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "alice", created.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrCommentNotFound)
	}
}
