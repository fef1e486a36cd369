package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripple/internal/models"
)

func TestEngagementServiceLikeTwice(t *testing.T) {
	likes := noopLikeRepo()
	likes.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewEngagementService(noopPostRepo(), noopUserRepo(), likes, noopCommentRepo())
	_, err := svc.Like(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("expected already-liked error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAlreadyLiked {
		t.Fatalf("expected already-liked app error, got %#v", err)
	}
}

func TestEngagementServiceLikeResult(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID:        id,
			Title:     "Test post 1",
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "heidi"}, nil
	}

	svc := NewEngagementService(posts, users, noopLikeRepo(), noopCommentRepo())
	result, err := svc.Like(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PostID != 10 || result.Title != "Test post 1" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.CreatedAt != "2024-03-01 12:00:00 UTC" {
		t.Fatalf("unexpected created_at: %q", result.CreatedAt)
	}
	if result.Message != "heidi liked this post!" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestEngagementServiceLikeMissingPostPropagates(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return nil, models.NewPostNotFoundError()
	}

	svc := NewEngagementService(posts, noopUserRepo(), noopLikeRepo(), noopCommentRepo())
	_, err := svc.Like(context.Background(), 1, 99)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	// The error keeps its repository code; the handler decides the status.
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestEngagementServiceUnlikeWithoutLike(t *testing.T) {
	svc := NewEngagementService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo())
	err := svc.Unlike(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("expected not-liked error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotLiked {
		t.Fatalf("expected not-liked app error, got %#v", err)
	}
}

func TestEngagementServiceUnlikeSuccess(t *testing.T) {
	likes := noopLikeRepo()
	likes.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	var deleted bool
	likes.deleteFn = func(context.Context, uint, uint) error {
		deleted = true
		return nil
	}

	svc := NewEngagementService(noopPostRepo(), noopUserRepo(), likes, noopCommentRepo())
	if err := svc.Unlike(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected like edge to be deleted")
	}
}

func TestEngagementServiceAddCommentEmpty(t *testing.T) {
	svc := NewEngagementService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo())

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := svc.AddComment(context.Background(), 1, 10, content)
		if err == nil {
			t.Fatalf("expected empty-comment error for %q", content)
		}
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeEmptyComment {
			t.Fatalf("expected empty-comment app error, got %#v", err)
		}
	}
}

func TestEngagementServiceAddCommentSuccess(t *testing.T) {
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, comment *models.Comment) error {
		comment.ID = 33
		return nil
	}

	svc := NewEngagementService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), comments)
	id, err := svc.AddComment(context.Background(), 1, 10, "first!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 33 {
		t.Fatalf("unexpected comment id: %d", id)
	}
}
