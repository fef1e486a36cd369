package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripple/internal/models"
)

func strPtr(s string) *string { return &s }

func TestPostServiceCreateMissingFields(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo())

	tests := []struct {
		name        string
		title       *string
		description *string
	}{
		{"Missing Title", nil, strPtr("body")},
		{"Missing Description", strPtr("title"), nil},
		{"Missing Both", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), 1, tt.title, tt.description)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
				t.Fatalf("expected validation app error, got %#v", err)
			}
			if appErr.Message != "Please provide both title and description" {
				t.Fatalf("unexpected message: %q", appErr.Message)
			}
		})
	}
}

func TestPostServiceCreateEmptyStringsPass(t *testing.T) {
	// Only presence is validated; empty strings are accepted.
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 5
		post.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		return nil
	}

	svc := NewPostService(posts, noopUserRepo())
	created, err := svc.CreatePost(context.Background(), 1, strPtr(""), strPtr(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("unexpected id: %d", created.ID)
	}
	if created.CreatedAt != "2024-03-01 12:00:00 UTC" {
		t.Fatalf("unexpected created_at: %q", created.CreatedAt)
	}
}

func TestPostServiceCreateMissingAuthor(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewUserNotFoundError()
	}

	svc := NewPostService(noopPostRepo(), users)
	_, err := svc.CreatePost(context.Background(), 1, strPtr("t"), strPtr("d"))
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestPostServiceDeleteNotAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 42}, nil
	}
	posts.deleteFn = func(context.Context, uint) error {
		t.Fatal("delete must not run for a non-author")
		return nil
	}

	svc := NewPostService(posts, noopUserRepo())
	err := svc.DeletePost(context.Background(), 1, 7)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestPostServiceGetPostCommentLikeCountAlwaysZero(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID:      id,
			Title:   "hello",
			Content: "world",
			User:    models.User{Username: "erin"},
			Comments: []models.Comment{
				{ID: 1, Content: "nice", User: models.User{Username: "frank"}},
				{ID: 2, Content: "agreed", User: models.User{Username: "grace"}},
			},
			Likes: []models.Like{{ID: 1, UserID: 3}},
		}, nil
	}

	svc := NewPostService(posts, noopUserRepo())
	detail, err := svc.GetPost(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Author != "erin" {
		t.Fatalf("unexpected author: %q", detail.Author)
	}
	if detail.LikesCount != 1 {
		t.Fatalf("unexpected likes_count: %d", detail.LikesCount)
	}
	if len(detail.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(detail.Comments))
	}
	for _, c := range detail.Comments {
		if c.LikeCount != 0 {
			t.Fatalf("comment like_count must be zero, got %d", c.LikeCount)
		}
	}
	if detail.Comments[0].AuthorUsername != "frank" {
		t.Fatalf("unexpected comment author: %q", detail.Comments[0].AuthorUsername)
	}
}
