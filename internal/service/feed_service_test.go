package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"
)

func TestFeedServiceListOwnPosts(t *testing.T) {
	posts := noopPostRepo()
	posts.getByUserIDFn = func(_ context.Context, userID uint) ([]models.Post, error) {
		return []models.Post{
			{
				ID:        2,
				Title:     "Test post 2",
				Content:   "second body",
				UserID:    userID,
				CreatedAt: time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
				Comments: []models.Comment{
					{ID: 4, Content: "hi", User: models.User{Username: "ivan"},
						CreatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
				},
				Likes: []models.Like{
					{ID: 9, UserID: 5, User: models.User{ID: 5, Username: "judy"}},
				},
			},
			{
				ID:        1,
				Title:     "Test post 1",
				Content:   "first body",
				UserID:    userID,
				CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			},
		}, nil
	}

	svc := NewFeedService(posts)
	feed, err := svc.ListOwnPosts(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(feed))
	}

	// Repository order (newest first) is preserved.
	if feed[0].ID != 2 || feed[1].ID != 1 {
		t.Fatalf("unexpected order: %d, %d", feed[0].ID, feed[1].ID)
	}
	if feed[0].Description != "second body" {
		t.Fatalf("content must surface as description, got %q", feed[0].Description)
	}
	if feed[0].CreatedAt != "2024-03-02T09:30:00Z" {
		t.Fatalf("unexpected created_at: %q", feed[0].CreatedAt)
	}

	if len(feed[0].Comments) != 1 || feed[0].Comments[0].Author != "ivan" {
		t.Fatalf("unexpected comments: %#v", feed[0].Comments)
	}
	if len(feed[0].Likes) != 1 || feed[0].Likes[0].ID != 5 || feed[0].Likes[0].Username != "judy" {
		t.Fatalf("unexpected likes: %#v", feed[0].Likes)
	}

	// Posts without engagement serialize with empty arrays, not null.
	if feed[1].Comments == nil || feed[1].Likes == nil {
		t.Fatal("comments and likes must be non-nil")
	}
}
