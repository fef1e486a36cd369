package service

import (
	"context"

	"ripple/internal/repository"
)

// FeedComment is a nested comment row inside the feed view.
type FeedComment struct {
	ID        uint   `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// FeedLike identifies a user who liked the post.
type FeedLike struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// FeedPost is one serialized post in the feed, with its comments and likes
// nested in full.
type FeedPost struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	Comments    []FeedComment `json:"comments"`
	Likes       []FeedLike    `json:"likes"`
}

// FeedService assembles per-user post feeds.
type FeedService struct {
	postRepo repository.PostRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// ListOwnPosts returns the posts authored by the actor, newest first.
func (s *FeedService) ListOwnPosts(ctx context.Context, actorID uint) ([]FeedPost, error) {
	posts, err := s.postRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	feed := make([]FeedPost, 0, len(posts))
	for _, post := range posts {
		comments := make([]FeedComment, 0, len(post.Comments))
		for _, c := range post.Comments {
			comments = append(comments, FeedComment{
				ID:        c.ID,
				Author:    c.User.Username,
				Content:   c.Content,
				CreatedAt: isoStamp(c.CreatedAt),
			})
		}

		likes := make([]FeedLike, 0, len(post.Likes))
		for _, l := range post.Likes {
			likes = append(likes, FeedLike{
				ID:       l.UserID,
				Username: l.User.Username,
			})
		}

		feed = append(feed, FeedPost{
			ID:          post.ID,
			Title:       post.Title,
			Description: post.Content,
			CreatedAt:   isoStamp(post.CreatedAt),
			Comments:    comments,
			Likes:       likes,
		})
	}

	return feed, nil
}
