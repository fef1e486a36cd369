package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostCreated is the response view for a newly created post.
type PostCreated struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// PostDetailComment is a flattened comment row inside the post-detail view.
// LikeCount is always zero: comments carry no like relation, the field is
// part of the response shape regardless.
type PostDetailComment struct {
	ID             uint   `json:"id"`
	AuthorUsername string `json:"author__username"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
	LikeCount      int    `json:"like_count"`
}

// PostDetail is the public detail view of a post.
type PostDetail struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Author     string              `json:"author"`
	CreatedAt  string              `json:"created_at"`
	UpdatedAt  string              `json:"updated_at"`
	LikesCount int                 `json:"likes_count"`
	Comments   []PostDetailComment `json:"comments"`
}

// PostService provides post creation, lookup, and deletion.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost creates a post for the author. Title and description are
// pointers because only their PRESENCE is validated; empty strings pass.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, title, description *string) (*PostCreated, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	if title == nil || description == nil {
		return nil, models.NewValidationError("Please provide both title and description")
	}

	post := &models.Post{
		Title:   *title,
		Content: *description,
		UserID:  authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return &PostCreated{
		ID:        post.ID,
		Title:     post.Title,
		CreatedAt: spaceStamp(post.CreatedAt),
	}, nil
}

// GetPost returns the public detail view of a post, comments flattened with
// their author usernames.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments := make([]PostDetailComment, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, PostDetailComment{
			ID:             c.ID,
			AuthorUsername: c.User.Username,
			Content:        c.Content,
			CreatedAt:      isoStamp(c.CreatedAt),
		})
	}

	return &PostDetail{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		Author:     post.User.Username,
		CreatedAt:  isoStamp(post.CreatedAt),
		UpdatedAt:  isoStamp(post.UpdatedAt),
		LikesCount: len(post.Likes),
		Comments:   comments,
	}, nil
}

// DeletePost removes a post owned by the actor, cascading to its comments
// and likes.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != actorID {
		return models.NewForbiddenError("You are not authorized to delete this post")
	}

	return s.postRepo.Delete(ctx, postID)
}
