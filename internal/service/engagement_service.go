package service

import (
	"context"
	"fmt"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// LikeResult is the response view for liking a post.
type LikeResult struct {
	PostID    uint   `json:"post_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

// EngagementService manages likes and comments on posts.
type EngagementService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// Like records that the actor liked the post. Liking twice is an error.
func (s *EngagementService) Like(ctx context.Context, actorID, postID uint) (*LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.likeRepo.Exists(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError(models.CodeAlreadyLiked, "Already liked this post")
	}

	if err := s.likeRepo.Create(ctx, actorID, postID); err != nil {
		return nil, err
	}

	return &LikeResult{
		PostID:    post.ID,
		Title:     post.Title,
		CreatedAt: spaceStamp(post.CreatedAt),
		Message:   fmt.Sprintf("%s liked this post!", user.Username),
	}, nil
}

// Unlike removes the actor's like from the post. Unliking a post that was
// never liked is an error.
func (s *EngagementService) Unlike(ctx context.Context, actorID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	}

	exists, err := s.likeRepo.Exists(ctx, actorID, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewConflictError(models.CodeNotLiked, "You have not liked this post yet")
	}

	return s.likeRepo.Delete(ctx, actorID, postID)
}

// AddComment attaches a comment by the actor to the post and returns the new
// comment's id. Whitespace-only content is rejected but otherwise anything
// goes.
func (s *EngagementService) AddComment(ctx context.Context, actorID, postID uint, content string) (uint, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, err
	}
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return 0, err
	}

	if strings.TrimSpace(content) == "" {
		return 0, models.NewConflictError(models.CodeEmptyComment, "Please provide a comment")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return 0, err
	}

	return comment.ID, nil
}
