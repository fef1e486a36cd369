package service

import (
	"context"
	"fmt"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// Profile is the rendered profile view for the acting user.
type Profile struct {
	Username       string `json:"username"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// SocialService manages the directed follow graph between users.
type SocialService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewSocialService returns a new SocialService.
func NewSocialService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *SocialService {
	return &SocialService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Profile returns the username and follower/following counts for the user.
func (s *SocialService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Username:       user.Username,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// Follow creates a follow edge from actor to target and returns the success
// message. Following a user twice is an error, not a no-op. There is no
// self-follow guard.
func (s *SocialService) Follow(ctx context.Context, actorID, targetID uint) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return "", err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", err
	}

	exists, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", models.NewConflictError(models.CodeAlreadyFollowing, "Already following this user")
	}

	if err := s.followRepo.Create(ctx, actorID, targetID); err != nil {
		return "", err
	}

	return fmt.Sprintf("You are now following %s!", target.Username), nil
}

// Unfollow removes the follow edge from actor to target and returns the
// success message. Unfollowing without an edge is an error.
func (s *SocialService) Unfollow(ctx context.Context, actorID, targetID uint) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return "", err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", err
	}

	exists, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", models.NewConflictError(models.CodeNotFollowing, "You are not following this user")
	}

	if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
		return "", err
	}

	return fmt.Sprintf("You have unfollowed %s!", target.Username), nil
}
