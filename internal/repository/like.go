package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for like edges.
type LikeRepository interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	defer observability.TrackQuery("Exists", "likes")()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Create(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("Create", "likes")()

	like := models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError(models.CodeAlreadyLiked, "Already liked this post")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("Delete", "likes")()

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return nil
}

