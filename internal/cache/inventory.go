package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	PostKeyPrefix       = "post:%d"
	PostDetailKeyPrefix = "post:%d:detail"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 30 * time.Minute
	PostDetailTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostDetailKey(postID uint) string {
	return fmt.Sprintf(PostDetailKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops both the row cache and the assembled detail view for
// the post. Likes and comments mutate the detail, so every engagement write
// goes through here.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostDetailKey(postID))
}
