package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	UserCountKey       = "users:count"
	BlacklistKeyPrefix = "blacklist:%s"
	LikeCountKeyPrefix = "photo:%d:likes"
)

const (
	UserTTL      = 5 * time.Minute
	UserCountTTL = 1 * time.Minute
	LikeCountTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyPrefix, jti)
}

func LikeCountKey(photoID uint) string {
	return fmt.Sprintf(LikeCountKeyPrefix, photoID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateLikeCount(ctx context.Context, photoID uint) {
	Invalidate(ctx, LikeCountKey(photoID))
}

func InvalidateUserCount(ctx context.Context) {
	Invalidate(ctx, UserCountKey)
}
