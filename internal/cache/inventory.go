package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	ProfileKeyPrefix = "profile:user:%d"
	ProfilesListKey  = "profiles:all"
	PostKeyPrefix    = "post:%d"
	ReposKeyPrefix   = "repos:%s"
)

const (
	UserTTL        = 5 * time.Minute
	ProfileTTL     = 10 * time.Minute
	ProfileListTTL = 2 * time.Minute
	PostTTL        = 5 * time.Minute
	ReposTTL       = 15 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ReposKey(username string) string {
	return fmt.Sprintf(ReposKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateProfile drops both the per-user profile and the profile list,
// since any profile write changes the list payload.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfilesListKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
