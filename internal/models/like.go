package models

import "time"

// Like records that a user liked a post. The (post_id, user_id) pair is
// unique, which makes the set semantics enforceable with a single atomic
// insert. Likes are hard-deleted on unlike.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
