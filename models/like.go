package models

import "time"

// Like marks a user's like on a post. One like per (post, user), enforced
// by the unique composite index.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index:idx_post_user,unique;not null" json:"post_id"`
	UserID    uint      `gorm:"index:idx_post_user,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
