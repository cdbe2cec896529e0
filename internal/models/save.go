package models

import "time"

// Save is one user's bookmark of a post, unique per (user_id, post_id).
// Saved-post listings paginate over Save rows ordered by the Save's own
// creation time, so the Save ID doubles as the pagination cursor.
type Save struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post;index" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
