package models

import (
	"time"
)

// Post represents an image post in the feed.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Caption   string `gorm:"type:text;not null" json:"caption"`
	ImageURL  string `json:"image_url"`
	ImageID   string `gorm:"index" json:"image_id"`
	Location  string `gorm:"size:200" json:"location"`
	CreatorID uint   `gorm:"not null;index" json:"creator_id"`
	Creator   User   `gorm:"foreignKey:CreatorID" json:"creator"`
	// Tags is populated from post_tags by the repository; the association rows
	// are the source of truth so tag search stays exact and case-sensitive.
	Tags []string `gorm:"-" json:"tags"`
	// TotalLikes is not persisted; computed at query time
	TotalLikes int `gorm:"->" json:"total_likes"`
	// TotalSaves is not persisted; computed at query time
	TotalSaves int       `gorm:"->" json:"total_saves"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostTag is one tag attached to a post. Tags live in their own table rather
// than a serialized column: SQLite's LIKE is case-insensitive while Postgres'
// is not, but a plain `tag = ?` equality is exact on both.
type PostTag struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	PostID uint   `gorm:"not null;uniqueIndex:idx_post_tag" json:"-"`
	Tag    string `gorm:"size:60;not null;uniqueIndex:idx_post_tag" json:"tag"`
}

// TableName specifies the table name for GORM.
func (PostTag) TableName() string {
	return "post_tags"
}
