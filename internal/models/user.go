// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:120;not null" json:"name"`
	Username        string `gorm:"size:30;unique;not null" json:"username"`
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Bio             string `json:"bio"`
	ImageURL        string `json:"image_url"`
	ImageID         string `json:"image_id"`
	Role            string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsEmailVerified bool   `gorm:"not null;default:false" json:"is_email_verified"`
	// TotalPosts is not persisted; computed at query time
	TotalPosts int            `gorm:"->" json:"total_posts"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Posts      []Post         `gorm:"foreignKey:CreatorID" json:"posts,omitempty"`
}
