package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"snapgram/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostTag{},
		&models.Like{},
		&models.Save{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPosts creates n posts for the user with strictly decreasing ages, so
// the newest post has the highest ID and the latest created_at.
func seedPosts(t *testing.T, db *gorm.DB, creatorID uint, n int) []models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Hour)
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			Caption:   fmt.Sprintf("Caption %d", i+1),
			CreatorID: creatorID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&post).Error)
		posts = append(posts, post)
	}
	return posts
}

// appErrorCode extracts the application error code, or "" for plain errors.
func appErrorCode(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
