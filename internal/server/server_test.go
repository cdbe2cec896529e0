package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"snapgram/internal/config"
	"snapgram/internal/media"
	"snapgram/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

// newTestServer builds a Server over an in-memory database without Redis.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)
	store, err := media.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret-for-handler-tests",
		Env:       "test",
	}
	return NewServerWithDeps(cfg, db, nil, store), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
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

func createTestPosts(t *testing.T, db *gorm.DB, creatorID uint, n int) []models.Post {
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

// pageBody mirrors the JSON shape of a paginated response.
type pageBody struct {
	Items      []models.Post `json:"items"`
	Pagination struct {
		NextCursor  *uint `json:"next_cursor"`
		HasNextPage bool  `json:"has_next_page"`
	} `json:"pagination"`
}

func decodePage(t *testing.T, resp *http.Response) pageBody {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var page pageBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var v T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}
