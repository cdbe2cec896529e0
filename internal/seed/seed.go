// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"snapgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var tagPool = []string{
	"travel", "food", "nature", "photography", "art", "fitness", "music",
	"sunset", "coffee", "architecture", "streetart", "hiking", "beach",
	"portrait", "blackandwhite", "minimal", "vintage", "nightlife", "pets",
	"flowers", "cityscape", "adventure", "foodie", "wanderlust",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and saves: %w", err)
	}
	log.Println("✓ Likes and saves created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE saves, likes, post_tags, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include a known login for manual poking around
	if count >= 1 {
		users = append(users, models.User{
			Name:     "Test User",
			Username: "test",
			Email:    "test@example.com",
			Password: string(hashedPassword),
			Bio:      "Resident test account.",
			ImageURL: "https://i.pravatar.cc/150?u=test",
		})
	}

	for i := len(users); i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(1, 999)))
		users = append(users, models.User{
			Name:     first + " " + last,
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hashedPassword),
			Bio:      gofakeit.Sentence(8),
			ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		})
	}

	if err := db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		creator := users[r.Intn(len(users))]
		seedID := gofakeit.UUID()
		post := models.Post{
			Caption:   gofakeit.Sentence(r.Intn(12) + 3),
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seedID),
			ImageID:   seedID,
			Location:  gofakeit.City(),
			CreatorID: creator.ID,
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24*60)) * time.Minute),
		}
		posts = append(posts, post)
	}

	if err := db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}

	// Attach 0-4 random tags per post
	var postTags []models.PostTag
	for _, post := range posts {
		for _, idx := range r.Perm(len(tagPool))[:r.Intn(5)] {
			postTags = append(postTags, models.PostTag{
				PostID: post.ID,
				Tag:    tagPool[idx],
			})
		}
	}
	if len(postTags) > 0 {
		if err := db.CreateInBatches(&postTags, 200).Error; err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// createEngagement sprinkles likes and saves so that counts and the top-liked
// ranking have something to show.
func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var likes []models.Like
	var saves []models.Save
	for _, post := range posts {
		for _, idx := range r.Perm(len(users))[:r.Intn(len(users))] {
			likes = append(likes, models.Like{UserID: users[idx].ID, PostID: post.ID})
		}
		for _, idx := range r.Perm(len(users))[:r.Intn(len(users)/2+1)] {
			saves = append(saves, models.Save{UserID: users[idx].ID, PostID: post.ID})
		}
	}

	if len(likes) > 0 {
		if err := db.CreateInBatches(&likes, 500).Error; err != nil {
			return err
		}
	}
	if len(saves) > 0 {
		if err := db.Omit("Post").CreateInBatches(&saves, 500).Error; err != nil {
			return err
		}
	}
	return nil
}
