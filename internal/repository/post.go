package repository

import (
	"context"
	"errors"
	"strings"

	"snapgram/internal/models"
	"snapgram/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// The listing methods implement the "after-cursor, limit N" contract: they
// return up to limit+1 rows strictly after the cursor row in the collection's
// total order (created_at DESC, id DESC). The extra row lets the caller detect
// whether a next page exists. A cursor of 0 means start of the sequence; a
// cursor whose row no longer exists is treated the same way.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, cursor uint, limit int) ([]*models.Post, error)
	Search(ctx context.Context, query string, cursor uint, limit int) ([]*models.Post, error)
	ListSaved(ctx context.Context, userID uint, cursor uint, limit int) ([]*models.Save, error)
	TopLiked(ctx context.Context, n int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	SavePost(ctx context.Context, userID, postID uint) error
	UnsavePost(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAggregates adds correlated subqueries so total likes and saves arrive in
// the same query as the posts. The counts are computed live on every read and
// are never persisted.
func (r *postRepository) withAggregates(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS total_likes, " +
		"(SELECT COUNT(*) FROM saves WHERE saves.post_id = posts.id) AS total_saves")
}

// afterPostCursor restricts db to rows strictly after the cursor post in
// (created_at DESC, id DESC) order. Lookup is by key position, not row offset,
// so pages stay stable under concurrent inserts and deletes. A stale cursor
// restarts from the beginning of the sequence.
func (r *postRepository) afterPostCursor(ctx context.Context, db *gorm.DB, cursor uint) (*gorm.DB, error) {
	if cursor == 0 {
		return db, nil
	}
	var anchor models.Post
	err := r.db.WithContext(ctx).Select("id", "created_at").First(&anchor, cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db, nil
		}
		return nil, models.NewInternalError(err)
	}
	return db.Where(
		"posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?)",
		anchor.CreatedAt, anchor.CreatedAt, anchor.ID,
	), nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Creator").Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// replaceTags rewrites the post_tags rows for a post.
func replaceTags(tx *gorm.DB, postID uint, tags []string) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, models.PostTag{PostID: postID, Tag: tag})
	}
	return tx.Create(&rows).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()
	var post models.Post
	err := r.withAggregates(r.db.WithContext(ctx)).
		Preload("Creator").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichTags(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, cursor uint, limit int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()
	db := r.withAggregates(r.db.WithContext(ctx)).Preload("Creator")
	db, err := r.afterPostCursor(ctx, db, cursor)
	if err != nil {
		return nil, err
	}

	var posts []*models.Post
	if err := db.
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit + 1).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, cursor uint, limit int) ([]*models.Post, error) {
	defer observability.TrackQuery("search", "posts")()
	like := "%" + strings.ToLower(query) + "%"
	db := r.withAggregates(r.db.WithContext(ctx)).
		Preload("Creator").
		Where(
			"LOWER(posts.caption) LIKE ? OR LOWER(posts.location) LIKE ? "+
				"OR EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.tag = ?) "+
				"OR EXISTS (SELECT 1 FROM users WHERE users.id = posts.creator_id AND users.deleted_at IS NULL AND LOWER(users.name) LIKE ?)",
			like, like, query, like,
		)
	db, err := r.afterPostCursor(ctx, db, cursor)
	if err != nil {
		return nil, err
	}

	var posts []*models.Post
	if err := db.
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit + 1).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListSaved pages over the Save relation, not over posts: the order is the
// save's own creation time and the cursor is the Save row's ID.
func (r *postRepository) ListSaved(ctx context.Context, userID uint, cursor uint, limit int) ([]*models.Save, error) {
	defer observability.TrackQuery("list", "saves")()
	db := r.db.WithContext(ctx).
		Preload("Post", func(db *gorm.DB) *gorm.DB { return r.withAggregates(db) }).
		Preload("Post.Creator").
		Where("saves.user_id = ?", userID)

	if cursor != 0 {
		var anchor models.Save
		err := r.db.WithContext(ctx).Select("id", "created_at").First(&anchor, cursor).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewInternalError(err)
		}
		if err == nil {
			db = db.Where(
				"saves.created_at < ? OR (saves.created_at = ? AND saves.id < ?)",
				anchor.CreatedAt, anchor.CreatedAt, anchor.ID,
			)
		}
	}

	var saves []*models.Save
	if err := db.
		Order("saves.created_at DESC, saves.id DESC").
		Limit(limit + 1).
		Find(&saves).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	posts := make([]*models.Post, 0, len(saves))
	for _, s := range saves {
		posts = append(posts, &s.Post)
	}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return saves, nil
}

// TopLiked returns the n most-liked posts, recomputed on every call. Ties are
// broken by newest creation time, then highest ID, so the order is total.
func (r *postRepository) TopLiked(ctx context.Context, n int) ([]*models.Post, error) {
	defer observability.TrackQuery("top_liked", "posts")()
	var posts []*models.Post
	if err := r.withAggregates(r.db.WithContext(ctx)).
		Preload("Creator").
		Order("total_likes DESC, posts.created_at DESC, posts.id DESC").
		Limit(n).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// enrichTags batch-loads post_tags for the given posts and attaches them.
func (r *postRepository) enrichTags(ctx context.Context, posts []*models.Post) error {
	for _, p := range posts {
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var rows []models.PostTag
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id").
		Find(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}

	byPost := make(map[uint][]string, len(posts))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], row.Tag)
	}
	for _, p := range posts {
		if tags, ok := byPost[p.ID]; ok {
			p.Tags = tags
		}
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Creator").Save(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a post and all of its relation rows in one transaction so no
// Like or Save ever references a missing post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("create", "likes")()
	err := r.db.WithContext(ctx).Create(&models.Like{UserID: userID, PostID: postID}).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("delete", "likes")()
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Like", postID)
	}
	return nil
}

func (r *postRepository) SavePost(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("create", "saves")()
	err := r.db.WithContext(ctx).Omit("Post").Create(&models.Save{UserID: userID, PostID: postID}).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post already saved")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) UnsavePost(ctx context.Context, userID, postID uint) error {
	defer observability.TrackQuery("delete", "saves")()
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Save{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Save", postID)
	}
	return nil
}
