package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"snapgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listFn       func(context.Context, uint, int) ([]*models.Post, error)
	searchFn     func(context.Context, string, uint, int) ([]*models.Post, error)
	listSavedFn  func(context.Context, uint, uint, int) ([]*models.Save, error)
	topLikedFn   func(context.Context, int) ([]*models.Post, error)
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) error
	likeFn       func(context.Context, uint, uint) error
	unlikeFn     func(context.Context, uint, uint) error
	savePostFn   func(context.Context, uint, uint) error
	unsavePostFn func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, cursor uint, limit int) ([]*models.Post, error) {
	return s.listFn(ctx, cursor, limit)
}
func (s *postRepoStub) Search(ctx context.Context, query string, cursor uint, limit int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, cursor, limit)
}
func (s *postRepoStub) ListSaved(ctx context.Context, userID, cursor uint, limit int) ([]*models.Save, error) {
	return s.listSavedFn(ctx, userID, cursor, limit)
}
func (s *postRepoStub) TopLiked(ctx context.Context, n int) ([]*models.Post, error) {
	return s.topLikedFn(ctx, n)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) SavePost(ctx context.Context, userID, postID uint) error {
	return s.savePostFn(ctx, userID, postID)
}
func (s *postRepoStub) UnsavePost(ctx context.Context, userID, postID uint) error {
	return s.unsavePostFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _ uint, _ int) ([]*models.Post, error) { return nil, nil },
		searchFn: func(_ context.Context, _ string, _ uint, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listSavedFn: func(_ context.Context, _, _ uint, _ int) ([]*models.Save, error) { return nil, nil },
		topLikedFn:  func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:    func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		likeFn:      func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:    func(_ context.Context, _, _ uint) error { return nil },
		savePostFn:  func(_ context.Context, _, _ uint) error { return nil },
		unsavePostFn: func(_ context.Context, _, _ uint) error {
			return nil
		},
	}
}

// mediaStoreStub records Remove calls.
type mediaStoreStub struct {
	removed []string
	err     error
}

func (m *mediaStoreStub) Remove(_ context.Context, imageID string) error {
	m.removed = append(m.removed, imageID)
	return m.err
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "sunset", []string{"sunset"}},
		{"comma separated", "sunset,beach", []string{"sunset", "beach"}},
		{"spaces stripped everywhere", " sun set , bea ch ", []string{"sunset", "beach"}},
		{"empty entries dropped", "a,,b,", []string{"a", "b"}},
		{"duplicates collapsed", "go,go,go", []string{"go"}},
		{"only whitespace", "   ", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.raw))
		})
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostInput{CreatorID: 1, Caption: "   "})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, appErrCode(err))

	long := make([]byte, 2201)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.CreatePost(ctx, CreatePostInput{CreatorID: 1, Caption: string(long)})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, appErrCode(err))
}

func TestCreatePostParsesTagsAndReloads(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 42
		created = p
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Caption: "reloaded"}, nil
	}

	svc := NewPostService(repo, nil, nil)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		CreatorID: 7,
		Caption:   "hello",
		Tags:      "sun set, beach",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, []string{"sunset", "beach"}, created.Tags)
	assert.Equal(t, "reloaded", post.Caption)
}

func TestSearchPostsEmptyQuery(t *testing.T) {
	repo := noopPostRepo()
	repo.searchFn = func(_ context.Context, _ string, _ uint, _ int) ([]*models.Post, error) {
		t.Fatal("repository must not be consulted for an empty query")
		return nil, nil
	}
	svc := NewPostService(repo, nil, nil)

	_, err := svc.SearchPosts(context.Background(), "   ", 0, 9)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, appErrCode(err))
}

func TestListPostsBuildsPage(t *testing.T) {
	repo := noopPostRepo()
	repo.listFn = func(_ context.Context, cursor uint, limit int) ([]*models.Post, error) {
		assert.Equal(t, uint(0), cursor)
		assert.Equal(t, 3, limit)
		// limit+1 rows back means there is a next page
		return []*models.Post{{ID: 10}, {ID: 9}, {ID: 8}, {ID: 7}}, nil
	}
	svc := NewPostService(repo, nil, nil)

	page, err := svc.ListPosts(context.Background(), 0, 3)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.True(t, page.Pagination.HasNextPage)
	require.NotNil(t, page.Pagination.NextCursor)
	assert.Equal(t, uint(8), *page.Pagination.NextCursor)
}

func TestListPostsLastPage(t *testing.T) {
	repo := noopPostRepo()
	repo.listFn = func(_ context.Context, _ uint, _ int) ([]*models.Post, error) {
		return []*models.Post{{ID: 2}, {ID: 1}}, nil
	}
	svc := NewPostService(repo, nil, nil)

	page, err := svc.ListPosts(context.Background(), 0, 9)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.Pagination.HasNextPage)
	assert.Nil(t, page.Pagination.NextCursor)
}

func TestListSavedProjectsPostsKeepsSaveCursor(t *testing.T) {
	repo := noopPostRepo()
	repo.listSavedFn = func(_ context.Context, userID, cursor uint, limit int) ([]*models.Save, error) {
		assert.Equal(t, uint(5), userID)
		return []*models.Save{
			{ID: 30, Post: models.Post{ID: 300}},
			{ID: 20, Post: models.Post{ID: 200}},
			{ID: 10, Post: models.Post{ID: 100}},
		}, nil
	}
	svc := NewPostService(repo, nil, nil)

	page, err := svc.ListSaved(context.Background(), 5, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, uint(300), page.Items[0].ID)
	assert.Equal(t, uint(200), page.Items[1].ID)
	// The cursor is the Save row's ID, not the post's.
	require.NotNil(t, page.Pagination.NextCursor)
	assert.Equal(t, uint(20), *page.Pagination.NextCursor)
}

func TestTopLikedRequestsTen(t *testing.T) {
	repo := noopPostRepo()
	repo.topLikedFn = func(_ context.Context, n int) ([]*models.Post, error) {
		assert.Equal(t, 10, n)
		return []*models.Post{{ID: 1}}, nil
	}
	svc := NewPostService(repo, nil, nil)

	posts, err := svc.TopLiked(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUpdatePostOwnership(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, CreatorID: 1, Caption: "original"}, nil
	}
	svc := NewPostService(repo, nil, nil)

	caption := "stolen"
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		ActorID: 2,
		PostID:  10,
		Caption: &caption,
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, appErrCode(err))
}

func TestUpdatePostMissingIsNotFound(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(repo, nil, nil)

	caption := "whatever"
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{ActorID: 1, PostID: 99, Caption: &caption})
	require.Error(t, err)
	// NotFound, not Forbidden: post existence is checked before ownership.
	assert.Equal(t, models.CodeNotFound, appErrCode(err))
}

func TestUpdatePostPatchSemantics(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID:        id,
			CreatorID: 1,
			Caption:   "keep me",
			Location:  "Lisbon",
			Tags:      []string{"old"},
		}, nil
	}
	var saved *models.Post
	repo.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(repo, nil, nil)

	tags := "new , shiny"
	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		ActorID: 1, PostID: 3, Tags: &tags,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "keep me", post.Caption)
	assert.Equal(t, "Lisbon", post.Location)
	assert.Equal(t, []string{"new", "shiny"}, post.Tags)
}

func TestDeletePostRemovesMedia(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, CreatorID: 1, ImageID: "img-abc"}, nil
	}
	media := &mediaStoreStub{}
	svc := NewPostService(repo, nil, media)

	require.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	assert.Equal(t, []string{"img-abc"}, media.removed)
}

func TestDeletePostMediaFailureDoesNotFail(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, CreatorID: 1, ImageID: "img-abc"}, nil
	}
	media := &mediaStoreStub{err: errors.New("storage offline")}
	svc := NewPostService(repo, nil, media)

	// The post is already gone; a failed cleanup is logged, not surfaced.
	assert.NoError(t, svc.DeletePost(context.Background(), 1, 10))
}

func TestDeletePostForbiddenForNonOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, CreatorID: 1}, nil
	}
	repo.deleteFn = func(_ context.Context, _ uint) error {
		t.Fatal("delete must not run for a non-owner")
		return nil
	}
	svc := NewPostService(repo, nil, nil)

	err := svc.DeletePost(context.Background(), 2, 10)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, appErrCode(err))
}

func TestLikePostMissingPost(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		t.Fatal("like must not run when the post is missing")
		return nil
	}
	svc := NewPostService(repo, nil, nil)

	_, err := svc.LikePost(context.Background(), 1, 99)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, appErrCode(err))
}

func TestLikePostReturnsFreshCounts(t *testing.T) {
	repo := noopPostRepo()
	calls := 0
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		calls++
		likes := 0
		if calls > 1 {
			likes = 1
		}
		return &models.Post{ID: id, TotalLikes: likes, CreatedAt: time.Now()}, nil
	}
	svc := NewPostService(repo, nil, nil)

	post, err := svc.LikePost(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, post.TotalLikes)
}

func TestLikePostConflictPassesThrough(t *testing.T) {
	repo := noopPostRepo()
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		return models.NewConflictError("Post already liked")
	}
	svc := NewPostService(repo, nil, nil)

	_, err := svc.LikePost(context.Background(), 1, 5)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, appErrCode(err))
}

func appErrCode(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return fmt.Sprintf("not an AppError: %v", err)
}
