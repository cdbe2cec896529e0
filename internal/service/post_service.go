// Package service implements the domain logic on top of the repositories:
// ownership checks, duplicate guards, tag parsing and page assembly.
package service

import (
	"context"
	"log/slog"
	"strings"

	"snapgram/internal/middleware"
	"snapgram/internal/models"
	"snapgram/internal/observability"
	"snapgram/internal/pagination"
	"snapgram/internal/repository"
)

// MediaStore is the external collaborator holding post images. The service
// only ever hands it opaque identifiers.
type MediaStore interface {
	Remove(ctx context.Context, imageID string) error
}

// PostService coordinates post reads and mutations.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    MediaStore
}

// CreatePostInput carries the fields for a new post. Tags is the raw
// comma-separated form as submitted by clients.
type CreatePostInput struct {
	CreatorID uint
	Caption   string
	ImageURL  string
	ImageID   string
	Location  string
	Tags      string
}

// UpdatePostInput is a patch for an existing post. Nil fields are left
// unchanged; only caption, location and tags are mutable.
type UpdatePostInput struct {
	ActorID  uint
	PostID   uint
	Caption  *string
	Location *string
	Tags     *string
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, media MediaStore) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		media:    media,
	}
}

// ParseTags turns the comma-separated client form into a tag set: embedded
// whitespace is stripped, empty entries dropped, duplicates collapsed.
// An empty input yields an empty set.
func ParseTags(raw string) []string {
	stripped := strings.Join(strings.Fields(raw), "")
	if stripped == "" {
		return []string{}
	}

	tags := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, tag := range strings.Split(stripped, ",") {
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxCaptionLen = 2200
	const maxLocationLen = 200

	if strings.TrimSpace(in.Caption) == "" {
		return nil, models.NewValidationError("Caption is required")
	}
	if len(in.Caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}
	if len(in.Location) > maxLocationLen {
		return nil, models.NewValidationError("Location too long (max 200 characters)")
	}

	post := &models.Post{
		Caption:   in.Caption,
		ImageURL:  in.ImageURL,
		ImageID:   in.ImageID,
		Location:  in.Location,
		CreatorID: in.CreatorID,
		Tags:      ParseTags(in.Tags),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload so the response carries the creator summary and zeroed counts.
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns one cursor page of the global feed.
func (s *PostService) ListPosts(ctx context.Context, cursor uint, limit int) (pagination.Page[*models.Post], error) {
	limit = pagination.ClampLimit(limit)
	posts, err := s.postRepo.List(ctx, cursor, limit)
	if err != nil {
		return pagination.Page[*models.Post]{}, err
	}
	observability.PagesServed.WithLabelValues("posts").Inc()
	return pagination.NewPage(posts, limit, func(p *models.Post) uint { return p.ID }), nil
}

// SearchPosts returns one cursor page of posts matching the query in caption,
// location, tags or creator name. An empty query fails before any lookup.
func (s *PostService) SearchPosts(ctx context.Context, query string, cursor uint, limit int) (pagination.Page[*models.Post], error) {
	if strings.TrimSpace(query) == "" {
		return pagination.Page[*models.Post]{}, models.NewValidationError("Search query is required")
	}
	limit = pagination.ClampLimit(limit)
	posts, err := s.postRepo.Search(ctx, query, cursor, limit)
	if err != nil {
		return pagination.Page[*models.Post]{}, err
	}
	observability.PagesServed.WithLabelValues("search").Inc()
	return pagination.NewPage(posts, limit, func(p *models.Post) uint { return p.ID }), nil
}

// ListSaved returns one page of the posts the user has saved, newest save
// first. The page metadata carries Save-row cursors even though the items are
// the referenced posts. An unknown user simply gets an empty page.
func (s *PostService) ListSaved(ctx context.Context, userID uint, cursor uint, limit int) (pagination.Page[*models.Post], error) {
	limit = pagination.ClampLimit(limit)
	saves, err := s.postRepo.ListSaved(ctx, userID, cursor, limit)
	if err != nil {
		return pagination.Page[*models.Post]{}, err
	}

	savesPage := pagination.NewPage(saves, limit, func(sv *models.Save) uint { return sv.ID })

	page := pagination.Page[*models.Post]{
		Items:      make([]*models.Post, 0, len(savesPage.Items)),
		Pagination: savesPage.Pagination,
	}
	for _, sv := range savesPage.Items {
		page.Items = append(page.Items, &sv.Post)
	}
	observability.PagesServed.WithLabelValues("saved").Inc()
	return page, nil
}

// TopLiked returns the leaderboard: at most ten posts in non-increasing like
// count order, recomputed on every call.
func (s *PostService) TopLiked(ctx context.Context) ([]*models.Post, error) {
	const leaderboardSize = 10
	return s.postRepo.TopLiked(ctx, leaderboardSize)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.CreatorID != in.ActorID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Caption != nil {
		if strings.TrimSpace(*in.Caption) == "" {
			return nil, models.NewValidationError("Caption cannot be empty")
		}
		post.Caption = *in.Caption
	}
	if in.Location != nil {
		post.Location = *in.Location
	}
	if in.Tags != nil {
		post.Tags = ParseTags(*in.Tags)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post after an ownership check, then reclaims its media
// object. The relation rows go away with the post; a failed media removal is
// logged but does not undo the already-committed delete.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.CreatorID != actorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageID != "" && s.media != nil {
		if err := s.media.Remove(ctx, post.ImageID); err != nil {
			observability.MediaObjects.WithLabelValues("remove", "error").Inc()
			middleware.Logger.WarnContext(ctx, "failed to remove media object for deleted post",
				slog.Uint64("post_id", uint64(postID)),
				slog.String("image_id", post.ImageID),
				slog.String("error", err.Error()),
			)
		} else {
			observability.MediaObjects.WithLabelValues("remove", "ok").Inc()
		}
	}

	return nil
}

// LikePost records the actor's like. Liking a missing post is NotFound,
// liking twice is Conflict. Returns the post with fresh counts.
func (s *PostService) LikePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, actorID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// UnlikePost removes the actor's like; NotFound if there is none.
func (s *PostService) UnlikePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	if err := s.postRepo.Unlike(ctx, actorID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// SavePost bookmarks the post for the actor, with the same guards as LikePost.
func (s *PostService) SavePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.SavePost(ctx, actorID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// UnsavePost removes the actor's bookmark; NotFound if there is none.
func (s *PostService) UnsavePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	if err := s.postRepo.UnsavePost(ctx, actorID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}
