package service

import (
	"context"

	"snapgram/internal/models"
	"snapgram/internal/observability"
	"snapgram/internal/pagination"
	"snapgram/internal/repository"
)

// UserService coordinates user directory reads and profile mutations.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateUserInput is a patch for a user record. Nil fields are left unchanged.
type UpdateUserInput struct {
	ActorID  uint
	UserID   uint
	Name     *string
	Bio      *string
	ImageURL *string
	ImageID  *string
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns one cursor page of the user directory with live post counts.
func (s *UserService) ListUsers(ctx context.Context, cursor uint, limit int) (pagination.Page[*models.User], error) {
	limit = pagination.ClampLimit(limit)
	users, err := s.userRepo.List(ctx, cursor, limit)
	if err != nil {
		return pagination.Page[*models.User]{}, err
	}
	observability.PagesServed.WithLabelValues("users").Inc()
	return pagination.NewPage(users, limit, func(u *models.User) uint { return u.ID }), nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if !s.canManage(ctx, in.ActorID, user) {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	const maxNameLen = 120
	const maxBioLen = 500

	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name must be between 1 and 120 characters")
		}
		user.Name = *in.Name
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.ImageURL != nil {
		user.ImageURL = *in.ImageURL
	}
	if in.ImageID != nil {
		user.ImageID = *in.ImageID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.canManage(ctx, actorID, user) {
		return models.NewForbiddenError("You can only delete your own account")
	}

	return s.userRepo.Delete(ctx, userID)
}

// canManage reports whether the actor owns the target account or is an admin.
func (s *UserService) canManage(ctx context.Context, actorID uint, target *models.User) bool {
	if actorID == target.ID {
		return true
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return false
	}
	return actor.Role == models.RoleAdmin
}
