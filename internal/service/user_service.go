package service

import (
	"context"
	"errors"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.UserRepository
	logger *zerolog.Logger
}

func NewUserService(repo domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Resolve is the identity gateway: the id is trusted, only existence is checked.
func (s *UserService) Resolve(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.MsgUserNotFound)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, domain.NewEmailConflictError(user.Email)
		}
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.Resolve(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, domain.NewEmailConflictError(user.Email)
		}
		return nil, notFound(err, domain.MsgUserNotFound)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return notFound(err, domain.MsgUserNotFound)
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
