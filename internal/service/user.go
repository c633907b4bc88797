package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cart_api/internal/models"
)

type UserRepository interface {
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id int64, name, email *string) (int64, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

type UserService struct {
	Repo UserRepository
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError(MsgUserNotFound)
	}
	return user, err
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError(MsgEmailConflict)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update; nil fields keep their stored value.
func (s *UserService) UpdateUser(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	if email != nil {
		if err := ValidateEmail(*email); err != nil {
			return nil, err
		}
	}
	if name != nil {
		if err := ValidateName(*name); err != nil {
			return nil, err
		}
	}

	if _, err := s.Repo.UpdateUser(ctx, id, name, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError(MsgEmailConflict)
		}
		return nil, err
	}

	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return 0, err
	}
	return s.Repo.DeleteUser(ctx, id)
}
