package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"gorm.io/gorm"
)

type ProfileUpdate struct {
	FullName *string
	Email    *string
}

type UserService interface {
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
	GetUser(ctx context.Context, actor *models.User, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, update ProfileUpdate) (*models.User, error)
	SetRole(ctx context.Context, actor *models.User, id uint, role models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, id uint) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.FindAll(ctx)
}

func (s *userService) GetUser(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if !actor.CanAccess(id) {
		return nil, ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *models.User, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, actor, actor.ID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return nil, ErrEmailTaken
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("lookup email: %w", err)
			}
			user.Email = email
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) SetRole(ctx context.Context, actor *models.User, id uint, role models.Role) (*models.User, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *models.User, id uint) error {
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
