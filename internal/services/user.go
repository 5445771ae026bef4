package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

type userService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
}

// NewUserService creates the admin-facing UserService.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher) domain.UserService {
	return &userService{userRepo: userRepo, hasher: hasher}
}

func (s *userService) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	hash := ""
	if password != "" {
		var err error
		hash, err = s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedOn:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx, ids, from, size)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
