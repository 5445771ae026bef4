package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

const tokenExpiry = 24 * time.Hour

type authService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	issuer   domain.TokenIssuer
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{userRepo: userRepo, hasher: hasher, issuer: issuer}
}

func (s *authService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: name, email and a password of at least 8 characters are required", domain.ErrValidation)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
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

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", domain.ErrValidation)
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrValidation)
	}
	token, err := s.issuer.Issue(user.ID, user.Email, tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
