package services

import (
	"context"
	"errors"
	"fmt"

	"eventboard/internal/domain"
)

type categoryService struct {
	categoryRepo domain.CategoryRepository
	eventRepo    domain.EventRepository
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categoryRepo domain.CategoryRepository, eventRepo domain.EventRepository) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, eventRepo: eventRepo}
}

func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	category := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: category name already in use", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: category name already in use", domain.ErrConflict)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return fmt.Errorf("get category: %w", err)
	}
	inUse, err := s.eventRepo.ExistsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("check category usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: category has events", domain.ErrConflict)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, from, size int) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx, from, size)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}
