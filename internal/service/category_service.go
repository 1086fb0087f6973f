package service

import (
	"context"
	"strings"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// CategoryService manages menu categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewEntityError(apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	category := &domain.Category{Name: name, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits an existing category.
func (s *CategoryService) Update(ctx context.Context, id, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewEntityError(apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	category.Name = name
	category.Description = description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
