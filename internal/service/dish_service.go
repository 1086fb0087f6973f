package service

import (
	"context"
	"strings"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// DishInput carries dish fields for create and update.
type DishInput struct {
	Name        string
	Price       int64
	Description string
	Image       string
	CategoryID  *string
	Status      domain.DishStatus
}

// DishService manages menu dishes.
type DishService struct {
	dishes     repository.DishRepository
	categories repository.CategoryRepository
}

// NewDishService builds the service.
func NewDishService(dishes repository.DishRepository, categories repository.CategoryRepository) *DishService {
	return &DishService{dishes: dishes, categories: categories}
}

// Create validates and persists a new dish.
func (s *DishService) Create(ctx context.Context, input DishInput) (*domain.Dish, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}
	dish := &domain.Dish{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
		Status:      input.Status,
	}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// Update edits an existing dish.
func (s *DishService) Update(ctx context.Context, id string, input DishInput) (*domain.Dish, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	dish.Name = input.Name
	dish.Price = input.Price
	dish.Description = input.Description
	dish.Image = input.Image
	dish.CategoryID = input.CategoryID
	dish.Status = input.Status
	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dish, nil
}

// Delete removes a dish. Orders keep their snapshots.
func (s *DishService) Delete(ctx context.Context, id string) (*domain.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.dishes.Delete(ctx, id); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dish, nil
}

// Get returns one dish.
func (s *DishService) Get(ctx context.Context, id string) (*domain.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dish, nil
}

// List returns dishes matching the filter.
func (s *DishService) List(ctx context.Context, filter repository.DishFilter) ([]domain.Dish, error) {
	return s.dishes.List(ctx, filter)
}

func (s *DishService) validate(ctx context.Context, input *DishInput) error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Price < 0 {
		fields = append(fields, apperrors.FieldError{Field: "price", Message: "price must not be negative"})
	}
	if input.Status == "" {
		input.Status = domain.DishStatusAvailable
	}
	switch input.Status {
	case domain.DishStatusAvailable, domain.DishStatusUnavailable, domain.DishStatusHidden:
	default:
		fields = append(fields, apperrors.FieldError{Field: "status", Message: "unknown status"})
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			fields = append(fields, apperrors.FieldError{Field: "categoryId", Message: "category does not exist"})
		}
	}
	if len(fields) > 0 {
		return apperrors.NewEntityError(fields...)
	}
	return nil
}
