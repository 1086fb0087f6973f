package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// DishHandler exposes dish CRUD endpoints.
type DishHandler struct {
	dishes *service.DishService
}

// NewDishHandler constructs handler.
func NewDishHandler(dishService *service.DishService) *DishHandler {
	return &DishHandler{dishes: dishService}
}

// List handles GET /dishes.
func (h *DishHandler) List(c *fiber.Ctx) error {
	filter := repository.DishFilter{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if status := c.Query("status"); status != "" {
		dishStatus := domain.DishStatus(status)
		filter.Status = &dishStatus
	}

	dishes, err := h.dishes.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "dishes", "data": dto.FromDishes(dishes)})
}

// Get handles GET /dishes/:id.
func (h *DishHandler) Get(c *fiber.Ctx) error {
	dish, err := h.dishes.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "dish", "data": dto.FromDish(dish)})
}

// Create handles POST /dishes.
func (h *DishHandler) Create(c *fiber.Ctx) error {
	var req dto.DishRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dish, err := h.dishes.Create(c.Context(), service.DishInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "dish created",
		"data":    dto.FromDish(dish),
	})
}

// Update handles PUT /dishes/:id.
func (h *DishHandler) Update(c *fiber.Ctx) error {
	var req dto.DishRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dish, err := h.dishes.Update(c.Context(), c.Params("id"), service.DishInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "dish updated", "data": dto.FromDish(dish)})
}

// Delete handles DELETE /dishes/:id.
func (h *DishHandler) Delete(c *fiber.Ctx) error {
	dish, err := h.dishes.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "dish deleted", "data": dto.FromDish(dish)})
}
