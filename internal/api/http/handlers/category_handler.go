package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// CategoryHandler exposes category CRUD endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler constructs handler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categoryService}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "categories", "data": dto.FromCategories(categories)})
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	category, err := h.categories.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "category", "data": dto.FromCategory(category)})
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.categories.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "category created",
		"data":    dto.FromCategory(category),
	})
}

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.categories.Update(c.Context(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "category updated", "data": dto.FromCategory(category)})
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	category, err := h.categories.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "category deleted", "data": dto.FromCategory(category)})
}
