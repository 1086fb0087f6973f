package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// TableHandler exposes table CRUD endpoints.
type TableHandler struct {
	tables *service.TableService
}

// NewTableHandler constructs handler.
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tables: tableService}
}

// List handles GET /tables.
func (h *TableHandler) List(c *fiber.Ctx) error {
	tables, err := h.tables.List(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		out = append(out, dto.FromTable(&tables[i], h.tables.GuestLink(&tables[i])))
	}
	return c.JSON(fiber.Map{"message": "tables", "data": out})
}

// Get handles GET /tables/:number.
func (h *TableHandler) Get(c *fiber.Ctx) error {
	number, err := tableNumber(c)
	if err != nil {
		return err
	}
	table, err := h.tables.Get(c.Context(), number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "table", "data": dto.FromTable(table, h.tables.GuestLink(table))})
}

// Create handles POST /tables.
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	table, err := h.tables.Create(c.Context(), req.Number, req.Capacity, req.Status)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "table created",
		"data":    dto.FromTable(table, h.tables.GuestLink(table)),
	})
}

// Update handles PUT /tables/:number.
func (h *TableHandler) Update(c *fiber.Ctx) error {
	number, err := tableNumber(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	table, err := h.tables.Update(c.Context(), number, service.TableUpdate{
		Capacity:    req.Capacity,
		Status:      req.Status,
		ChangeToken: req.ChangeToken,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "table updated", "data": dto.FromTable(table, h.tables.GuestLink(table))})
}

// Delete handles DELETE /tables/:number.
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	number, err := tableNumber(c)
	if err != nil {
		return err
	}
	table, err := h.tables.Delete(c.Context(), number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "table deleted", "data": dto.FromTable(table, h.tables.GuestLink(table))})
}

func tableNumber(c *fiber.Ctx) (int, error) {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid table number")
	}
	return number, nil
}
