package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrderHandler exposes staff-facing order endpoints.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orderService}
}

// List handles GET /orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if guestID := c.Query("guestId"); guestID != "" {
		filter.GuestID = &guestID
	}
	if tableNumber := c.QueryInt("tableNumber"); tableNumber > 0 {
		filter.TableNumber = &tableNumber
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.OrderStatus{domain.OrderStatus(status)}
	}
	if from := c.Query("fromDate"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid fromDate")
		}
		filter.CreatedFrom = &parsed
	}
	if to := c.Query("toDate"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid toDate")
		}
		filter.CreatedTo = &parsed
	}

	orders, err := h.orders.ListOrders(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "orders", "data": dto.FromOrders(orders)})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "order", "data": dto.FromOrder(order)})
}

// Update handles PUT /orders/:id.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	order, err := h.orders.UpdateOrder(c.Context(), c.Params("id"), service.OrderUpdate{
		Status:   req.Status,
		Quantity: req.Quantity,
	}, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "order updated", "data": dto.FromOrder(order)})
}

// Create handles POST /orders: staff place orders on behalf of a guest.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.GuestID == "" {
		return fiber.NewError(http.StatusBadRequest, "guestId required")
	}

	items := make([]service.CreateOrderItem, 0, len(req.Orders))
	for _, item := range req.Orders {
		items = append(items, service.CreateOrderItem{DishID: item.DishID, Quantity: item.Quantity})
	}

	orders, err := h.orders.CreateGuestOrders(c.Context(), req.GuestID, items)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "orders created",
		"data":    dto.FromOrders(orders),
	})
}

// Pay handles POST /orders/pay.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PayOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.GuestID == "" {
		return fiber.NewError(http.StatusBadRequest, "guestId required")
	}

	orders, err := h.orders.PayGuestOrders(c.Context(), req.GuestID, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "orders paid", "data": dto.FromOrders(orders)})
}
