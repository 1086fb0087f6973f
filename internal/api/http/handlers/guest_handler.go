package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// GuestHandler exposes guest session and self-ordering endpoints.
type GuestHandler struct {
	auth   *service.AuthService
	orders *service.OrderService
}

// NewGuestHandler constructs handler.
func NewGuestHandler(authService *service.AuthService, orderService *service.OrderService) *GuestHandler {
	return &GuestHandler{auth: authService, orders: orderService}
}

// Login handles POST /guest/auth/login.
func (h *GuestHandler) Login(c *fiber.Ctx) error {
	var req dto.GuestLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Token == "" || req.TableNumber <= 0 {
		return apperrors.NewEntityError(
			apperrors.FieldError{Field: "name", Message: "name, tableNumber and token required"},
		)
	}

	guest, pair, err := h.auth.LoginGuest(c.Context(), req.Name, req.TableNumber, req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"data": dto.GuestLoginResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			Guest:        dto.FromGuest(guest),
		},
	})
}

// Refresh handles POST /guest/auth/refresh-token.
func (h *GuestHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refreshToken required")
	}

	pair, err := h.auth.RefreshGuest(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "token refreshed",
		"data": dto.TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	})
}

// Logout handles POST /guest/auth/logout.
func (h *GuestHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refreshToken required")
	}

	if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logout successful"})
}

// CreateOrders handles POST /guest/orders.
func (h *GuestHandler) CreateOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.GuestCreateOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	items := make([]service.CreateOrderItem, 0, len(req.Orders))
	for _, item := range req.Orders {
		items = append(items, service.CreateOrderItem{DishID: item.DishID, Quantity: item.Quantity})
	}

	orders, err := h.orders.CreateGuestOrders(c.Context(), principal.ID, items)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "orders created",
		"data":    dto.FromOrders(orders),
	})
}

// ListOrders handles GET /guest/orders.
func (h *GuestHandler) ListOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	orders, err := h.orders.ListGuestOrders(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "guest orders",
		"data":    dto.FromOrders(orders),
	})
}
