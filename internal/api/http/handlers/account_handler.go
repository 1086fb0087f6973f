package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AccountHandler exposes staff account management endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accountService}
}

// List handles GET /accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "accounts", "data": dto.FromAccounts(accounts)})
}

// Get handles GET /accounts/:id.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	account, err := h.accounts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account", "data": dto.FromAccount(account)})
}

// Me handles GET /accounts/me.
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	account, err := h.accounts.Get(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account", "data": dto.FromAccount(account)})
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.accounts.Create(c.Context(), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "account created",
		"data":    dto.FromAccount(account),
	})
}

// Update handles PUT /accounts/:id.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.accounts.Update(c.Context(), c.Params("id"), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account updated", "data": dto.FromAccount(account)})
}

// Delete handles DELETE /accounts/:id.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	account, err := h.accounts.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account deleted", "data": dto.FromAccount(account)})
}

// ChangePassword handles POST /accounts/change-password.
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.OldPassword == "" || len(req.NewPassword) < 6 {
		return apperrors.NewEntityError(
			apperrors.FieldError{Field: "newPassword", Message: "password must be at least 6 characters"},
		)
	}

	if err := h.accounts.ChangePassword(c.Context(), principal.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
