package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/services"
	"github.com/example/pinkbears/internal/utils"
)

// AdminHandler manages the admin console endpoints.
type AdminHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	orders    *services.OrderService
	analytics *services.AnalyticsService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config, orders *services.OrderService, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, orders: orders, analytics: analytics}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an admin and issues a bearer token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var admin models.Admin
	if err := h.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Authf("invalid credentials")
		}
		return apperrors.Store(err, "failed to load admin")
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return apperrors.Authf("invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, admin.Username, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{"token": token, "username": admin.Username})
}

// ListOrders returns every order, newest first.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.List()
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets an order's lifecycle stage.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return apperrors.Validationf("status is required")
	}

	if err := h.orders.UpdateStatus(uint(id), req.Status); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Order status updated successfully"})
}

// ConfirmPayment records that the cash payment was collected.
func (h *AdminHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if err := h.orders.ConfirmPayment(uint(id), true); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cash payment confirmed successfully",
	})
}

// Analytics returns the dashboard aggregate.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.analytics.Summarize()
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
