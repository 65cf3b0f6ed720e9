package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/pinkbears/internal/services"
)

// OrderHandler manages customer-facing order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout places a cash-on-delivery order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.Create(input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "Order placed successfully! Pay when you receive your order.",
		"orderId":           order.ID,
		"trackingNumber":    order.TrackingNumber,
		"total":             order.Total,
		"estimatedDelivery": order.EstimatedDelivery.Format("2006-01-02"),
		"payment_method":    order.PaymentMethod,
		"payment_status":    order.PaymentStatus,
		"currency":          "INR",
	})
}

// GetOrder returns a single order, item snapshot included.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	order, err := h.orders.Get(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(order)
}

// ConfirmPayment lets the customer side record that cash was handed over.
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if err := h.orders.ConfirmPayment(uint(id), false); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment confirmed successfully",
	})
}

// PaymentStatus returns the payment view of an order.
func (h *OrderHandler) PaymentStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("orderId")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	state, err := h.orders.PaymentStatus(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(state)
}
