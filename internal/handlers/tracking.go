package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/services"
)

// TrackingHandler serves the public order-tracking lookup.
type TrackingHandler struct {
	tracking *services.TrackingService
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(tracking *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// GetTracking returns an order and its tracking timeline, newest first.
// Tracking numbers are the unauthenticated lookup key.
func (h *TrackingHandler) GetTracking(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")
	if trackingNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing tracking number")
	}

	result, err := h.tracking.GetByTrackingNumber(trackingNumber)
	if err != nil {
		return err
	}

	return c.JSON(struct {
		models.Order
		TrackingHistory []services.TrackingEntry `json:"trackingHistory"`
		Currency        string                   `json:"currency"`
	}{
		Order:           result.Order,
		TrackingHistory: result.History,
		Currency:        "INR",
	})
}
