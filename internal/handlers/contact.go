package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
)

// ContactHandler persists contact-form submissions.
type ContactHandler struct {
	db *gorm.DB
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit stores a contact message.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.Validationf("all fields are required")
	}

	message := models.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.db.Create(&message).Error; err != nil {
		return apperrors.Store(err, "failed to save message")
	}

	return c.JSON(fiber.Map{"message": "Message sent successfully!", "id": message.ID})
}
