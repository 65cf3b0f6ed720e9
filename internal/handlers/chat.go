package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/pinkbears/internal/services"
)

// ChatHandler serves chat history reads. Writes go through the WebSocket
// send_message operation.
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ListMessages returns an order's conversation, oldest first.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	id, err := c.ParamsInt("orderId")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	messages, err := h.chat.ListMessages(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(messages)
}
