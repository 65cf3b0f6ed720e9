package services

import (
	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/realtime"
)

// ChatService persists per-order chat messages and rebroadcasts them live.
type ChatService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewChatService constructs a ChatService.
func NewChatService(db *gorm.DB, hub *realtime.Hub) *ChatService {
	return &ChatService{db: db, hub: hub}
}

// PostMessage stores a message unconditionally, then broadcasts the persisted
// record (with store-assigned id and timestamp) to the order room and the
// admin room.
func (s *ChatService) PostMessage(orderID uint, senderType, senderEmail, text string) (*models.ChatMessage, error) {
	message := models.ChatMessage{
		OrderID:     orderID,
		SenderType:  senderType,
		SenderEmail: senderEmail,
		Message:     text,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, apperrors.Store(err, "failed to save chat message")
	}

	s.hub.Broadcast(realtime.OrderRoom(orderID), realtime.EventNewMessage, message)
	s.hub.Broadcast(realtime.AdminRoom, realtime.EventNewMessage, message)

	return &message, nil
}

// ListMessages returns the full conversation for an order, oldest first.
func (s *ChatService) ListMessages(orderID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, apperrors.Store(err, "failed to list chat messages")
	}
	return messages, nil
}
