package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
)

// TrackingEntry is one row of the customer-facing tracking timeline.
type TrackingEntry struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingResult bundles an order with its history, newest first.
type TrackingResult struct {
	Order   models.Order
	History []TrackingEntry
}

// TrackingService reconstructs tracking timelines by tracking number.
type TrackingService struct {
	db *gorm.DB
}

// NewTrackingService constructs a TrackingService.
func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// GetByTrackingNumber looks up an order by its tracking number and returns
// its history ordered newest first. An order with no events yields an empty
// list, not an error.
func (s *TrackingService) GetByTrackingNumber(trackingNumber string) (*TrackingResult, error) {
	var order models.Order
	if err := s.db.Where("tracking_number = ?", trackingNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order not found")
		}
		return nil, apperrors.Store(err, "failed to load order")
	}

	var events []models.TrackingEvent
	if err := s.db.Where("order_id = ?", order.ID).
		Order("created_at DESC, id DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Store(err, "failed to load tracking history")
	}

	history := make([]TrackingEntry, 0, len(events))
	for _, ev := range events {
		history = append(history, TrackingEntry{
			Status:    ev.Status,
			Message:   ev.Message,
			Timestamp: ev.CreatedAt,
		})
	}

	return &TrackingResult{Order: order, History: history}, nil
}
