package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/realtime"
)

const (
	trackingPrefix    = "PINKIES"
	trackingSuffixLen = 5
	trackingAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	minDeliveryDays    = 3
	deliveryDaysSpread = 3
)

var statusMessages = map[string]string{
	models.StatusPending:        "Order received - Payment pending (Cash on Delivery)",
	models.StatusConfirmed:      "Order confirmed - Ready for delivery",
	models.StatusProcessing:     "Order is being prepared for shipment",
	models.StatusShipped:        "Order has been shipped - Collect payment on delivery",
	models.StatusOutForDelivery: "Order is out for delivery - Collect payment",
	models.StatusDelivered:      "Order has been delivered",
	models.StatusCancelled:      "Order has been cancelled",
}

// StatusMessage returns the tracking message for a lifecycle stage. Unknown
// labels get a generic fallback so the status set stays extensible.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Order status updated to %s", status)
}

// CreateOrderInput carries a checkout request.
type CreateOrderInput struct {
	CustomerName         string            `json:"customer_name"`
	CustomerEmail        string            `json:"customer_email"`
	CustomerPhone        string            `json:"customer_phone"`
	AddressLine1         string            `json:"address_line1"`
	AddressLine2         string            `json:"address_line2"`
	Landmark             string            `json:"landmark"`
	City                 string            `json:"city"`
	State                string            `json:"state"`
	ZipCode              string            `json:"zip_code"`
	Country              string            `json:"country"`
	DeliveryInstructions string            `json:"delivery_instructions"`
	Total                int64             `json:"total"`
	Items                models.OrderItems `json:"items"`
}

// PaymentState is the reduced payment view for customers polling an order.
type PaymentState struct {
	PaymentStatus string `json:"payment_status"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
}

// OrderService owns the order lifecycle: creation, status transitions,
// payment confirmation and the tracking history they append.
type OrderService struct {
	db  *gorm.DB
	hub *realtime.Hub

	// now and rng are swappable so tests can pin time and randomness.
	now func() time.Time
	mu  sync.Mutex
	rng *rand.Rand
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB, hub *realtime.Hub) *OrderService {
	return &OrderService{
		db:  db,
		hub: hub,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create validates a checkout request, persists the order together with its
// initial tracking event in one transaction, and notifies subscribers.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	required := []struct {
		field, value string
	}{
		{"customer_name", input.CustomerName},
		{"customer_email", input.CustomerEmail},
		{"customer_phone", input.CustomerPhone},
		{"address_line1", input.AddressLine1},
		{"city", input.City},
		{"state", input.State},
		{"zip_code", input.ZipCode},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, apperrors.Validationf("please fill all required fields: %s is missing", r.field)
		}
	}

	if input.Total < 1 {
		return nil, apperrors.Validationf("order amount must be at least 1")
	}

	country := input.Country
	if country == "" {
		country = "India"
	}

	order := models.Order{
		CustomerName:         input.CustomerName,
		CustomerEmail:        input.CustomerEmail,
		CustomerPhone:        input.CustomerPhone,
		AddressLine1:         input.AddressLine1,
		AddressLine2:         input.AddressLine2,
		Landmark:             input.Landmark,
		City:                 input.City,
		State:                input.State,
		ZipCode:              input.ZipCode,
		Country:              country,
		DeliveryInstructions: input.DeliveryInstructions,
		PaymentMethod:        models.PaymentMethodCOD,
		PaymentStatus:        models.PaymentPending,
		Total:                input.Total,
		Items:                input.Items,
		Status:               models.StatusPending,
		TrackingNumber:       s.newTrackingNumber(),
		EstimatedDelivery:    s.estimateDelivery(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		event := models.TrackingEvent{
			OrderID: order.ID,
			Status:  models.StatusPending,
			Message: StatusMessage(models.StatusPending),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict(err, "tracking number collision, please retry")
		}
		return nil, apperrors.Store(err, "failed to create order")
	}

	s.hub.BroadcastAll(realtime.EventNewOrder, map[string]interface{}{
		"orderId":        order.ID,
		"customer_name":  order.CustomerName,
		"customer_email": order.CustomerEmail,
		"total":          order.Total,
		"trackingNumber": order.TrackingNumber,
		"payment_method": order.PaymentMethod,
		"payment_status": order.PaymentStatus,
		"message":        fmt.Sprintf("Cash on Delivery Order #%d received!", order.ID),
	})
	s.hub.Broadcast(realtime.AdminRoom, realtime.EventNewOrderAdmin, map[string]interface{}{
		"orderId":        order.ID,
		"customer_name":  order.CustomerName,
		"customer_email": order.CustomerEmail,
		"total":          order.Total,
		"trackingNumber": order.TrackingNumber,
		"phone":          order.CustomerPhone,
		"address":        fmt.Sprintf("%s, %s, %s - %s", order.AddressLine1, order.City, order.State, order.ZipCode),
		"message":        "NEW CASH ON DELIVERY ORDER!",
	})

	return &order, nil
}

// UpdateStatus sets an order's status and appends the matching tracking
// event. Status is an open string: unrecognized values succeed with a
// fallback message.
func (s *OrderService) UpdateStatus(orderID uint, status string) error {
	order, err := s.Get(orderID)
	if err != nil {
		return err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return apperrors.Store(err, "failed to update order status")
	}

	message := StatusMessage(status)
	s.appendTrackingEvent(orderID, status, message)

	s.hub.Broadcast(realtime.OrderRoom(orderID), realtime.EventOrderUpdated, map[string]interface{}{
		"orderId": orderID,
		"status":  status,
		"message": message,
	})
	s.hub.Broadcast(realtime.AdminRoom, realtime.EventOrdersUpdated, nil)

	return nil
}

// ConfirmPayment marks an order paid. Repeated calls are effective no-ops
// for the payment column but still append a tracking event each time.
func (s *OrderService) ConfirmPayment(orderID uint, byAdmin bool) error {
	order, err := s.Get(orderID)
	if err != nil {
		return err
	}

	if err := s.db.Model(order).Update("payment_status", models.PaymentPaid).Error; err != nil {
		return apperrors.Store(err, "failed to confirm payment")
	}

	message := "Cash payment received upon delivery"
	eventType := realtime.EventPaymentReceived
	if byAdmin {
		message = "Cash payment received upon delivery - Order completed"
		eventType = realtime.EventPaymentConfirmed
	}
	s.appendTrackingEvent(orderID, models.PaymentPaid, message)

	s.hub.BroadcastAll(eventType, map[string]interface{}{
		"orderId": orderID,
		"message": "Cash on Delivery payment received!",
	})

	return nil
}

// Get loads a single order.
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order not found")
		}
		return nil, apperrors.Store(err, "failed to load order")
	}
	return &order, nil
}

// List returns all orders, newest first.
func (s *OrderService) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Store(err, "failed to list orders")
	}
	return orders, nil
}

// PaymentStatus returns the payment view of an order.
func (s *OrderService) PaymentStatus(orderID uint) (*PaymentState, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	return &PaymentState{
		PaymentStatus: order.PaymentStatus,
		Amount:        order.Total,
		PaymentMethod: order.PaymentMethod,
		Currency:      "INR",
	}, nil
}

// appendTrackingEvent is a secondary write: the primary operation already
// succeeded, so a failure here is logged, not surfaced.
func (s *OrderService) appendTrackingEvent(orderID uint, status, message string) {
	event := models.TrackingEvent{OrderID: orderID, Status: status, Message: message}
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("failed to append tracking event for order %d: %v", orderID, err)
	}
}

// newTrackingNumber builds PINKIES<unix millis><5 random alphanumerics>.
// Practical collision improbability only; the unique index on the column is
// the correctness backstop.
func (s *OrderService) newTrackingNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := make([]byte, trackingSuffixLen)
	for i := range suffix {
		suffix[i] = trackingAlphabet[s.rng.Intn(len(trackingAlphabet))]
	}
	return fmt.Sprintf("%s%d%s", trackingPrefix, s.now().UnixMilli(), suffix)
}

// estimateDelivery picks a date 3 to 5 days out. Intentionally randomized
// per order, no business-calendar logic.
func (s *OrderService) estimateDelivery() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().AddDate(0, 0, minDeliveryDays+s.rng.Intn(deliveryDaysSpread))
}
