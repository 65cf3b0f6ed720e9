package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Known order lifecycle stages. The status column is an open string: unknown
// labels are accepted and fall back to a generic tracking message.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusProcessing     = "processing"
	StatusShipped        = "shipped"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// Payment state. One-directional: pending -> paid.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// PaymentMethodCOD is the only supported payment method.
const PaymentMethodCOD = "cash_on_delivery"

// OrderItem is a purchase-time snapshot of a product line.
type OrderItem struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderItems stores the item snapshot as a single JSON column.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner.
func (items *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	}
	return fmt.Errorf("unsupported items column type %T", value)
}

// Order is a cash-on-delivery order. Tracking number, total, item snapshot
// and estimated delivery are frozen at creation.
type Order struct {
	Model
	CustomerName         string     `gorm:"not null" json:"customer_name"`
	CustomerEmail        string     `gorm:"not null" json:"customer_email"`
	CustomerPhone        string     `gorm:"not null" json:"customer_phone"`
	AddressLine1         string     `gorm:"not null" json:"address_line1"`
	AddressLine2         string     `json:"address_line2"`
	Landmark             string     `json:"landmark"`
	City                 string     `gorm:"not null" json:"city"`
	State                string     `gorm:"not null" json:"state"`
	ZipCode              string     `gorm:"not null" json:"zip_code"`
	Country              string     `gorm:"default:India" json:"country"`
	DeliveryInstructions string     `json:"delivery_instructions"`
	PaymentMethod        string     `gorm:"default:cash_on_delivery" json:"payment_method"`
	PaymentStatus        string     `gorm:"default:pending" json:"payment_status"`
	Total                int64      `gorm:"not null" json:"total"`
	Items                OrderItems `gorm:"type:jsonb" json:"items"`
	Status               string     `gorm:"default:pending" json:"status"`
	TrackingNumber       string     `gorm:"uniqueIndex" json:"tracking_number"`
	EstimatedDelivery    time.Time  `json:"estimated_delivery"`
}

// TrackingEvent is one append-only entry in an order's status history.
type TrackingEvent struct {
	Model
	OrderID  uint   `gorm:"index;not null" json:"order_id"`
	Status   string `gorm:"not null" json:"status"`
	Message  string `gorm:"not null" json:"message"`
	Location string `json:"location,omitempty"`
}

// ChatMessage is one message in an order's customer/admin conversation.
// ReadStatus is persisted but unused, reserved for read receipts.
type ChatMessage struct {
	Model
	OrderID     uint   `gorm:"index;not null" json:"order_id"`
	SenderType  string `gorm:"not null" json:"sender_type"`
	SenderEmail string `json:"sender_email,omitempty"`
	Message     string `gorm:"not null" json:"message"`
	ReadStatus  bool   `gorm:"default:false" json:"read_status"`
}
