package models

import "time"

// Model provides the shared auto-increment key and creation timestamp.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
