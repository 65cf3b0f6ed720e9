package models

// Product is a catalog entry. Prices are integer minor units (paise).
// Orders copy product data into their own item snapshot, so editing or
// deleting a product never changes historical orders.
type Product struct {
	Model
	Name        string `gorm:"not null" json:"name"`
	Price       int64  `gorm:"not null" json:"price"`
	Category    string `gorm:"not null" json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Featured    bool   `gorm:"default:false" json:"featured"`
}
