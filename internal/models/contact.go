package models

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	Model
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Message string `gorm:"not null" json:"message"`
}
