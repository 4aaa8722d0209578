package domain

import "time"

// Feedback is an unauthenticated product review left by a visitor.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Rating    int       `gorm:"not null" json:"rating"`
	Message   string    `gorm:"size:2000;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
