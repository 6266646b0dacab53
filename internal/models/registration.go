package models

import "time"

type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

type Registration struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	EventID      uint               `gorm:"not null" json:"event_id"`
	UserID       string             `gorm:"not null" json:"user_id"`
	UserEmail    string             `gorm:"not null" json:"user_email"`
	Year         string             `gorm:"not null" json:"year"`
	Dept         string             `gorm:"not null" json:"dept"`
	RollNo       string             `gorm:"not null" json:"roll_no"`
	MobileNumber string             `gorm:"not null" json:"mobile_number"`
	Status       RegistrationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// RegistrationWithEvent is the admin/export read model: a registration row
// joined with the title and start time of its event.
type RegistrationWithEvent struct {
	Registration
	EventTitle     string    `json:"event_title"`
	EventStartTime time.Time `json:"event_start_time"`
}
