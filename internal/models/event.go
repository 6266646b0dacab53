package models

import "time"

type EventStatus string

const (
	EventOpen      EventStatus = "Open"
	EventFull      EventStatus = "Full"
	EventClosed    EventStatus = "Closed"
	EventCompleted EventStatus = "Completed"
)

// RegistrationOpen reports whether new registrations are accepted based on
// status alone. Capacity is checked separately under the event row lock.
func (s EventStatus) RegistrationOpen() bool {
	return s == EventOpen || s == EventFull
}

type Event struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `gorm:"not null" json:"description"`
	Type         string      `gorm:"not null;default:'Workshop'" json:"type"`
	StartTime    time.Time   `gorm:"not null" json:"start_time"`
	EndTime      time.Time   `gorm:"not null" json:"end_time"`
	MaxCapacity  int         `gorm:"not null" json:"max_capacity"`
	CurrentCount int         `gorm:"not null;default:0" json:"current_count"`
	Status       EventStatus `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	ImageURL     string      `json:"image_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}
