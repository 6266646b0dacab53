package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a club member. A row is either linked to a real identity-provider
// subject, or a placeholder provisioned by an admin ahead of the member's
// first sign-in. Provisioned rows carry a generated ID and Provisioned=true
// until reconciled by email.
type User struct {
	UserID       string    `gorm:"primaryKey" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Year         string    `json:"year"`
	Dept         string    `json:"dept"`
	RollNo       string    `json:"roll_no"`
	Designation  string    `json:"designation"`
	MobileNumber string    `json:"mobile_number"`
	Provisioned  bool      `gorm:"not null;default:false" json:"provisioned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
