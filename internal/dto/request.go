package dto

import "time"

type CreateRegistrationRequest struct {
	EventID uint `json:"eventId" validate:"required"`
	// UserID is accepted for backward compatibility but must match the
	// authenticated caller; identity is always taken from the token.
	UserID       string `json:"userId"`
	UserEmail    string `json:"userEmail"`
	Year         string `json:"year" validate:"required"`
	Dept         string `json:"dept" validate:"required"`
	RollNo       string `json:"rollNo" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
}

type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Type        string    `json:"type"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	MaxCapacity int       `json:"max_capacity" validate:"required,gt=0"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"image_url"`
}

type ProvisionMemberRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role"`
	Year         string `json:"year"`
	Dept         string `json:"dept"`
	Designation  string `json:"designation"`
	MobileNumber string `json:"mobile_number"`
}

type UpdateUserRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role"`
	Year         string `json:"year"`
	Dept         string `json:"dept"`
	RollNo       string `json:"roll_no"`
	Designation  string `json:"designation"`
	MobileNumber string `json:"mobile_number"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type UpdateInquiryRequest struct {
	Status string `json:"status" validate:"required"`
}

type LinkIdentityRequest struct {
	Name string `json:"name"`
}
