package models

import "time"

type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "pending"
	InquiryRead     InquiryStatus = "read"
	InquiryReplied  InquiryStatus = "replied"
	InquiryResolved InquiryStatus = "resolved"
)

func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryPending, InquiryRead, InquiryReplied, InquiryResolved:
		return true
	}
	return false
}

type Inquiry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Message   string        `gorm:"not null" json:"message"`
	Status    InquiryStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
