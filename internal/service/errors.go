package service

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInquiryNotFound      = errors.New("inquiry not found")

	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrAlreadyRegistered  = errors.New("you are already registered for this event")
	ErrEventFull          = errors.New("event has reached maximum capacity")
	ErrAlreadyCancelled   = errors.New("registration is already cancelled")
	ErrNotOwner           = errors.New("registration belongs to another user")

	ErrEmailTaken       = errors.New("a member with this email already exists")
	ErrHasRegistrations = errors.New("cannot delete user: user has event registrations, delete the registrations first")

	ErrConstraintViolation = errors.New("operation violates a storage constraint: remove dependent rows first or enable cascading deletes on events -> registrations")
)
