package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrAttractionNotFound = errors.New("attraction not found")
	ErrDuplicateReview    = errors.New("attraction already reviewed by this user")

	ErrTripNotFound     = errors.New("trip not found")
	ErrTripNotBookable  = errors.New("trip is not open for booking")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("not enough available slots")

	ErrGuideNotEligible  = errors.New("guide is not active and verified")
	ErrInvalidTransition = errors.New("transition not allowed")

	ErrForbidden = errors.New("insufficient permissions")
)
