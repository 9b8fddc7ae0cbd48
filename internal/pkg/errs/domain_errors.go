package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Vehicle errors
	ErrVehicleNotFound = errors.New("vehicle not found")

	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrVehicleNoLongerAvailable = errors.New("vehicle no longer available for the requested dates")
	ErrInvalidDateRange         = errors.New("invalid date range")

	// Draft errors
	ErrDraftNotFound = errors.New("draft not found")
	ErrDraftNotOwned = errors.New("draft belongs to another user")
	ErrNoActiveDraft = errors.New("no active booking session")

	// Submission errors
	ErrPaymentFailed = errors.New("payment failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrDraftPersistenceFailed  = errors.New("draft persistence failed")
)
