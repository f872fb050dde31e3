package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Scope errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")

	// Station registry errors
	ErrStationNotFound = errors.New("station not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")
	ErrInvalidToken = errors.New("invalid authentication token")

	// Validation errors
	ErrNameRequired           = errors.New("name is required")
	ErrStationNumberRequired  = errors.New("station number is required")
	ErrStationAddressRequired = errors.New("station address is required")
	ErrInvalidStatus          = errors.New("invalid task status")
	ErrExecutorIncomplete     = errors.New("executor name and email require an executor id")
)
