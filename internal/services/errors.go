package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/grade-analytics-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptyResultSet means the scope exists but holds no grades. It is
	// deliberately not a not-found error.
	ErrEmptyResultSet = errors.New("no grades in the requested scope")

	// Entity specific errors
	ErrStudentNotFound      = fmt.Errorf("student %w", ErrNotFound)
	ErrSubjectNotFound      = fmt.Errorf("subject %w", ErrNotFound)
	ErrClassNotFound        = fmt.Errorf("class %w", ErrNotFound)
	ErrGradeNotFound        = fmt.Errorf("grade %w", ErrNotFound)
	ErrDistributionNotFound = fmt.Errorf("grade distribution %w", ErrNotFound)
	ErrAcademicYearNotFound = fmt.Errorf("academic year %w", ErrNotFound)
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID   string `json:"user_id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.Reason)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsEmptyResult checks if error reports a scope without grades
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResultSet)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	var pe *PermissionError
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}
