package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation                 = errors.New("validation failed")
	ErrUserNotFound               = errors.New("user not found")
	ErrBadPassword                = errors.New("incorrect password")
	ErrEmployeeNotFound           = errors.New("no registered employee found")
	ErrInvalidEmployeeCredentials = errors.New("invalid username or password")
	ErrUnauthenticated            = errors.New("not logged in")
	ErrStorage                    = errors.New("storage failure")
	ErrPermissionDenied           = errors.New("permission denied")
	ErrIndexOutOfRange            = errors.New("booking index out of range")
	ErrBookingAlreadyCancelled    = errors.New("booking already cancelled")
	ErrTrackingNotFound           = errors.New("tracking session not found")
	ErrConversationNotFound       = errors.New("conversation not found")
	ErrServiceNotFound            = errors.New("service not found")
)

// ValidationError reports the first input rule that failed. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for rule.
func NewValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// StorageError wraps a key-value store failure. It matches ErrStorage with
// errors.Is and unwraps to the backend error.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
