// Package businessflow contains the core business logic and use cases for moderation workflows
package businessflow

import (
	"errors"
	"fmt"
	"strings"
)

// Business flow error constants
var (
	// Submission-related errors
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrSubmissionAlreadyReviewed = errors.New("submission already reviewed")
	ErrInvalidTargetStatus       = errors.New("invalid target status")

	// Listing-related errors
	ErrListingNotFound = errors.New("listing not found")

	// Account-related errors
	ErrAccountNotFound           = errors.New("account not found")
	ErrAccountInactive           = errors.New("account is inactive")
	ErrOwnershipResolutionFailed = errors.New("ownership resolution failed")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError reports every missing or malformed intake field at once so
// clients can fix their payload in a single round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// TransactionError wraps a failure inside the publication transaction after
// the transaction has been rolled back.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("publication transaction failed: %v", e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func IsSubmissionNotFound(err error) bool {
	return errors.Is(err, ErrSubmissionNotFound)
}

func IsSubmissionAlreadyReviewed(err error) bool {
	return errors.Is(err, ErrSubmissionAlreadyReviewed)
}

func IsInvalidTargetStatus(err error) bool {
	return errors.Is(err, ErrInvalidTargetStatus)
}

func IsListingNotFound(err error) bool {
	return errors.Is(err, ErrListingNotFound)
}

func IsAccountNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsOwnershipResolutionFailed(err error) bool {
	return errors.Is(err, ErrOwnershipResolutionFailed)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsTransactionError(err error) bool {
	var te *TransactionError
	return errors.As(err, &te)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
