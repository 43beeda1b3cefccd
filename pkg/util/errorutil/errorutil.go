package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/repository"
)

// Error codes surfaced in the JSON error envelope.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeUniqueViolation   = "UNIQUE_VIOLATION"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewMissingCredential reports a request that carried no credential at all.
func NewMissingCredential() error {
	return NewDomainError(CodeMissingCredential, "authentication required", http.StatusUnauthorized, nil)
}

// NewInvalidCredential reports a credential that failed decoding or verification.
func NewInvalidCredential() error {
	return NewDomainError(CodeInvalidCredential, "invalid token", http.StatusForbidden, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUniqueViolation reports a duplicate value for a unique field.
func NewUniqueViolation(field, message string) error {
	return NewDomainError(CodeUniqueViolation, message, http.StatusBadRequest, map[string]any{"field": field})
}

func NewInternalError(err error) error {
	de := &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
	if err != nil {
		de.Details = map[string]any{"details": err.Error()}
	}
	return de
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFound("record", nil).(*DomainError)
	}
	var unique *repository.UniqueViolation
	if errors.As(err, &unique) {
		return NewUniqueViolation(unique.Constraint, "duplicate value").(*DomainError)
	}
	var fk *repository.ForeignKeyViolation
	if errors.As(err, &fk) {
		return NewValidationError("referenced record does not exist", map[string]any{"constraint": fk.Constraint}).(*DomainError)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromStatus(fiberErr.Code, fiberErr.Message)
	}
	return NewInternalError(err).(*DomainError)
}

func fromStatus(status int, message string) *DomainError {
	code := CodeInternal
	switch status {
	case http.StatusBadRequest:
		code = CodeValidationFailed
	case http.StatusUnauthorized:
		code = CodeMissingCredential
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	}
	return NewDomainError(code, message, status, nil)
}
