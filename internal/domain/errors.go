package domain

import (
	"fmt"
	"time"
)

// ErrorCode categorizes an error variant. Codes are string-based for
// debuggability and natural JSON serialization.
type ErrorCode string

const (
	CodeValidation            ErrorCode = "VALIDATION_ERROR"
	CodeNotFound              ErrorCode = "NOT_FOUND"
	CodeConflict              ErrorCode = "CONFLICT"
	CodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	CodeForbidden             ErrorCode = "FORBIDDEN"
	CodeBusinessRuleViolation ErrorCode = "BUSINESS_RULE_VIOLATION"
	CodeExternalService       ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeRateLimited           ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// Failure is embedded by every error variant. It pins the discriminant to
// false and carries the fields shared by all variants. Variants are built
// through their New* constructors and never mutated after return.
type Failure struct {
	Code    ErrorCode      `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (Failure) Succeeded() bool { return false }

// ErrorCode exposes the variant's code without a full type switch.
func (f *Failure) ErrorCode() ErrorCode { return f.Code }

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// ValidationError reports one or more input fields failing a business rule.
// FieldErrors maps each invalid field name to its message; it is never empty.
type ValidationError struct {
	Failure
	FieldErrors map[string]string `json:"field_errors"`
}

// NewValidationError builds a ValidationError from field-level messages.
// The map is copied so the variant stays immutable even if the caller keeps
// mutating its own map.
func NewValidationError(fieldErrors map[string]string) *ValidationError {
	copied := make(map[string]string, len(fieldErrors))
	for k, v := range fieldErrors {
		copied[k] = v
	}
	return &ValidationError{
		Failure: Failure{
			Code:    CodeValidation,
			Message: fmt.Sprintf("validation failed for %d field(s)", len(copied)),
		},
		FieldErrors: copied,
	}
}

// NotFoundError reports that a referenced resource does not exist.
type NotFoundError struct {
	Failure
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		Failure: Failure{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("%s %q not found", resourceType, resourceID),
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// ConflictError reports that the operation would violate a uniqueness or
// state constraint on an otherwise valid resource.
type ConflictError struct {
	Failure
	ConflictingField string `json:"conflicting_field"`
}

func NewConflictError(field, message string) *ConflictError {
	return &ConflictError{
		Failure: Failure{
			Code:    CodeConflict,
			Message: message,
		},
		ConflictingField: field,
	}
}

// UnauthorizedError reports missing or invalid credentials.
type UnauthorizedError struct {
	Failure
}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{
		Failure: Failure{
			Code:    CodeUnauthorized,
			Message: "authentication required",
		},
	}
}

// ForbiddenError reports that the caller lacks a required permission.
type ForbiddenError struct {
	Failure
	RequiredPermission string `json:"required_permission"`
}

func NewForbiddenError(permission string) *ForbiddenError {
	return &ForbiddenError{
		Failure: Failure{
			Code:    CodeForbidden,
			Message: fmt.Sprintf("permission %q required", permission),
		},
		RequiredPermission: permission,
	}
}

// BusinessRuleViolationError reports a domain invariant violated on a found,
// otherwise-valid resource. RuleName identifies the violated rule.
type BusinessRuleViolationError struct {
	Failure
	RuleName string `json:"rule_name"`
}

func NewBusinessRuleViolationError(ruleName, message string) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{
		Failure: Failure{
			Code:    CodeBusinessRuleViolation,
			Message: message,
		},
		RuleName: ruleName,
	}
}

// ExternalServiceError reports a failed call to a collaborating service.
type ExternalServiceError struct {
	Failure
	ServiceName string `json:"service_name"`
	StatusCode  int    `json:"status_code,omitempty"`
}

func NewExternalServiceError(serviceName string, statusCode int) *ExternalServiceError {
	return &ExternalServiceError{
		Failure: Failure{
			Code:    CodeExternalService,
			Message: fmt.Sprintf("call to %s failed", serviceName),
		},
		ServiceName: serviceName,
		StatusCode:  statusCode,
	}
}

// RateLimitError reports that the caller exceeded a rate limit. RetryAfter
// is whole seconds, matching the Retry-After HTTP header semantics.
type RateLimitError struct {
	Failure
	RetryAfter int64 `json:"retry_after"`
}

func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{
		Failure: Failure{
			Code:    CodeRateLimited,
			Message: "rate limit exceeded",
		},
		RetryAfter: int64(retryAfter.Seconds()),
	}
}
